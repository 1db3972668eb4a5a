package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// UsernameMinLength and UsernameMaxLength bound the account handle,
	// inclusive on both ends.
	UsernameMinLength = 7
	UsernameMaxLength = 15

	// EmailMinLength is the minimum accepted email length.
	EmailMinLength = 8

	// PasswordMinLength is the minimum password length.
	PasswordMinLength = 7
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a
// flat list of human-readable messages.
func FormatValidationErrors(err error) []string {
	var messages []string

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			case "gt":
				messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
	} else if err != nil {
		messages = append(messages, err.Error())
	}

	return messages
}

// ValidateUsername checks the account handle length bounds. Both
// bounds are inclusive: 7 and 15 character handles are accepted.
func ValidateUsername(username string) []string {
	var messages []string
	if len(username) < UsernameMinLength {
		messages = append(messages, fmt.Sprintf("Username must be at least %d characters long", UsernameMinLength))
	} else if len(username) > UsernameMaxLength {
		messages = append(messages, fmt.Sprintf("Username must be no more than %d characters long", UsernameMaxLength))
	}
	return messages
}

// ValidateEmail checks the minimal email shape: length and the
// presence of both "@" and ".".
func ValidateEmail(email string) []string {
	var messages []string
	if len(email) < EmailMinLength {
		messages = append(messages, fmt.Sprintf("Email must be at least %d characters long", EmailMinLength))
	} else if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		messages = append(messages, "Please enter a valid email address")
	}
	return messages
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) []string {
	var messages []string
	if len(password) < PasswordMinLength {
		messages = append(messages, fmt.Sprintf("Password must be at least %d characters long", PasswordMinLength))
	}
	return messages
}

// ValidateRegistration accumulates every field-level failure for a
// registration payload. Uniqueness is checked separately by the
// handler; its messages are appended to this list so the caller sees
// all problems at once.
func ValidateRegistration(username, email, password string) []string {
	var messages []string
	messages = append(messages, ValidateUsername(username)...)
	messages = append(messages, ValidateEmail(email)...)
	messages = append(messages, ValidatePassword(password)...)
	return messages
}

// SanitizeString removes null bytes and trims whitespace
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.TrimSpace(s)
	return s
}
