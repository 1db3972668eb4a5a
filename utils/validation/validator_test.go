package validation

import (
	"strings"
	"testing"
)

func TestValidateUsernameBounds(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantOK   bool
	}{
		{"six chars rejected", "sixsix", false},
		{"seven chars accepted", "sevense", true},
		{"fifteen chars accepted", strings.Repeat("a", 15), true},
		{"sixteen chars rejected", strings.Repeat("a", 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := ValidateUsername(tt.username)
			if tt.wantOK && len(msgs) != 0 {
				t.Errorf("ValidateUsername(%q) = %v, want no messages", tt.username, msgs)
			}
			if !tt.wantOK && len(msgs) == 0 {
				t.Errorf("ValidateUsername(%q) accepted, want rejection", tt.username)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email  string
		wantOK bool
	}{
		{"a@b.co", false},             // too short
		{"user@example.com", true},    // fine
		{"useratexample", false},      // long enough but no @ or .
		{"user@examplecom", false},    // missing dot
		{"user.examplecom", false},    // missing @
		{"abc@d.ef", true},            // exactly 8 chars with both
	}

	for _, tt := range tests {
		msgs := ValidateEmail(tt.email)
		if tt.wantOK && len(msgs) != 0 {
			t.Errorf("ValidateEmail(%q) = %v, want no messages", tt.email, msgs)
		}
		if !tt.wantOK && len(msgs) == 0 {
			t.Errorf("ValidateEmail(%q) accepted, want rejection", tt.email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if msgs := ValidatePassword("sixsix"); len(msgs) == 0 {
		t.Error("six character password accepted, want rejection")
	}
	if msgs := ValidatePassword("sevense"); len(msgs) != 0 {
		t.Errorf("seven character password rejected: %v", msgs)
	}
}

func TestValidateRegistrationAccumulates(t *testing.T) {
	// Every field invalid: all three messages must be present together.
	msgs := ValidateRegistration("short", "bad", "tiny")
	if len(msgs) != 3 {
		t.Fatalf("expected 3 accumulated messages, got %d: %v", len(msgs), msgs)
	}

	if msgs := ValidateRegistration("longenough", "user@example.com", "password1"); len(msgs) != 0 {
		t.Errorf("valid registration rejected: %v", msgs)
	}
}
