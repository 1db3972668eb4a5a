package auth

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexistream/api/model"
	authutil "github.com/lexistream/api/utils/auth"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.UserActivity{}, &model.JWTTokenBlacklist{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func registerApp(db *gorm.DB) *fiber.App {
	jwtManager := authutil.NewJWTManager(authutil.JWTConfig{
		Secret:        "test-secret-key-for-unit-tests",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "lexistream-api",
	})
	handler := NewAuthHandler(db, jwtManager, nil)

	app := fiber.New()
	app.Post("/register", handler.Register)
	return app
}

func postRegister(t *testing.T, app *fiber.App, body RegisterRequest) (int, []string) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest("POST", "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var envelope struct {
		Success bool `json:"success"`
		Error   *struct {
			Messages []string `json:"messages"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	var messages []string
	if envelope.Error != nil {
		messages = envelope.Error.Messages
	}
	return resp.StatusCode, messages
}

func containsMessage(messages []string, want string) bool {
	for _, m := range messages {
		if m == want {
			return true
		}
	}
	return false
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	db := testDB(t)
	app := registerApp(db)

	status, _ := postRegister(t, app, RegisterRequest{
		Username: "first_user",
		Email:    "first_user@example.com",
		Password: "password1",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("initial registration status = %d, want %d", status, fiber.StatusCreated)
	}

	// Same handle and same email: both collision messages come back in
	// one response
	status, messages := postRegister(t, app, RegisterRequest{
		Username: "first_user",
		Email:    "first_user@example.com",
		Password: "password2",
	})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("duplicate registration status = %d, want %d", status, fiber.StatusUnprocessableEntity)
	}
	if !containsMessage(messages, "Username already exists") {
		t.Errorf("missing username collision message, got %v", messages)
	}
	if !containsMessage(messages, "Email already registered") {
		t.Errorf("missing email collision message, got %v", messages)
	}

	// Nothing was written for the rejected attempt
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count != 1 {
		t.Errorf("user rows = %d, want 1", count)
	}
}

func TestRegisterAccumulatesFormatMessages(t *testing.T) {
	db := testDB(t)
	app := registerApp(db)

	// Short username, malformed email, short password: all three
	// messages in one response
	status, messages := postRegister(t, app, RegisterRequest{
		Username: "abc",
		Email:    "bad",
		Password: "short",
	})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", status, fiber.StatusUnprocessableEntity)
	}
	if len(messages) < 3 {
		t.Errorf("messages = %v, want one per failed rule", messages)
	}

	var count int64
	db.Model(&model.User{}).Count(&count)
	if count != 0 {
		t.Errorf("user rows = %d, want 0", count)
	}
}
