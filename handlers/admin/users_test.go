package admin

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services"
)

// testStore wraps a sqlite connection behind the Storage interface the
// handlers expect.
type testStore struct {
	db *gorm.DB
}

func (s *testStore) Init() error { return nil }

func (s *testStore) Close() error { return nil }

func (s *testStore) HealthCheck() error { return nil }

func (s *testStore) GetDB() interface{} { return s.db }

type stubFileStore struct {
	files map[string][]byte
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{files: make(map[string][]byte)}
}

func (m *stubFileStore) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.files[key] = b
	return "/uploads/" + key, nil
}

func (m *stubFileStore) Delete(ctx context.Context, key string) error {
	delete(m.files, key)
	return nil
}

func (m *stubFileStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.files[key]
	return ok, nil
}

func (m *stubFileStore) URL(key string) string {
	return "/uploads/" + key
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.Vocabulary{},
		&model.Recording{},
		&model.Progress{},
		&model.Review{},
		&model.Goal{},
		&model.UserNotification{},
		&model.UserActivity{},
		&model.JWTTokenBlacklist{},
		&model.AdminAuditLog{},
		&model.CronJobLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	user := model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func deleteUserApp(db *gorm.DB, fileStore *stubFileStore) *fiber.App {
	store := &testStore{db: db}
	recordingService := services.NewRecordingService(db, fileStore, nil)

	app := fiber.New()
	app.Delete("/admin/users/:id", func(c *fiber.Ctx) error {
		return DeleteUser(c, store, recordingService)
	})
	return app
}

func TestDeleteUserWithNoRelatedData(t *testing.T) {
	db := testDB(t)
	app := deleteUserApp(db, newStubFileStore())

	user := createTestUser(t, db, "plain_learner", model.RoleUser)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/admin/users/1", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var count int64
	db.Unscoped().Model(&model.User{}).Where("id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("user still present after delete")
	}
}

func TestDeleteUserCascadesData(t *testing.T) {
	db := testDB(t)
	fileStore := newStubFileStore()
	app := deleteUserApp(db, fileStore)

	target := createTestUser(t, db, "target_user", model.RoleUser)
	other := createTestUser(t, db, "other_user", model.RoleUser)

	key := "recordings/1_20240115_093000.wav"
	fileStore.files[key] = []byte("fake audio")
	recording := model.Recording{UserID: target.ID, StorageKey: key, Transcript: "hello", DurationSeconds: 10}
	if err := db.Create(&recording).Error; err != nil {
		t.Fatalf("failed to create recording: %v", err)
	}
	otherRecording := model.Recording{UserID: other.ID, StorageKey: "recordings/2_20240115_093000.wav", Transcript: "hi", DurationSeconds: 5}
	if err := db.Create(&otherRecording).Error; err != nil {
		t.Fatalf("failed to create recording: %v", err)
	}

	fixtures := []interface{}{
		&model.Progress{UserID: target.ID, RecordingID: &recording.ID, WordsPerMinute: 60},
		&model.Goal{UserID: target.ID, DailyMinutes: 15, CurrentStreak: 3},
		&model.Vocabulary{UserID: target.ID, Word: "serendipity"},
		&model.Review{RecordingID: recording.ID, ReviewerID: other.ID, FeedbackText: "nice pace"},
		&model.Review{RecordingID: otherRecording.ID, ReviewerID: target.ID, FeedbackText: "clear vowels"},
		&model.UserNotification{UserID: target.ID, Category: model.NotificationCategoryGeneral, Title: "x", Message: "y"},
		&model.UserActivity{UserID: target.ID, ActivityType: model.ActivityTypeLogin},
	}
	for _, f := range fixtures {
		if err := db.Create(f).Error; err != nil {
			t.Fatalf("failed to create fixture %T: %v", f, err)
		}
	}

	resp, err := app.Test(httptest.NewRequest("DELETE", "/admin/users/1", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var count int64
	db.Unscoped().Model(&model.User{}).Where("id = ?", target.ID).Count(&count)
	if count != 0 {
		t.Errorf("user still present after delete")
	}

	db.Unscoped().Model(&model.Recording{}).Where("user_id = ?", target.ID).Count(&count)
	if count != 0 {
		t.Errorf("recordings remain: %d", count)
	}
	if _, ok := fileStore.files[key]; ok {
		t.Errorf("audio file not removed")
	}

	// Reviews received on the deleted user's recordings and reviews they
	// authored are both gone; the other user's recording keeps nothing of
	// theirs attached.
	db.Unscoped().Model(&model.Review{}).Count(&count)
	if count != 0 {
		t.Errorf("reviews remain: %d", count)
	}

	for table, m := range map[string]interface{}{
		"progress":      &model.Progress{},
		"goals":         &model.Goal{},
		"vocabulary":    &model.Vocabulary{},
		"notifications": &model.UserNotification{},
		"activities":    &model.UserActivity{},
	} {
		db.Unscoped().Model(m).Where("user_id = ?", target.ID).Count(&count)
		if count != 0 {
			t.Errorf("%s rows remain: %d", table, count)
		}
	}

	// The other user survives untouched
	db.Model(&model.User{}).Where("id = ?", other.ID).Count(&count)
	if count != 1 {
		t.Errorf("unrelated user removed")
	}
	db.Model(&model.Recording{}).Where("id = ?", otherRecording.ID).Count(&count)
	if count != 1 {
		t.Errorf("unrelated recording removed")
	}
}

func TestDeleteUserAdminForbidden(t *testing.T) {
	db := testDB(t)
	app := deleteUserApp(db, newStubFileStore())

	admin := createTestUser(t, db, "administrator", model.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/admin/users/1", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusForbidden)
	}

	var count int64
	db.Model(&model.User{}).Where("id = ?", admin.ID).Count(&count)
	if count != 1 {
		t.Errorf("admin account removed")
	}
}
