package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexistream/api/model"
)

type memoryStore struct {
	files map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (m *memoryStore) Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.files[key] = b
	return "/uploads/" + key, nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	delete(m.files, key)
	return nil
}

func (m *memoryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.files[key]
	return ok, nil
}

func (m *memoryStore) URL(key string) string {
	return "/uploads/" + key
}

type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (*TranscriptionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &TranscriptionResponse{Transcript: s.transcript}, nil
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

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func TestAudioExtension(t *testing.T) {
	tests := []struct {
		filename string
		ext      string
		wantErr  bool
	}{
		{"clip.wav", "wav", false},
		{"clip.mp3", "mp3", false},
		{"clip.M4A", "m4a", false},
		{"clip.flac", "flac", false},
		{"clip.webm", "webm", false},
		{"clip.ogg", "", true},
		{"clip.exe", "", true},
		{"clip", "", true},
	}

	for _, tt := range tests {
		ext, err := AudioExtension(tt.filename)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedAudioFormat) {
				t.Errorf("AudioExtension(%q) error = %v, want ErrUnsupportedAudioFormat", tt.filename, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("AudioExtension(%q) unexpected error: %v", tt.filename, err)
			continue
		}
		if ext != tt.ext {
			t.Errorf("AudioExtension(%q) = %q, want %q", tt.filename, ext, tt.ext)
		}
	}
}

func TestSubmitRecording(t *testing.T) {
	db := testDB(t)
	store := newMemoryStore()
	svc := NewRecordingService(db, store, &stubTranscriber{transcript: "one two three four five six"})
	user := createTestUser(t, db, "recorder-one")

	result, err := svc.SubmitRecording(context.Background(), SubmitRecordingRequest{
		UserID:          user.ID,
		Filename:        "practice.wav",
		Audio:           []byte("fake audio"),
		DurationSeconds: 60,
	})
	if err != nil {
		t.Fatalf("SubmitRecording failed: %v", err)
	}

	if result.Recording.WordsPerMinute != 6.0 {
		t.Errorf("WordsPerMinute = %v, want 6.0", result.Recording.WordsPerMinute)
	}
	if result.Recording.Transcript != "one two three four five six" {
		t.Errorf("Transcript = %q", result.Recording.Transcript)
	}
	if result.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
	}
	if result.TranscriptionError != "" {
		t.Errorf("unexpected transcription error: %s", result.TranscriptionError)
	}

	// Audio stored under the recordings/ prefix
	if exists, _ := store.Exists(context.Background(), result.Recording.StorageKey); !exists {
		t.Errorf("audio not stored at %s", result.Recording.StorageKey)
	}

	// Progress snapshot written in the same transaction
	var progress model.Progress
	if err := db.Where("user_id = ?", user.ID).First(&progress).Error; err != nil {
		t.Fatalf("progress entry missing: %v", err)
	}
	if progress.WordsPerMinute != 6.0 {
		t.Errorf("progress WPM = %v, want 6.0", progress.WordsPerMinute)
	}
	if progress.RecordingID == nil || *progress.RecordingID != result.Recording.ID {
		t.Errorf("progress not linked to recording")
	}

	// Goal created lazily with the default target
	var goal model.Goal
	if err := db.Where("user_id = ?", user.ID).First(&goal).Error; err != nil {
		t.Fatalf("goal missing: %v", err)
	}
	if goal.DailyMinutes != model.DefaultDailyMinutes {
		t.Errorf("DailyMinutes = %d, want %d", goal.DailyMinutes, model.DefaultDailyMinutes)
	}
}

func TestSubmitRecordingTranscriptionFailure(t *testing.T) {
	db := testDB(t)
	store := newMemoryStore()
	svc := NewRecordingService(db, store, &stubTranscriber{err: errors.New("service unavailable")})
	user := createTestUser(t, db, "recorder-two")

	result, err := svc.SubmitRecording(context.Background(), SubmitRecordingRequest{
		UserID:          user.ID,
		Filename:        "practice.mp3",
		Audio:           []byte("fake audio"),
		DurationSeconds: 30,
	})
	if err != nil {
		t.Fatalf("SubmitRecording should not fail on transcription error: %v", err)
	}

	if result.Recording.Transcript != FailedTranscript {
		t.Errorf("Transcript = %q, want %q", result.Recording.Transcript, FailedTranscript)
	}
	if result.Recording.WordsPerMinute != 0 {
		t.Errorf("WordsPerMinute = %v, want 0", result.Recording.WordsPerMinute)
	}
	if result.TranscriptionError == "" {
		t.Error("expected transcription error to be reported")
	}

	// Streak still advances for the attempt
	if result.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", result.CurrentStreak)
	}
}

func TestSubmitRecordingRejectsUnknownFormat(t *testing.T) {
	db := testDB(t)
	svc := NewRecordingService(db, newMemoryStore(), &stubTranscriber{transcript: "hello"})
	user := createTestUser(t, db, "recorder-three")

	_, err := svc.SubmitRecording(context.Background(), SubmitRecordingRequest{
		UserID:          user.ID,
		Filename:        "malware.exe",
		Audio:           []byte("nope"),
		DurationSeconds: 10,
	})
	if !errors.Is(err, ErrUnsupportedAudioFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedAudioFormat", err)
	}

	var count int64
	db.Model(&model.Recording{}).Count(&count)
	if count != 0 {
		t.Errorf("recording persisted despite rejected format")
	}
}

func TestSubmitRecordingSameDayKeepsStreak(t *testing.T) {
	db := testDB(t)
	store := newMemoryStore()
	svc := NewRecordingService(db, store, &stubTranscriber{transcript: "hello world"})
	user := createTestUser(t, db, "recorder-four")

	for i := 0; i < 3; i++ {
		result, err := svc.SubmitRecording(context.Background(), SubmitRecordingRequest{
			UserID:          user.ID,
			Filename:        "practice.webm",
			Audio:           []byte("fake audio"),
			DurationSeconds: 30,
		})
		if err != nil {
			t.Fatalf("submission %d failed: %v", i, err)
		}
		if result.CurrentStreak != 1 {
			t.Errorf("submission %d: CurrentStreak = %d, want 1", i, result.CurrentStreak)
		}
		// Storage keys carry a per-second timestamp
		time.Sleep(time.Second)
	}

	var count int64
	db.Model(&model.Goal{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("goal rows = %d, want 1", count)
	}
}

// Two in-flight submissions can read the same goal row before either
// saves. The result converges to a single advance instead of
// double-counting, and the second write simply overwrites the first;
// goal updates are last-write-wins, not serialized.
func TestGoalConcurrentWritesLastWriteWins(t *testing.T) {
	db := testDB(t)
	user := createTestUser(t, db, "recorder-seven")

	yesterday := DateOnly(time.Now().UTC()).AddDate(0, 0, -1)
	goal := model.Goal{
		UserID:           user.ID,
		DailyMinutes:     model.DefaultDailyMinutes,
		CurrentStreak:    3,
		LastActivityDate: &yesterday,
	}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	// Both writers load the row before either one saves
	var first, second model.Goal
	if err := db.Where("user_id = ?", user.ID).First(&first).Error; err != nil {
		t.Fatalf("failed to load goal: %v", err)
	}
	if err := db.Where("user_id = ?", user.ID).First(&second).Error; err != nil {
		t.Fatalf("failed to load goal: %v", err)
	}

	now := time.Now().UTC()
	AdvanceStreak(&first, now)
	AdvanceStreak(&second, now)

	if err := db.Save(&first).Error; err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := db.Save(&second).Error; err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	var stored model.Goal
	if err := db.Where("user_id = ?", user.ID).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload goal: %v", err)
	}

	// Each stale reader computed 3+1 from the same base and the second
	// save overwrote the first with the same value. The row converges to
	// 4 instead of double-counting to 5.
	if stored.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4", stored.CurrentStreak)
	}

	var count int64
	db.Model(&model.Goal{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("goal rows = %d, want 1", count)
	}
}

func TestDeleteRecordingOwnership(t *testing.T) {
	db := testDB(t)
	store := newMemoryStore()
	svc := NewRecordingService(db, store, &stubTranscriber{transcript: "hello"})
	owner := createTestUser(t, db, "recorder-five")
	other := createTestUser(t, db, "recorder-six")

	result, err := svc.SubmitRecording(context.Background(), SubmitRecordingRequest{
		UserID:          owner.ID,
		Filename:        "practice.flac",
		Audio:           []byte("fake audio"),
		DurationSeconds: 15,
	})
	if err != nil {
		t.Fatalf("SubmitRecording failed: %v", err)
	}

	if err := svc.DeleteRecording(context.Background(), other.ID, result.Recording.ID); !errors.Is(err, ErrNotRecordingOwner) {
		t.Errorf("err = %v, want ErrNotRecordingOwner", err)
	}

	if err := svc.DeleteRecording(context.Background(), owner.ID, result.Recording.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	// Soft delete keeps the audio for the purge job
	if exists, _ := store.Exists(context.Background(), result.Recording.StorageKey); !exists {
		t.Error("audio removed on soft delete")
	}

	var count int64
	db.Model(&model.Recording{}).Count(&count)
	if count != 0 {
		t.Errorf("recording still visible after delete")
	}
}
