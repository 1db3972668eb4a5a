package storage

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	ctx := context.Background()
	key := "recordings/1_20240115_093000.wav"

	url, err := store.Save(ctx, key, strings.NewReader("fake audio bytes"), "audio/wav")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/uploads/"+key {
		t.Errorf("URL = %q, want %q", url, "/uploads/"+key)
	}

	exists, err := store.Exists(ctx, key)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("expected stored object to exist")
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	exists, err = store.Exists(ctx, key)
	if err != nil {
		t.Fatalf("Exists after delete: %v", err)
	}
	if exists {
		t.Error("expected object to be gone after delete")
	}
}

func TestLocalStoreDeleteMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	if err := store.Delete(context.Background(), "recordings/does_not_exist.wav"); err != nil {
		t.Errorf("Delete of missing key should be a no-op, got %v", err)
	}
}

func TestRecordingKey(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	got := RecordingKey(42, now, "wav")
	want := "recordings/42_20240115_093000.wav"
	if got != want {
		t.Errorf("RecordingKey = %q, want %q", got, want)
	}
}

func TestRecordingKeyNormalizesTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2024, 1, 15, 2, 0, 0, 0, loc) // 2024-01-14 21:00 UTC

	got := RecordingKey(7, now, "mp3")
	want := "recordings/7_20240114_210000.mp3"
	if got != want {
		t.Errorf("RecordingKey = %q, want %q", got, want)
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"wav", "audio/wav"},
		{"mp3", "audio/mpeg"},
		{"webm", "audio/webm"},
		{"png", "image/png"},
		{"bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := ContentTypeFor(tt.ext); got != tt.want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
