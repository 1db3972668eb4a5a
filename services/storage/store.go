package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"
)

// Store abstracts where uploaded audio and avatars live. The production
// deployment uses S3-compatible object storage; tests and small installs
// use the local disk.
type Store interface {
	// Save writes the file under key and returns a public URL for it
	Save(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Delete removes the file at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a file is stored under key
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the public URL for key without touching the backend
	URL(key string) string
}

// RecordingKey builds the storage key for a user's recording upload,
// recordings/<userID>_<timestamp>.<ext>
func RecordingKey(userID uint, now time.Time, ext string) string {
	return fmt.Sprintf("recordings/%d_%s.%s", userID, now.UTC().Format("20060102_150405"), ext)
}

// AvatarKey builds the storage key for a user's avatar image
func AvatarKey(userID uint, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("avatars/%d%s", userID, ext)
}

// ContentTypeFor returns the MIME type for an audio or image extension
func ContentTypeFor(ext string) string {
	switch ext {
	case "wav":
		return "audio/wav"
	case "mp3":
		return "audio/mpeg"
	case "m4a":
		return "audio/mp4"
	case "flac":
		return "audio/flac"
	case "webm":
		return "audio/webm"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
