package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services/storage"
)

// FailedTranscript is stored when the speech-to-text service is
// unavailable. The recording is still saved so the user keeps their audio.
const FailedTranscript = "Transcription failed"

var allowedAudioExtensions = map[string]bool{
	"wav":  true,
	"mp3":  true,
	"m4a":  true,
	"flac": true,
	"webm": true,
}

var (
	ErrUnsupportedAudioFormat = errors.New("unsupported audio format")
	ErrRecordingNotFound      = errors.New("recording not found")
	ErrNotRecordingOwner      = errors.New("recording belongs to another user")
)

// Transcriber converts an audio clip into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (*TranscriptionResponse, error)
}

// RecordingService owns the recording submission workflow: store the
// audio, transcribe it, score it and update streak state in one
// transaction.
type RecordingService struct {
	db          *gorm.DB
	store       storage.Store
	transcriber Transcriber
}

// NewRecordingService creates a new recording service
func NewRecordingService(db *gorm.DB, store storage.Store, transcriber Transcriber) *RecordingService {
	return &RecordingService{
		db:          db,
		store:       store,
		transcriber: transcriber,
	}
}

// SubmitRecordingRequest carries one recording upload
type SubmitRecordingRequest struct {
	UserID          uint
	Filename        string
	Audio           []byte
	DurationSeconds float64
}

// SubmitRecordingResult reports the outcome of a submission
type SubmitRecordingResult struct {
	Recording          *model.Recording `json:"recording"`
	CurrentStreak      int              `json:"current_streak"`
	TranscriptionError string           `json:"transcription_error,omitempty"`
}

// AudioExtension extracts and validates the audio file extension
func AudioExtension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedAudioExtensions[ext] {
		return "", ErrUnsupportedAudioFormat
	}
	return ext, nil
}

// SubmitRecording stores the audio, transcribes it and persists the
// recording, progress snapshot and streak update atomically. A failed
// transcription is not fatal: the recording is kept with a zero score
// and the error is reported back to the caller.
func (s *RecordingService) SubmitRecording(ctx context.Context, req SubmitRecordingRequest) (*SubmitRecordingResult, error) {
	ext, err := AudioExtension(req.Filename)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	key := storage.RecordingKey(req.UserID, now, ext)

	fileURL, err := s.store.Save(ctx, key, bytes.NewReader(req.Audio), storage.ContentTypeFor(ext))
	if err != nil {
		return nil, fmt.Errorf("failed to store audio: %w", err)
	}

	transcript := FailedTranscript
	var transcriptionErr string
	resp, err := s.transcriber.Transcribe(ctx, req.Audio, req.Filename)
	if err != nil {
		log.Printf("Transcription failed for user %d: %v", req.UserID, err)
		transcriptionErr = err.Error()
	} else {
		transcript = resp.Transcript
	}

	wpm := 0.0
	if transcriptionErr == "" {
		wpm = ComputeWPM(transcript, req.DurationSeconds)
	}

	recording := model.Recording{
		UserID:          req.UserID,
		StorageKey:      key,
		FileURL:         fileURL,
		Transcript:      transcript,
		WordsPerMinute:  wpm,
		DurationSeconds: req.DurationSeconds,
	}

	var streak int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recording).Error; err != nil {
			return fmt.Errorf("failed to save recording: %w", err)
		}

		progress := model.Progress{
			UserID:         req.UserID,
			RecordingID:    &recording.ID,
			WordsPerMinute: wpm,
		}
		if err := tx.Create(&progress).Error; err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		goal, err := goalForUpdate(tx, req.UserID)
		if err != nil {
			return err
		}

		AdvanceStreak(goal, now)
		if err := tx.Save(goal).Error; err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		streak = goal.CurrentStreak
		return nil
	})
	if err != nil {
		// Transaction rolled back; remove the orphaned audio object
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to remove orphaned audio %s: %v", key, delErr)
		}
		return nil, err
	}

	return &SubmitRecordingResult{
		Recording:          &recording,
		CurrentStreak:      streak,
		TranscriptionError: transcriptionErr,
	}, nil
}

// goalForUpdate loads the user's goal row inside the submission
// transaction, creating it lazily on first use. Two submissions racing on
// the same day both land on the same date so the streak stays correct.
func goalForUpdate(tx *gorm.DB, userID uint) (*model.Goal, error) {
	var goal model.Goal
	err := tx.Where("user_id = ?", userID).First(&goal).Error
	if err == gorm.ErrRecordNotFound {
		goal = model.Goal{
			UserID:       userID,
			DailyMinutes: model.DefaultDailyMinutes,
		}
		if err := tx.Create(&goal).Error; err != nil {
			return nil, fmt.Errorf("failed to create goal: %w", err)
		}
		return &goal, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	return &goal, nil
}

// ListRecordings returns a user's recordings, newest first
func (s *RecordingService) ListRecordings(ctx context.Context, userID uint, limit, offset int) ([]model.Recording, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Recording{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recordings: %w", err)
	}

	if limit <= 0 {
		limit = 20
	}

	var recordings []model.Recording
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recordings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recordings: %w", err)
	}

	return recordings, total, nil
}

// GetRecording loads one recording with its reviews
func (s *RecordingService) GetRecording(ctx context.Context, recordingID uint) (*model.Recording, error) {
	var recording model.Recording
	err := s.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Reviews.Reviewer").
		First(&recording, recordingID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("failed to load recording: %w", err)
	}
	return &recording, nil
}

// DeleteRecording soft-deletes a user's own recording. The audio object
// is removed later by the purge job once the grace period passes.
func (s *RecordingService) DeleteRecording(ctx context.Context, userID, recordingID uint) error {
	var recording model.Recording
	if err := s.db.WithContext(ctx).First(&recording, recordingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrRecordingNotFound
		}
		return fmt.Errorf("failed to load recording: %w", err)
	}

	if recording.UserID != userID {
		return ErrNotRecordingOwner
	}

	if err := s.db.WithContext(ctx).Delete(&recording).Error; err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}

	return nil
}

// HardDeleteRecording removes a recording row, its reviews, its progress
// references and its audio object. Used by admins and by cascade user
// deletion.
func (s *RecordingService) HardDeleteRecording(ctx context.Context, recordingID uint) error {
	var recording model.Recording
	if err := s.db.WithContext(ctx).Unscoped().First(&recording, recordingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrRecordingNotFound
		}
		return fmt.Errorf("failed to load recording: %w", err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("recording_id = ?", recording.ID).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		// Progress history survives; only the dangling reference is cleared
		if err := tx.Model(&model.Progress{}).Where("recording_id = ?", recording.ID).Update("recording_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&recording).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}

	if err := s.store.Delete(ctx, recording.StorageKey); err != nil {
		log.Printf("Failed to delete audio %s: %v", recording.StorageKey, err)
	}

	return nil
}
