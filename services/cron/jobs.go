package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lexistream/api/model"
)

// recordingPurgeGracePeriod is how long soft-deleted recordings are kept
// before their rows and audio files are removed for good.
const recordingPurgeGracePeriod = 30 * 24 * time.Hour

// logRetention is how long cron logs and activity rows are kept
const logRetention = 90 * 24 * time.Hour

// CleanupTokenBlacklist removes blacklist entries whose tokens expired.
// Expired tokens fail validation on their own, so the rows are dead weight.
func (m *CronManager) CleanupTokenBlacklist() (string, error) {
	result := m.db.Unscoped().
		Where("expires_at <= ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		return "", fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}

	return fmt.Sprintf("removed %d expired blacklist entries", result.RowsAffected), nil
}

// PurgeDeletedRecordings hard-deletes recordings that were soft-deleted
// more than the grace period ago, removing their audio files as well.
func (m *CronManager) PurgeDeletedRecordings() (string, error) {
	cutoff := time.Now().Add(-recordingPurgeGracePeriod)

	var recordings []model.Recording
	err := m.db.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at <= ?", cutoff).
		Find(&recordings).Error
	if err != nil {
		return "", fmt.Errorf("failed to find purgeable recordings: %w", err)
	}

	ctx := context.Background()
	purged := 0
	for _, rec := range recordings {
		if err := m.store.Delete(ctx, rec.StorageKey); err != nil {
			// Keep the row so the next run retries the file
			log.Printf("[CRON] Failed to delete audio %s: %v", rec.StorageKey, err)
			continue
		}

		if err := m.db.Unscoped().Delete(&rec).Error; err != nil {
			log.Printf("[CRON] Failed to delete recording %d: %v", rec.ID, err)
			continue
		}
		purged++
	}

	return fmt.Sprintf("purged %d of %d eligible recordings", purged, len(recordings)), nil
}

// TrimOldLogs deletes cron job logs and user activity rows older than the
// retention window.
func (m *CronManager) TrimOldLogs() (string, error) {
	cutoff := time.Now().Add(-logRetention)

	logs := m.db.Unscoped().
		Where("created_at <= ?", cutoff).
		Delete(&model.CronJobLog{})
	if logs.Error != nil {
		return "", fmt.Errorf("failed to trim cron logs: %w", logs.Error)
	}

	activities := m.db.
		Where("created_at <= ?", cutoff).
		Delete(&model.UserActivity{})
	if activities.Error != nil {
		return "", fmt.Errorf("failed to trim activities: %w", activities.Error)
	}

	return fmt.Sprintf("removed %d cron logs and %d activity rows", logs.RowsAffected, activities.RowsAffected), nil
}
