package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services/storage"
)

// CronManager manages all scheduled background jobs
type CronManager struct {
	cron  *cron.Cron
	db    *gorm.DB
	store storage.Store
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, store storage.Store) *CronManager {
	// Seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:  c,
		db:    db,
		store: store,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every hour: drop expired entries from the token blacklist
	_, err := m.cron.AddFunc("0 0 * * * *", func() {
		m.runJob("cleanup_token_blacklist", m.CleanupTokenBlacklist)
	})
	if err != nil {
		return err
	}

	// Daily at 2 AM: purge soft-deleted recordings past the grace period
	_, err = m.cron.AddFunc("0 0 2 * * *", func() {
		m.runJob("purge_deleted_recordings", m.PurgeDeletedRecordings)
	})
	if err != nil {
		return err
	}

	// Daily at 3 AM: trim old job logs and activity rows
	_, err = m.cron.AddFunc("0 0 3 * * *", func() {
		m.runJob("trim_old_logs", m.TrimOldLogs)
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// runJob wraps a job with database logging of start, completion and errors
func (m *CronManager) runJob(jobName string, job func() (string, error)) {
	started := time.Now()
	log.Printf("[CRON] Starting job: %s at %s", jobName, started.Format(time.RFC3339))

	cronLog := model.CronJobLog{
		JobName:   jobName,
		Status:    "running",
		StartedAt: started,
	}
	m.db.Create(&cronLog)

	message, err := job()
	completed := time.Now()
	duration := int(completed.Sub(started).Milliseconds())

	if err != nil {
		log.Printf("[CRON] Error in job: %s - %v", jobName, err)
		m.db.Model(&cronLog).Updates(map[string]interface{}{
			"status":       "failed",
			"completed_at": completed,
			"duration":     duration,
			"error_msg":    err.Error(),
		})
		return
	}

	log.Printf("[CRON] Completed job: %s - %s", jobName, message)
	m.db.Model(&cronLog).Updates(map[string]interface{}{
		"status":       "completed",
		"completed_at": completed,
		"duration":     duration,
		"message":      message,
	})
}
