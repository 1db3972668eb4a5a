package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/utils/cache"
)

// adminStatsCacheKey and TTL for the admin dashboard snapshot
const (
	adminStatsCacheKey = "analytics:admin_dashboard"
	adminStatsCacheTTL = 5 * time.Minute
)

// AnalyticsService handles analytics and reporting
type AnalyticsService struct {
	db         *gorm.DB
	redisCache *cache.RedisCache
}

// NewAnalyticsService creates a new analytics service. The cache is
// optional; without it every dashboard request hits the database.
func NewAnalyticsService(db *gorm.DB, redisCache *cache.RedisCache) *AnalyticsService {
	return &AnalyticsService{
		db:         db,
		redisCache: redisCache,
	}
}

// AdminDashboardStats represents overall platform statistics
type AdminDashboardStats struct {
	TotalUsers       int64   `json:"total_users"`
	TotalTeachers    int64   `json:"total_teachers"`
	ActiveUsers7d    int64   `json:"active_users_7d"`
	NewUsersToday    int64   `json:"new_users_today"`
	TotalLessons     int64   `json:"total_lessons"`
	TotalRecordings  int64   `json:"total_recordings"`
	RecordingsToday  int64   `json:"recordings_today"`
	TotalReviews     int64   `json:"total_reviews"`
	TotalVocabulary  int64   `json:"total_vocabulary"`
	AverageWPM       float64 `json:"average_wpm"`
	StorageSeconds   float64 `json:"storage_seconds"` // total audio duration held
	GeneratedAt      string  `json:"generated_at"`
	ServedFromCache  bool    `json:"served_from_cache"`
}

// UserDashboard is the per-user home screen payload
type UserDashboard struct {
	RecordingCount  int64            `json:"recording_count"`
	AverageWPM      float64          `json:"average_wpm"`
	BestWPM         float64          `json:"best_wpm"`
	CurrentStreak   int              `json:"current_streak"`
	DailyMinutes    int              `json:"daily_minutes"`
	TodaySeconds    float64          `json:"today_seconds"` // practice recorded since UTC midnight
	VocabularyCount int64            `json:"vocabulary_count"`
	UnreadReviews   int64            `json:"unread_notifications"`
	RecentProgress  []model.Progress `json:"recent_progress"`
}

// TeacherDashboard summarizes platform learning activity for teachers
type TeacherDashboard struct {
	TotalStudents    int64             `json:"total_students"`
	TotalLessons     int64             `json:"total_lessons"`
	TotalRecordings  int64             `json:"total_recordings"`
	RecordingsWeek   int64             `json:"recordings_7d"`
	AverageWPM       float64           `json:"average_wpm"`
	RecentRecordings []model.Recording `json:"recent_recordings"`
}

// GetAdminDashboardStats retrieves overall platform statistics, serving a
// cached snapshot when one is fresh.
func (s *AnalyticsService) GetAdminDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	if s.redisCache != nil {
		var cached AdminDashboardStats
		if ok, err := s.redisCache.GetJSON(ctx, adminStatsCacheKey, &cached); err == nil && ok {
			cached.ServedFromCache = true
			return &cached, nil
		}
	}

	stats := &AdminDashboardStats{}
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sevenDaysAgo := now.AddDate(0, 0, -7)

	if err := s.db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	if err := s.db.Model(&model.User{}).
		Where("role = ?", model.RoleTeacher).
		Count(&stats.TotalTeachers).Error; err != nil {
		return nil, fmt.Errorf("failed to count teachers: %w", err)
	}

	if err := s.db.Model(&model.UserActivity{}).
		Where("created_at >= ?", sevenDaysAgo).
		Distinct("user_id").
		Count(&stats.ActiveUsers7d).Error; err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	if err := s.db.Model(&model.User{}).
		Where("created_at >= ?", todayStart).
		Count(&stats.NewUsersToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}

	if err := s.db.Model(&model.Lesson{}).Count(&stats.TotalLessons).Error; err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}

	if err := s.db.Model(&model.Recording{}).Count(&stats.TotalRecordings).Error; err != nil {
		return nil, fmt.Errorf("failed to count recordings: %w", err)
	}

	if err := s.db.Model(&model.Recording{}).
		Where("created_at >= ?", todayStart).
		Count(&stats.RecordingsToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's recordings: %w", err)
	}

	if err := s.db.Model(&model.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	if err := s.db.Model(&model.Vocabulary{}).Count(&stats.TotalVocabulary).Error; err != nil {
		return nil, fmt.Errorf("failed to count vocabulary: %w", err)
	}

	var aggregates struct {
		AvgWPM       float64
		TotalSeconds float64
	}
	if err := s.db.Model(&model.Recording{}).
		Select("COALESCE(AVG(words_per_minute), 0) as avg_wpm, COALESCE(SUM(duration_seconds), 0) as total_seconds").
		Scan(&aggregates).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate recordings: %w", err)
	}
	stats.AverageWPM = aggregates.AvgWPM
	stats.StorageSeconds = aggregates.TotalSeconds

	stats.GeneratedAt = now.UTC().Format(time.RFC3339)

	if s.redisCache != nil {
		if err := s.redisCache.SetJSON(ctx, adminStatsCacheKey, stats, adminStatsCacheTTL); err != nil {
			// Cache write failure is not fatal
			log.Printf("failed to cache admin stats: %v", err)
		}
	}

	return stats, nil
}

// InvalidateAdminStats drops the cached admin snapshot
func (s *AnalyticsService) InvalidateAdminStats(ctx context.Context) {
	if s.redisCache != nil {
		s.redisCache.Delete(ctx, adminStatsCacheKey)
	}
}

// GetUserDashboard assembles the per-user home screen payload
func (s *AnalyticsService) GetUserDashboard(ctx context.Context, userID uint) (*UserDashboard, error) {
	dashboard := &UserDashboard{}

	if err := s.db.Model(&model.Recording{}).
		Where("user_id = ?", userID).
		Count(&dashboard.RecordingCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count recordings: %w", err)
	}

	var aggregates struct {
		AvgWPM  float64
		BestWPM float64
	}
	if err := s.db.Model(&model.Recording{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(words_per_minute), 0) as avg_wpm, COALESCE(MAX(words_per_minute), 0) as best_wpm").
		Scan(&aggregates).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate recordings: %w", err)
	}
	dashboard.AverageWPM = aggregates.AvgWPM
	dashboard.BestWPM = aggregates.BestWPM

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var today struct{ Seconds float64 }
	if err := s.db.Model(&model.Recording{}).
		Where("user_id = ? AND created_at >= ?", userID, todayStart).
		Select("COALESCE(SUM(duration_seconds), 0) as seconds").
		Scan(&today).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's practice: %w", err)
	}
	dashboard.TodaySeconds = today.Seconds

	var goal model.Goal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if err == nil {
		dashboard.CurrentStreak = goal.CurrentStreak
		dashboard.DailyMinutes = goal.DailyMinutes
	} else if err == gorm.ErrRecordNotFound {
		dashboard.DailyMinutes = model.DefaultDailyMinutes
	} else {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}

	if err := s.db.Model(&model.Vocabulary{}).
		Where("user_id = ?", userID).
		Count(&dashboard.VocabularyCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count vocabulary: %w", err)
	}

	if err := s.db.Model(&model.UserNotification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&dashboard.UnreadReviews).Error; err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(20).
		Find(&dashboard.RecentProgress).Error; err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	return dashboard, nil
}

// GetTeacherDashboard summarizes learning activity for the teacher view
func (s *AnalyticsService) GetTeacherDashboard(ctx context.Context) (*TeacherDashboard, error) {
	dashboard := &TeacherDashboard{}
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)

	if err := s.db.Model(&model.User{}).
		Where("role = ?", model.RoleUser).
		Count(&dashboard.TotalStudents).Error; err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	if err := s.db.Model(&model.Lesson{}).Count(&dashboard.TotalLessons).Error; err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}

	if err := s.db.Model(&model.Recording{}).Count(&dashboard.TotalRecordings).Error; err != nil {
		return nil, fmt.Errorf("failed to count recordings: %w", err)
	}

	if err := s.db.Model(&model.Recording{}).
		Where("created_at >= ?", sevenDaysAgo).
		Count(&dashboard.RecordingsWeek).Error; err != nil {
		return nil, fmt.Errorf("failed to count recent recordings: %w", err)
	}

	var avg struct{ AvgWPM float64 }
	if err := s.db.Model(&model.Recording{}).
		Select("COALESCE(AVG(words_per_minute), 0) as avg_wpm").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average WPM: %w", err)
	}
	dashboard.AverageWPM = avg.AvgWPM

	if err := s.db.Preload("User").
		Order("created_at DESC").
		Limit(10).
		Find(&dashboard.RecentRecordings).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent recordings: %w", err)
	}

	return dashboard, nil
}

// LogActivity records a user action for the analytics views. Failures are
// swallowed; activity tracking never breaks a request.
func (s *AnalyticsService) LogActivity(userID uint, activityType model.ActivityType, resourceType string, resourceID uint, ip string) {
	activity := model.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ip,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		log.Printf("failed to log activity for user %d: %v", userID, err)
	}
}
