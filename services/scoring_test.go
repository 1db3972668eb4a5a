package services

import (
	"testing"
	"time"

	"github.com/lexistream/api/model"
)

func TestComputeWPM(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		duration   float64
		expected   float64
	}{
		{
			name:       "empty transcript",
			transcript: "",
			duration:   60,
			expected:   0,
		},
		{
			name:       "whitespace only transcript",
			transcript: "   ",
			duration:   60,
			expected:   0,
		},
		{
			name:       "zero duration",
			transcript: "hello world",
			duration:   0,
			expected:   0,
		},
		{
			name:       "six words in one minute",
			transcript: "one two three four five six",
			duration:   60,
			expected:   6.0,
		},
		{
			name:       "two words in thirty seconds",
			transcript: "hello world",
			duration:   30,
			expected:   4.0,
		},
		{
			name:       "rounds to two decimals",
			transcript: "a b c d e f g",
			duration:   45,
			expected:   9.33,
		},
		{
			name:       "collapses repeated whitespace",
			transcript: "  hello   world  ",
			duration:   30,
			expected:   4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWPM(tt.transcript, tt.duration)
			if got != tt.expected {
				t.Errorf("ComputeWPM(%q, %v) = %v, want %v", tt.transcript, tt.duration, got, tt.expected)
			}
		})
	}
}

func TestAdvanceStreak(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	today := DateOnly(now)
	yesterday := today.AddDate(0, 0, -1)
	fiveDaysAgo := today.AddDate(0, 0, -5)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name           string
		lastActivity   *time.Time
		currentStreak  int
		expectedStreak int
	}{
		{
			name:           "first ever activity",
			lastActivity:   nil,
			currentStreak:  0,
			expectedStreak: 1,
		},
		{
			name:           "consecutive day extends streak",
			lastActivity:   &yesterday,
			currentStreak:  3,
			expectedStreak: 4,
		},
		{
			name:           "gap resets streak",
			lastActivity:   &fiveDaysAgo,
			currentStreak:  7,
			expectedStreak: 1,
		},
		{
			name:           "same day activity keeps streak",
			lastActivity:   &today,
			currentStreak:  5,
			expectedStreak: 5,
		},
		{
			name:           "future date from clock skew resets streak",
			lastActivity:   &tomorrow,
			currentStreak:  9,
			expectedStreak: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := model.Goal{
				UserID:           1,
				DailyMinutes:     model.DefaultDailyMinutes,
				CurrentStreak:    tt.currentStreak,
				LastActivityDate: tt.lastActivity,
			}

			AdvanceStreak(&goal, now)

			if goal.CurrentStreak != tt.expectedStreak {
				t.Errorf("CurrentStreak = %d, want %d", goal.CurrentStreak, tt.expectedStreak)
			}
			if goal.LastActivityDate == nil {
				t.Fatal("LastActivityDate not set")
			}
			if !goal.LastActivityDate.Equal(today) {
				t.Errorf("LastActivityDate = %v, want %v", goal.LastActivityDate, today)
			}
		})
	}
}

func TestAdvanceStreakNormalizesTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 2025-06-16 01:00 local is still 2025-06-15 in UTC
	now := time.Date(2025, 6, 16, 1, 0, 0, 0, loc)

	goal := model.Goal{UserID: 1}
	AdvanceStreak(&goal, now)

	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !goal.LastActivityDate.Equal(want) {
		t.Errorf("LastActivityDate = %v, want %v", goal.LastActivityDate, want)
	}
}
