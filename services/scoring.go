package services

import (
	"math"
	"strings"
	"time"

	"github.com/lexistream/api/model"
)

// ComputeWPM calculates words per minute from a transcript and the clip
// duration, rounded to two decimal places. Empty transcripts and zero
// durations score 0 rather than erroring so a failed transcription still
// produces a stored recording.
func ComputeWPM(transcript string, durationSeconds float64) float64 {
	if strings.TrimSpace(transcript) == "" || durationSeconds == 0 {
		return 0
	}

	wordCount := len(strings.Fields(transcript))
	wpm := (float64(wordCount) / durationSeconds) * 60
	return math.Round(wpm*100) / 100
}

// DateOnly truncates t to a UTC calendar date
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AdvanceStreak updates a goal's daily streak for activity on the given day.
// Consecutive days extend the streak, a gap resets it to 1, and repeat
// activity on the same day leaves the count unchanged. LastActivityDate is
// always moved to today.
func AdvanceStreak(goal *model.Goal, now time.Time) {
	today := DateOnly(now)

	if goal.LastActivityDate == nil {
		goal.CurrentStreak = 1
	} else {
		last := DateOnly(*goal.LastActivityDate)
		yesterday := today.AddDate(0, 0, -1)

		switch {
		case last.Equal(yesterday):
			goal.CurrentStreak++
		case last.Before(yesterday):
			goal.CurrentStreak = 1
		case !last.Equal(today):
			// Clock skew put the stored date in the future. Start over.
			goal.CurrentStreak = 1
		}
	}

	goal.LastActivityDate = &today
}
