// Package stats computes the summary figures shown above the calendar.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/kgrimaldi/challenge75-backend/internal/models"
)

// Summary aggregates tracked fields over every day that has content.
type Summary struct {
	CompletedDays int      `json:"completed_days"`
	TopMood       string   `json:"top_mood"`
	AvgDietRating *float64 `json:"avg_diet_rating"`
	AvgSleepHours *float64 `json:"avg_sleep_hours"`
	AvgCalories   *float64 `json:"avg_calories_burned"`
	AvgSteps      *float64 `json:"avg_steps_taken"`
}

// Compute walks the document and aggregates the completed days. A day counts
// as completed when any tracked field besides notes and photos is filled in.
func Compute(doc models.Document) Summary {
	s := Summary{TopMood: "-"}

	moodCounts := map[string]int{}
	var dietSum, sleepSum, calSum, stepSum float64
	var dietN, sleepN, calN, stepN int

	for _, rec := range doc {
		if rec == nil || !isCompleted(rec) {
			continue
		}
		s.CompletedDays++

		if rec.Mood != nil && *rec.Mood != "" {
			moodCounts[*rec.Mood]++
		}
		if rec.DietRating != nil {
			dietSum += *rec.DietRating
			dietN++
		}
		if rec.SleepHours != nil {
			sleepSum += *rec.SleepHours
			sleepN++
		}
		if rec.CaloriesBurned != nil {
			calSum += float64(*rec.CaloriesBurned)
			calN++
		}
		if rec.StepsTaken != nil {
			stepSum += float64(*rec.StepsTaken)
			stepN++
		}
	}

	top, max := "-", 0
	for mood, n := range moodCounts {
		if n > max || (n == max && mood < top) {
			top, max = mood, n
		}
	}
	if max > 0 {
		s.TopMood = top
	}

	s.AvgDietRating = avg(dietSum, dietN)
	s.AvgSleepHours = avg(sleepSum, sleepN)
	s.AvgCalories = avg(calSum, calN)
	s.AvgSteps = avg(stepSum, stepN)
	return s
}

func isCompleted(rec *models.DayRecord) bool {
	if rec.Mood != nil && *rec.Mood != "" {
		return true
	}
	if rec.DietRating != nil || rec.SleepHours != nil ||
		rec.CaloriesBurned != nil || rec.StepsTaken != nil {
		return true
	}
	if rec.StrengthWorkout != nil && *rec.StrengthWorkout != "" {
		return true
	}
	if rec.CardioWorkout != nil && *rec.CardioWorkout != "" {
		return true
	}
	return false
}

func avg(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := sum / float64(n)
	return &v
}

// CurrentDay returns the 1-based challenge day for now: 0 before the start
// date, clamped to totalDays once the challenge is over.
func CurrentDay(start, now time.Time, totalDays int) int {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if today.Before(start) {
		return 0
	}
	day := int(today.Sub(start).Hours()/24) + 1
	if day > totalDays {
		return totalDays
	}
	return day
}

// ProgressPercent is how far through the challenge the given day is, 0-100.
func ProgressPercent(currentDay, totalDays int) float64 {
	if totalDays <= 0 || currentDay <= 0 {
		return 0
	}
	pct := float64(currentDay) / float64(totalDays) * 100
	return math.Min(pct, 100)
}

// FormatSleepHours renders fractional hours as "7h 30m".
func FormatSleepHours(hours float64) string {
	h := int(hours)
	m := int(math.Round((hours - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
