package services

import (
	"strconv"
	"time"
)

// Criterion keys that are not derived from a count.
const (
	CriteriaMorningPrayer = "morning_prayer"
	CriteriaNightPrayer   = "night_prayer"
	CriteriaWeekendPrayer = "weekend_prayer"
)

var (
	PrayerMilestones  = []int{1, 10, 25, 50, 100, 250, 500, 1000, 5000}
	RequestMilestones = []int{1, 5, 10, 25, 50, 100}
	StreakThresholds  = []int{3, 7, 14, 30, 90, 365}
)

// PrayerActivity is a user's state right after a prayer was logged.
type PrayerActivity struct {
	PrayerCount int
	Streak      int
	PrayedAt    time.Time
}

// PrayerMilestoneCriteria returns the criterion key for the n-th prayer milestone.
func PrayerMilestoneCriteria(n int) string {
	if n == 1 {
		return "1_prayer"
	}
	return strconv.Itoa(n) + "_prayers"
}

// RequestMilestoneCriteria returns the criterion key for the n-th prayer request milestone.
func RequestMilestoneCriteria(n int) string {
	if n == 1 {
		return "1_request"
	}
	return strconv.Itoa(n) + "_requests"
}

// StreakCriteria is the key for a streak of the given number of days.
func StreakCriteria(days int) string {
	return strconv.Itoa(days) + "_day_streak"
}

// EvaluatePrayerBadges returns every criterion key the activity qualifies for.
// Milestones match the exact count only, so each fires once at the triggering prayer.
// Time and streak badges can qualify again later; the award store absorbs repeats.
func EvaluatePrayerBadges(a PrayerActivity) []string {
	var criteria []string

	for _, n := range PrayerMilestones {
		if a.PrayerCount == n {
			criteria = append(criteria, PrayerMilestoneCriteria(n))
		}
	}

	hour := a.PrayedAt.Hour()
	if hour >= 5 && hour < 9 {
		criteria = append(criteria, CriteriaMorningPrayer)
	}
	if hour >= 23 || hour < 3 {
		criteria = append(criteria, CriteriaNightPrayer)
	}

	switch a.PrayedAt.Weekday() {
	case time.Saturday, time.Sunday:
		criteria = append(criteria, CriteriaWeekendPrayer)
	}

	for _, days := range StreakThresholds {
		if a.Streak >= days {
			criteria = append(criteria, StreakCriteria(days))
		}
	}

	return criteria
}

// EvaluateRequestBadges returns the milestone key for the requester's n-th request, if any.
func EvaluateRequestBadges(requestCount int) []string {
	var criteria []string
	for _, n := range RequestMilestones {
		if requestCount == n {
			criteria = append(criteria, RequestMilestoneCriteria(n))
		}
	}
	return criteria
}
