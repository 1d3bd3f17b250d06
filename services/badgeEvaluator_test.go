package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-01-03 is a Wednesday, 2024-01-06 a Saturday.
var (
	wednesday = time.Date(2024, time.January, 3, 14, 0, 0, 0, time.UTC)
	saturday  = time.Date(2024, time.January, 6, 6, 0, 0, 0, time.UTC)
)

func TestEvaluatePrayerBadgesMilestones(t *testing.T) {
	milestones := map[int]string{
		1: "1_prayer", 10: "10_prayers", 25: "25_prayers", 50: "50_prayers", 100: "100_prayers",
		250: "250_prayers", 500: "500_prayers", 1000: "1000_prayers", 5000: "5000_prayers",
	}

	for count := 0; count <= 5001; count++ {
		criteria := EvaluatePrayerBadges(PrayerActivity{PrayerCount: count, PrayedAt: wednesday})

		if expected, ok := milestones[count]; ok {
			assert.Equal(t, []string{expected}, criteria, "count %d", count)
		} else {
			assert.Empty(t, criteria, "count %d", count)
		}
	}
}

func TestEvaluatePrayerBadgesTimeOfDay(t *testing.T) {
	tests := []struct {
		hour     int
		expected []string
	}{
		{hour: 2, expected: []string{CriteriaNightPrayer}},
		{hour: 3, expected: nil},
		{hour: 4, expected: nil},
		{hour: 5, expected: []string{CriteriaMorningPrayer}},
		{hour: 8, expected: []string{CriteriaMorningPrayer}},
		{hour: 9, expected: nil},
		{hour: 22, expected: nil},
		{hour: 23, expected: []string{CriteriaNightPrayer}},
		{hour: 0, expected: []string{CriteriaNightPrayer}},
	}

	for _, tt := range tests {
		prayedAt := time.Date(2024, time.January, 3, tt.hour, 30, 0, 0, time.UTC)
		criteria := EvaluatePrayerBadges(PrayerActivity{PrayerCount: 2, PrayedAt: prayedAt})
		assert.Equal(t, tt.expected, criteria, "hour %d", tt.hour)
	}
}

func TestEvaluatePrayerBadgesWeekend(t *testing.T) {
	for d := 1; d <= 7; d++ {
		prayedAt := time.Date(2024, time.January, d, 14, 0, 0, 0, time.UTC)
		criteria := EvaluatePrayerBadges(PrayerActivity{PrayerCount: 2, PrayedAt: prayedAt})

		weekend := prayedAt.Weekday() == time.Saturday || prayedAt.Weekday() == time.Sunday
		if weekend {
			assert.Equal(t, []string{CriteriaWeekendPrayer}, criteria, prayedAt.Weekday().String())
		} else {
			assert.Empty(t, criteria, prayedAt.Weekday().String())
		}
	}
}

func TestEvaluatePrayerBadgesStreakRungs(t *testing.T) {
	tests := []struct {
		streak   int
		expected []string
	}{
		{streak: 0, expected: nil},
		{streak: 2, expected: nil},
		{streak: 3, expected: []string{"3_day_streak"}},
		{streak: 13, expected: []string{"3_day_streak", "7_day_streak"}},
		{streak: 30, expected: []string{"3_day_streak", "7_day_streak", "14_day_streak", "30_day_streak"}},
		{streak: 400, expected: []string{"3_day_streak", "7_day_streak", "14_day_streak", "30_day_streak", "90_day_streak", "365_day_streak"}},
	}

	for _, tt := range tests {
		criteria := EvaluatePrayerBadges(PrayerActivity{PrayerCount: 2, Streak: tt.streak, PrayedAt: wednesday})
		assert.Equal(t, tt.expected, criteria, "streak %d", tt.streak)
	}
}

func TestEvaluatePrayerBadgesCombined(t *testing.T) {
	criteria := EvaluatePrayerBadges(PrayerActivity{PrayerCount: 3, Streak: 3, PrayedAt: saturday})

	assert.ElementsMatch(t, []string{CriteriaMorningPrayer, CriteriaWeekendPrayer, "3_day_streak"}, criteria)
}

func TestEvaluateRequestBadges(t *testing.T) {
	milestones := map[int]string{
		1: "1_request", 5: "5_requests", 10: "10_requests", 25: "25_requests", 50: "50_requests", 100: "100_requests",
	}

	for count := 0; count <= 101; count++ {
		criteria := EvaluateRequestBadges(count)
		if expected, ok := milestones[count]; ok {
			assert.Equal(t, []string{expected}, criteria, "count %d", count)
		} else {
			assert.Empty(t, criteria, "count %d", count)
		}
	}
}
