package services

import (
	"sort"
	"time"
)

// CalculateStreak returns the number of consecutive calendar days, ending today or
// yesterday, on which at least one prayer was logged. Nil timestamps are ignored.
//
// Each timestamp is reduced to the calendar date of its own location and "today" is
// the calendar date of now; no timezone normalization happens between the two.
func CalculateStreak(prayedAt []*time.Time, now time.Time) int {
	seen := make(map[time.Time]struct{}, len(prayedAt))
	dates := make([]time.Time, 0, len(prayedAt))
	for _, t := range prayedAt {
		if t == nil {
			continue
		}
		day := calendarDay(*t)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		dates = append(dates, day)
	}

	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	yesterday := calendarDay(now).AddDate(0, 0, -1)
	if dates[0].Before(yesterday) {
		return 0
	}

	streak := 1
	previous := dates[0]
	for _, current := range dates[1:] {
		if !current.Equal(previous.AddDate(0, 0, -1)) {
			break
		}
		streak++
		previous = current
	}
	return streak
}

// calendarDay maps t onto midnight UTC of its wall-clock date so that dates from
// different locations compare and step by whole days.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

