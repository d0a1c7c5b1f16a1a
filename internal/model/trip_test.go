package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"当天往返", date(2026, 4, 1), date(2026, 4, 1), 1},
		{"隔夜", date(2026, 4, 1), date(2026, 4, 2), 2},
		{"一周行程", date(2026, 4, 1), date(2026, 4, 8), 8},
		{"结束早于开始兜底为一天", date(2026, 4, 8), date(2026, 4, 1), 1},
		{"忽略时分秒", time.Date(2026, 4, 1, 23, 0, 0, 0, time.UTC), time.Date(2026, 4, 2, 1, 0, 0, 0, time.UTC), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationDays(tt.start, tt.end); got != tt.want {
				t.Errorf("DurationDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSeasonOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.March, SeasonSpring},
		{time.April, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.July, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonAutumn},
		{time.November, SeasonAutumn},
		{time.December, SeasonWinter},
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
	}
	for _, tt := range tests {
		if got := SeasonOf(tt.month); got != tt.want {
			t.Errorf("SeasonOf(%v) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestDurationTypeOf(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{1, DurationWeekend},
		{2, DurationWeekend},
		{3, DurationShortTrip},
		{5, DurationShortTrip},
		{6, DurationLongBreak},
		{10, DurationLongBreak},
		{11, DurationDeepTravel},
		{30, DurationDeepTravel},
	}
	for _, tt := range tests {
		if got := DurationTypeOf(tt.days); got != tt.want {
			t.Errorf("DurationTypeOf(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestStatusOf(t *testing.T) {
	start := date(2026, 5, 10)
	end := date(2026, 5, 15)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"出发前一天", date(2026, 5, 9), StatusUpcoming},
		{"出发当天", date(2026, 5, 10), StatusOngoing},
		{"行程中", date(2026, 5, 12), StatusOngoing},
		{"结束当天", date(2026, 5, 15), StatusOngoing},
		{"结束次日", date(2026, 5, 16), StatusEnded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.now, start, end); got != tt.want {
				t.Errorf("StatusOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTripDecorate(t *testing.T) {
	trip := Trip{
		StartDate: date(2026, 7, 1),
		EndDate:   date(2026, 7, 4),
	}
	trip.Decorate(date(2026, 6, 1))

	if trip.DurationDays != 4 {
		t.Errorf("DurationDays = %d, want 4", trip.DurationDays)
	}
	if trip.Season != SeasonSummer {
		t.Errorf("Season = %q, want %q", trip.Season, SeasonSummer)
	}
	if trip.DurationType != DurationShortTrip {
		t.Errorf("DurationType = %q, want %q", trip.DurationType, DurationShortTrip)
	}
	if trip.Status != StatusUpcoming {
		t.Errorf("Status = %q, want %q", trip.Status, StatusUpcoming)
	}
}
