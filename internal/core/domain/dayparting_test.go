package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2024-01-15 is a Monday.
func at(day, hour int) time.Time {
	return time.Date(2024, time.January, day, hour, 30, 0, 0, time.UTC)
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, 0, Weekday(at(15, 0)))
	assert.Equal(t, 1, Weekday(at(16, 0)))
	assert.Equal(t, 6, Weekday(at(21, 0)))
}

func TestEvaluateDaypartingInclusiveBounds(t *testing.T) {
	// Wednesday 09-17.
	schedules := []DaypartingSchedule{{DayOfWeek: 2, StartHour: 9, EndHour: 17, IsActive: true}}

	for hour, want := range map[int]Eligibility{
		8:  DaypartingBlocked,
		9:  DaypartingAllowed,
		12: DaypartingAllowed,
		17: DaypartingAllowed,
		18: DaypartingBlocked,
	} {
		assert.Equal(t, want, EvaluateDayparting(schedules, at(17, hour)), "hour %d", hour)
	}

	for _, day := range []int{15, 16, 18, 19, 20, 21} {
		for hour := 0; hour < 24; hour++ {
			assert.Equal(t, DaypartingBlocked, EvaluateDayparting(schedules, at(day, hour)), "day %d hour %d", day, hour)
		}
	}
}

func TestEvaluateDaypartingSingleHourWindow(t *testing.T) {
	schedules := []DaypartingSchedule{{DayOfWeek: 0, StartHour: 13, EndHour: 13, IsActive: true}}
	assert.Equal(t, DaypartingAllowed, EvaluateDayparting(schedules, at(15, 13)))
	assert.Equal(t, DaypartingBlocked, EvaluateDayparting(schedules, at(15, 12)))
	assert.Equal(t, DaypartingBlocked, EvaluateDayparting(schedules, at(15, 14)))
}

func TestEvaluateDaypartingUnrestricted(t *testing.T) {
	inactive := []DaypartingSchedule{{DayOfWeek: 3, StartHour: 0, EndHour: 1, IsActive: false}}
	for day := 15; day <= 21; day++ {
		for hour := 0; hour < 24; hour++ {
			assert.Equal(t, DaypartingAllowed, EvaluateDayparting(nil, at(day, hour)))
			assert.Equal(t, DaypartingAllowed, EvaluateDayparting(inactive, at(day, hour)))
		}
	}
}

func TestEvaluateDaypartingIgnoresInactiveRows(t *testing.T) {
	schedules := []DaypartingSchedule{
		{DayOfWeek: 0, StartHour: 0, EndHour: 23, IsActive: false},
		{DayOfWeek: 0, StartHour: 20, EndHour: 23, IsActive: true},
	}
	assert.Equal(t, DaypartingBlocked, EvaluateDayparting(schedules, at(15, 10)))
	assert.Equal(t, DaypartingAllowed, EvaluateDayparting(schedules, at(15, 21)))
}

func TestEvaluateDaypartingMidnightAsTwoRows(t *testing.T) {
	// Monday 22:00 through Tuesday 01:59.
	schedules := []DaypartingSchedule{
		{DayOfWeek: 0, StartHour: 22, EndHour: 23, IsActive: true},
		{DayOfWeek: 1, StartHour: 0, EndHour: 1, IsActive: true},
	}
	assert.Equal(t, DaypartingAllowed, EvaluateDayparting(schedules, at(15, 23)))
	assert.Equal(t, DaypartingAllowed, EvaluateDayparting(schedules, at(16, 1)))
	assert.Equal(t, DaypartingBlocked, EvaluateDayparting(schedules, at(16, 2)))
}
