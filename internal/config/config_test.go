package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePracticeTimes(t *testing.T) {
	cfg := &Config{
		MorningAt:     "06:00",
		EveningAt:     "15:00",
		Day3MorningAt: "07:30",
		Day3EveningAt: "19:45",
	}

	morning, evening := cfg.ResolvePracticeTimes(1)
	assert.Equal(t, ClockTime{Hour: 6}, morning)
	assert.Equal(t, ClockTime{Hour: 15}, evening)

	morning, evening = cfg.ResolvePracticeTimes(3)
	assert.Equal(t, ClockTime{Hour: 7, Minute: 30}, morning)
	assert.Equal(t, ClockTime{Hour: 19, Minute: 45}, evening)

	// После дня 3 расписание возвращается к обычному.
	morning, evening = cfg.ResolvePracticeTimes(4)
	assert.Equal(t, ClockTime{Hour: 6}, morning)
	assert.Equal(t, ClockTime{Hour: 15}, evening)
}

func TestMustClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want ClockTime
	}{
		{"06:00", ClockTime{Hour: 6}},
		{"23:59", ClockTime{Hour: 23, Minute: 59}},
		{"0:5", ClockTime{Minute: 5}},
		{"24:00", ClockTime{}},
		{"12:60", ClockTime{}},
		{"garbage", ClockTime{}},
		{"", ClockTime{}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, mustClockTime(tc.in), tc.in)
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminUserIDs: []int64{10, 20}}
	assert.True(t, cfg.IsAdmin(10))
	assert.True(t, cfg.IsAdmin(20))
	assert.False(t, cfg.IsAdmin(30))

	empty := &Config{}
	assert.False(t, empty.IsAdmin(10))
}
