package srs

import (
	"testing"
	"time"
)

func activeSet(offsets ...int) map[time.Time]bool {
	m := make(map[time.Time]bool, len(offsets))
	for _, off := range offsets {
		m[t0.AddDate(0, 0, off)] = true
	}
	return m
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"no activity", nil, 0},
		{"today only", []int{0}, 1},
		{"three consecutive days", []int{0, -1, -2}, 3},
		{"yesterday only", []int{-1}, 1},
		{"gap at yesterday breaks chain", []int{0, -2, -3}, 1},
		{"gap mid-chain stops the walk", []int{0, -1, -3, -4}, 2},
		{"chain not ending today", []int{-1, -2, -3}, 3},
		{"day before yesterday only", []int{-2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(activeSet(tt.offsets...), t0); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakHorizonCap(t *testing.T) {
	// Activity every day far past the horizon: the backward walk stops at
	// StreakHorizon days, plus one for today.
	offsets := make([]int, 0, 61)
	for i := 0; i <= 60; i++ {
		offsets = append(offsets, -i)
	}
	got := Streak(activeSet(offsets...), t0)
	if got != StreakHorizon+1 {
		t.Errorf("Streak = %d, want %d", got, StreakHorizon+1)
	}
}

func TestStreakNormalizesAsOf(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	noon := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)
	if got := Streak(activeSet(0, -1), noon); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}
