package srs

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	return t0.AddDate(0, 0, offset)
}

func TestDueQueueFiltersAndOrders(t *testing.T) {
	entries := []Entry{
		{CardID: 1, Due: day(1)},  // tomorrow: not due
		{CardID: 2, Due: day(0)},  // today
		{CardID: 3, Due: day(-3)}, // overdue
	}
	got := DueQueue(entries, t0, 0)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].CardID != 3 || got[1].CardID != 2 {
		t.Errorf("order = [%d, %d], want [3, 2]", got[0].CardID, got[1].CardID)
	}
}

func TestDueQueueTieBreak(t *testing.T) {
	entries := []Entry{
		{CardID: 9, Due: day(-1)},
		{CardID: 2, Due: day(-1)},
		{CardID: 5, Due: day(-1)},
	}
	got := DueQueue(entries, t0, 0)
	want := []uint64{2, 5, 9}
	for i, id := range want {
		if got[i].CardID != id {
			t.Fatalf("got[%d].CardID = %d, want %d", i, got[i].CardID, id)
		}
	}
}

func TestDueQueueCap(t *testing.T) {
	entries := make([]Entry, DefaultQueueLimit+50)
	for i := range entries {
		entries[i] = Entry{CardID: uint64(i + 1), Due: day(-1)}
	}
	got := DueQueue(entries, t0, 0)
	if len(got) != DefaultQueueLimit {
		t.Errorf("len = %d, want %d", len(got), DefaultQueueLimit)
	}

	got = DueQueue(entries, t0, 10)
	if len(got) != 10 {
		t.Errorf("len with explicit limit = %d, want 10", len(got))
	}
}

func TestDueQueueDoesNotModifyInput(t *testing.T) {
	entries := []Entry{
		{CardID: 2, Due: day(0)},
		{CardID: 1, Due: day(-2)},
	}
	_ = DueQueue(entries, t0, 0)
	if entries[0].CardID != 2 || entries[1].CardID != 1 {
		t.Error("input slice was reordered")
	}
}

func TestSessionQueueIgnoresDueDates(t *testing.T) {
	entries := []Entry{
		{CardID: 1, Due: day(30)}, // far future: still included
		{CardID: 2, Due: day(-1)},
	}
	got := SessionQueue(entries, 0)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].CardID != 2 || got[1].CardID != 1 {
		t.Errorf("order = [%d, %d], want [2, 1]", got[0].CardID, got[1].CardID)
	}
}
