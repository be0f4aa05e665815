package srs

import "time"

// StreakHorizon bounds the backward walk of Streak. A streak longer than
// the horizon undercounts; acceptable for a UI counter, this is not a
// ledger.
const StreakHorizon = 30

// Streak counts the user's consecutive days with review activity ending
// at asOf. The walk starts at yesterday and stops at the first gap; if
// asOf itself has activity it adds one. So activity today with none
// yesterday is a streak of 1, and no activity today or yesterday is 0.
//
// activeDays keys must be calendar dates as produced by DateOf.
func Streak(activeDays map[time.Time]bool, asOf time.Time) int {
	today := DateOf(asOf)
	streak := 0
	for i := 1; i <= StreakHorizon; i++ {
		if !activeDays[today.AddDate(0, 0, -i)] {
			break
		}
		streak++
	}
	if activeDays[today] {
		streak++
	}
	return streak
}
