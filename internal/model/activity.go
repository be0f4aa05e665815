package model

import "time"

// DailyActivity is the per-user, per-day review activity aggregate used
// by the streak counter and the progress charts.  At most one row exists
// per (user, date); reviews later the same day increment Score instead of
// inserting new rows.
//
// Fields:
//  UserID       – owner of the entry.
//  ActivityDate – calendar date (DATE column) the activity happened on.
//  Score        – number of reviews recorded that day.
type DailyActivity struct {
	UserID       uint64    // daily_activities.user_id
	ActivityDate time.Time // daily_activities.activity_date
	Score        int       // daily_activities.score
}
