package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/flashcard-trainer/internal/model"
)

// ActivityRepo persists the per-user daily review activity aggregate.
// The table holds at most one row per (user, date); recording another
// review on the same day increments the existing row's score.
type ActivityRepo struct {
	db *sql.DB
}

// NewActivityRepo returns an ActivityRepo bound to the given database.
func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{db: db} }

// RecordTx upserts one unit of activity for the user on the given date,
// inside the caller's transaction so the activity write commits or rolls
// back together with the schedule update.
func (r *ActivityRepo) RecordTx(ctx context.Context, tx *sql.Tx, userID uint64, date time.Time) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO daily_activities (user_id, activity_date, score)
		 VALUES (?,?,1)
		 ON DUPLICATE KEY UPDATE score = score + 1`,
		userID, date)
	return err
}

// ActiveDaysSince returns the set of dates on or after `since` with any
// recorded activity, keyed by midnight-UTC date for the streak counter.
func (r *ActivityRepo) ActiveDaysSince(ctx context.Context, userID uint64, since time.Time) (map[time.Time]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT activity_date FROM daily_activities WHERE user_id=? AND activity_date>=?",
		userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make(map[time.Time]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days[d.UTC()] = true
	}
	return days, rows.Err()
}

// DailyScoresSince returns the per-day scores on or after `since`,
// ordered by date, for the progress charts.
func (r *ActivityRepo) DailyScoresSince(ctx context.Context, userID uint64, since time.Time) ([]model.DailyActivity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, activity_date, score FROM daily_activities
		 WHERE user_id=? AND activity_date>=? ORDER BY activity_date`,
		userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.DailyActivity
	for rows.Next() {
		var e model.DailyActivity
		if err := rows.Scan(&e.UserID, &e.ActivityDate, &e.Score); err != nil {
			return nil, err
		}
		e.ActivityDate = e.ActivityDate.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// TotalScoreBefore sums all activity recorded strictly before the cutoff
// date. The chart endpoint uses it as the baseline for its cumulative
// series.
func (r *ActivityRepo) TotalScoreBefore(ctx context.Context, userID uint64, cutoff time.Time) (int, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT SUM(score) FROM daily_activities WHERE user_id=? AND activity_date<?",
		userID, cutoff).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
