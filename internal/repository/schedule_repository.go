package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/flashcard-trainer/internal/model"
)

// ScheduleRepo persists the Review Records driving the SM-2 scheduler.
// The write path (one review submission) goes through the *Tx methods so
// the handler can lock the row for the duration of the update: two
// in-flight submissions for the same (user, card) pair must serialize,
// otherwise a lost update could corrupt repetitions or the ease factor.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo returns a ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *ScheduleRepo) DB() *sql.DB { return r.db }

// GetForUpdateTx loads the schedule row for a (user, card) pair with a
// row lock (SELECT ... FOR UPDATE) inside the given transaction. Returns
// ErrScheduleNotFound when no row exists yet.
func (r *ScheduleRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, userID, flashcardID uint64) (model.ReviewSchedule, error) {
	var s model.ReviewSchedule
	err := tx.QueryRowContext(ctx,
		`SELECT id, user_id, flashcard_id, repetitions, ease_factor, interval_days, next_review_date, updated_at
		 FROM review_schedules WHERE user_id=? AND flashcard_id=? LIMIT 1 FOR UPDATE`,
		userID, flashcardID).Scan(
		&s.ID, &s.UserID, &s.FlashcardID, &s.Repetitions, &s.EaseFactor,
		&s.IntervalDays, &s.NextReviewDate, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.ReviewSchedule{}, ErrScheduleNotFound
	}
	return s, err
}

// CreateDefaultTx inserts a default record (0 repetitions, ease 2.5,
// one-day interval, due on dueDate) for the pair and returns it with the
// generated ID. Used to lazily create the record when a card is reviewed
// before one exists.
func (r *ScheduleRepo) CreateDefaultTx(ctx context.Context, tx *sql.Tx, userID, flashcardID uint64, dueDate time.Time) (model.ReviewSchedule, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO review_schedules
		 (user_id, flashcard_id, repetitions, ease_factor, interval_days, next_review_date)
		 VALUES (?,?,0,2.5,1,?)`,
		userID, flashcardID, dueDate)
	if err != nil {
		return model.ReviewSchedule{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ReviewSchedule{}, err
	}
	return model.ReviewSchedule{
		ID:             uint64(id),
		UserID:         userID,
		FlashcardID:    flashcardID,
		Repetitions:    0,
		EaseFactor:     2.5,
		IntervalDays:   1,
		NextReviewDate: dueDate,
	}, nil
}

// UpdateStateTx writes the scheduler's output back to the row. Must run
// in the same transaction that locked the row.
func (r *ScheduleRepo) UpdateStateTx(ctx context.Context, tx *sql.Tx, id uint64, repetitions int, easeFactor float64, intervalDays int, nextReview time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE review_schedules
		 SET repetitions=?, ease_factor=?, interval_days=?, next_review_date=?
		 WHERE id=?`,
		repetitions, easeFactor, intervalDays, nextReview, id)
	return err
}

// QueueItem is a schedule row joined with its card's content, the unit
// the review queue endpoints work with.
type QueueItem struct {
	FlashcardID    uint64
	Front          string
	Back           string
	Repetitions    int
	EaseFactor     float64
	NextReviewDate time.Time
}

const queueItemSelect = `
	SELECT s.flashcard_id, f.front, f.back, s.repetitions, s.ease_factor, s.next_review_date
	FROM review_schedules s
	JOIN flashcards f ON f.id = s.flashcard_id`

// ListByUser returns every schedule row of a user joined with card
// content. Ordering and due-date filtering are left to the srs package
// so the policy lives in exactly one place.
func (r *ScheduleRepo) ListByUser(ctx context.Context, userID uint64) ([]QueueItem, error) {
	rows, err := r.db.QueryContext(ctx, queueItemSelect+" WHERE s.user_id=?", userID)
	if err != nil {
		return nil, err
	}
	return scanQueueItems(rows)
}

// ListByUserAndCategory restricts ListByUser to cards of one category.
func (r *ScheduleRepo) ListByUserAndCategory(ctx context.Context, userID, categoryID uint64) ([]QueueItem, error) {
	rows, err := r.db.QueryContext(ctx,
		queueItemSelect+" WHERE s.user_id=? AND f.category_id=?", userID, categoryID)
	if err != nil {
		return nil, err
	}
	return scanQueueItems(rows)
}

func scanQueueItems(rows *sql.Rows) ([]QueueItem, error) {
	defer rows.Close()
	var items []QueueItem
	for rows.Next() {
		var it QueueItem
		if err := rows.Scan(&it.FlashcardID, &it.Front, &it.Back, &it.Repetitions, &it.EaseFactor, &it.NextReviewDate); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ScheduleState is the pair of fields the classification policy reads.
type ScheduleState struct {
	Repetitions int
	EaseFactor  float64
}

// ListStates returns the (repetitions, ease_factor) pairs of all of a
// user's schedules. Stage counts are computed in Go through the shared
// classification policy rather than duplicated as SQL predicates.
func (r *ScheduleRepo) ListStates(ctx context.Context, userID uint64) ([]ScheduleState, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT repetitions, ease_factor FROM review_schedules WHERE user_id=?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []ScheduleState
	for rows.Next() {
		var s ScheduleState
		if err := rows.Scan(&s.Repetitions, &s.EaseFactor); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}
