package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/flashcard-trainer/internal/model"
)

// FlashcardRepo provides CRUD operations for flashcards.  Creation seeds
// the card's review schedule in the same transaction so a card can never
// exist without its Review Record; deletion removes both.
type FlashcardRepo struct {
	db *sql.DB
}

// NewFlashcardRepo returns a FlashcardRepo bound to the given database.
func NewFlashcardRepo(db *sql.DB) *FlashcardRepo { return &FlashcardRepo{db: db} }

// DB exposes the underlying handle for cross-repository transactions.
func (r *FlashcardRepo) DB() *sql.DB { return r.db }

// FlashcardWithCategory is the listing view of a card: the card row plus
// the resolved category name (empty when the card is uncategorized).
type FlashcardWithCategory struct {
	model.Flashcard
	CategoryName string
}

// Create inserts the card and its default review schedule (due today)
// in one transaction, populating the generated card ID.
func (r *FlashcardRepo) Create(ctx context.Context, card *model.Flashcard, dueDate time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO flashcards (user_id, category_id, front, back) VALUES (?,?,?,?)",
		card.UserID, card.CategoryID, card.Front, card.Back)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	card.ID = uint64(id)

	// Default SM-2 state: zero repetitions, initial ease, one-day
	// interval, reviewable immediately.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO review_schedules
		 (user_id, flashcard_id, repetitions, ease_factor, interval_days, next_review_date)
		 VALUES (?,?,0,2.5,1,?)`,
		card.UserID, card.ID, dueDate); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByIDAndUser fetches a single card owned by the user.
func (r *FlashcardRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (model.Flashcard, error) {
	var (
		card  model.Flashcard
		catID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, category_id, front, back, created_at FROM flashcards WHERE id=? AND user_id=? LIMIT 1",
		id, userID).Scan(&card.ID, &card.UserID, &catID, &card.Front, &card.Back, &card.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Flashcard{}, ErrFlashcardNotFound
	}
	if err != nil {
		return model.Flashcard{}, err
	}
	if catID.Valid {
		v := uint64(catID.Int64)
		card.CategoryID = &v
	}
	return card, nil
}

// ListByUser returns all of a user's cards with their category names.
func (r *FlashcardRepo) ListByUser(ctx context.Context, userID uint64) ([]FlashcardWithCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT f.id, f.user_id, f.category_id, f.front, f.back, f.created_at,
		        COALESCE(c.name, '')
		 FROM flashcards f
		 LEFT JOIN categories c ON c.id = f.category_id
		 WHERE f.user_id=?
		 ORDER BY f.id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []FlashcardWithCategory
	for rows.Next() {
		var (
			fc    FlashcardWithCategory
			catID sql.NullInt64
		)
		if err := rows.Scan(&fc.ID, &fc.UserID, &catID, &fc.Front, &fc.Back, &fc.CreatedAt, &fc.CategoryName); err != nil {
			return nil, err
		}
		if catID.Valid {
			v := uint64(catID.Int64)
			fc.CategoryID = &v
		}
		cards = append(cards, fc)
	}
	return cards, rows.Err()
}

// CountByUser returns the user's total number of cards.
func (r *FlashcardRepo) CountByUser(ctx context.Context, userID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM flashcards WHERE user_id=?", userID).Scan(&n)
	return n, err
}

// Delete removes a card owned by the user together with its review
// schedule, in one transaction.
func (r *FlashcardRepo) Delete(ctx context.Context, id, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM review_schedules WHERE flashcard_id=? AND user_id=?",
		id, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM flashcards WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFlashcardNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
