package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/flashcard-trainer/internal/model"
)

// CategoryRepo provides CRUD operations for flashcard categories.  All
// lookups are scoped by user ID so one user can never see or modify
// another user's categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo returns a CategoryRepo bound to the given database.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *CategoryRepo) DB() *sql.DB { return r.db }

// Create inserts a category and populates the generated ID.
func (r *CategoryRepo) Create(ctx context.Context, cat *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (user_id, name) VALUES (?,?)",
		cat.UserID, cat.Name)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrCategoryExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cat.ID = uint64(id)
	return nil
}

// GetByIDAndUser fetches a category owned by the given user.
func (r *CategoryRepo) GetByIDAndUser(ctx context.Context, id, userID uint64) (model.Category, error) {
	var cat model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM categories WHERE id=? AND user_id=? LIMIT 1",
		id, userID).Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Category{}, ErrCategoryNotFound
	}
	return cat, err
}

// GetByNameAndUser fetches a category by its per-user unique name.
func (r *CategoryRepo) GetByNameAndUser(ctx context.Context, name string, userID uint64) (model.Category, error) {
	var cat model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM categories WHERE name=? AND user_id=? LIMIT 1",
		strings.TrimSpace(name), userID).Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Category{}, ErrCategoryNotFound
	}
	return cat, err
}

// ListByUser returns all categories of a user ordered by name.
func (r *CategoryRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM categories WHERE user_id=? ORDER BY name",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// Delete removes a category owned by the user and detaches its flashcards
// (the cards survive with a null category). Both statements run in one
// transaction so a failure leaves nothing half-done.
func (r *CategoryRepo) Delete(ctx context.Context, id, userID uint64) error {
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
		"UPDATE flashcards SET category_id=NULL WHERE category_id=? AND user_id=?",
		id, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM categories WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
