package model

import "time"

// Category groups a user's flashcards under a name ("Spanish verbs",
// "Organic chemistry", ...).  Categories are private to their owner and
// a user cannot have two categories with the same name.
//
// Fields:
//  ID        – primary key identifier of the category.
//  UserID    – owner of the category.
//  Name      – display name, unique per user.
//  CreatedAt – timestamp of creation.
type Category struct {
	ID        uint64    // categories.id
	UserID    uint64    // categories.user_id
	Name      string    // categories.name
	CreatedAt time.Time // categories.created_at
}
