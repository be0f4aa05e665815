package model

import "time"

// Flashcard is a single front/back card owned by a user.  The category
// reference is nullable: deleting a category detaches its cards instead
// of destroying them.
//
// Fields:
//  ID         – primary key identifier of the card.
//  UserID     – owner of the card.
//  CategoryID – optional category the card belongs to.
//  Front      – prompt side shown first during review.
//  Back       – answer side.
//  CreatedAt  – timestamp of creation.
type Flashcard struct {
	ID         uint64    // flashcards.id
	UserID     uint64    // flashcards.user_id
	CategoryID *uint64   // flashcards.category_id (nullable)
	Front      string    // flashcards.front
	Back       string    // flashcards.back
	CreatedAt  time.Time // flashcards.created_at
}
