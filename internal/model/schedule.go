package model

import "time"

// ReviewSchedule is the Review Record: the per-(user, card) scheduling
// state read and written by the SM-2 scheduler.  There is at most one row
// per (user, flashcard) pair; it is created with defaults when the card is
// created (or lazily on first review) and deleted with the card.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – owner of the record.
//  FlashcardID    – the card this record schedules.
//  Repetitions    – consecutive passing reviews since the last lapse.
//  EaseFactor     – SM-2 difficulty multiplier, floored at 1.3.
//  IntervalDays   – days until the next review.
//  NextReviewDate – calendar date (DATE column, no time of day) the card
//                   becomes due again.
//  UpdatedAt      – timestamp of the last scheduler write.
type ReviewSchedule struct {
	ID             uint64    // review_schedules.id
	UserID         uint64    // review_schedules.user_id
	FlashcardID    uint64    // review_schedules.flashcard_id
	Repetitions    int       // review_schedules.repetitions
	EaseFactor     float64   // review_schedules.ease_factor
	IntervalDays   int       // review_schedules.interval_days
	NextReviewDate time.Time // review_schedules.next_review_date
	UpdatedAt      time.Time // review_schedules.updated_at
}
