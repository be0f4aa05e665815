// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewRecordedEvent is published after a review submission commits.
// It contains enough information for downstream consumers to log or feed
// analytics without querying the primary database. Publishing happens
// after the transaction, so a broker outage can never lose or corrupt
// scheduling state — only this notification.
type ReviewRecordedEvent struct {
	UserID       uint64  `json:"user_id"`
	FlashcardID  uint64  `json:"flashcard_id"`
	Grade        int     `json:"grade"`
	Repetitions  int     `json:"repetitions"`
	EaseFactor   float64 `json:"ease_factor"`
	IntervalDays int     `json:"interval_days"`
	NextReview   string  `json:"next_review"`
	Stage        string  `json:"stage"`
	ReviewedAt   string  `json:"reviewed_at"`
}
