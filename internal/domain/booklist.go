package domain

import "time"

// Status names a reading state for a booklist item ("reading", "finished", ...).
// Status names are unique.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BooklistItem tracks one book on one user's list. The (user, book) pair is
// the composite key; at most one item exists per pair.
type BooklistItem struct {
	UserID   int64 `json:"user_id"`
	BookID   int64 `json:"book_id"`
	StatusID int64 `json:"status_id"`
}

// Review is a user's score and comment for a book. The (user, book) pair is
// the composite key, and a review may only exist when a booklist item for the
// same pair already does.
type Review struct {
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Score     int       `json:"score"` // 0..10 inclusive
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Score bounds for reviews.
const (
	MinScore = 0
	MaxScore = 10
)
