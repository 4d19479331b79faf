package store

import (
	"context"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// ListBooklistItems returns every booklist item in table scan order.
func (s *Store) ListBooklistItems(ctx context.Context) ([]domain.BooklistItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, book_id, status_id FROM booklist_items ORDER BY user_id, book_id`)
	if err != nil {
		return nil, mapQueryError(err, "booklist items")
	}
	defer rows.Close()

	var items []domain.BooklistItem
	for rows.Next() {
		var item domain.BooklistItem
		if err := rows.Scan(&item.UserID, &item.BookID, &item.StatusID); err != nil {
			return nil, mapQueryError(err, "booklist items")
		}
		items = append(items, item)
	}
	return items, mapQueryError(rows.Err(), "booklist items")
}

// CreateBooklistItem inserts a booklist item keyed by (user, book).
func (s *Store) CreateBooklistItem(ctx context.Context, item domain.BooklistItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO booklist_items (user_id, book_id, status_id) VALUES (?, ?, ?)`,
		item.UserID, item.BookID, item.StatusID)
	return mapError(err, "booklist item")
}

// UpdateBooklistItem changes the status of an existing booklist item.
func (s *Store) UpdateBooklistItem(ctx context.Context, item domain.BooklistItem) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE booklist_items SET status_id = ? WHERE user_id = ? AND book_id = ?`,
		item.StatusID, item.UserID, item.BookID)
	return mapError(err, "booklist item")
}

// DeleteBooklistItem removes a booklist item row.
func (s *Store) DeleteBooklistItem(ctx context.Context, userID, bookID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM booklist_items WHERE user_id = ? AND book_id = ?`, userID, bookID)
	return mapError(err, "booklist item")
}

// ListReviews returns every review in table scan order.
func (s *Store) ListReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, book_id, score, comment, created_at FROM reviews ORDER BY user_id, book_id`)
	if err != nil {
		return nil, mapQueryError(err, "reviews")
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var (
			r         domain.Review
			createdAt string
		)
		if err := rows.Scan(&r.UserID, &r.BookID, &r.Score, &r.Comment, &createdAt); err != nil {
			return nil, mapQueryError(err, "reviews")
		}
		r.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, mapQueryError(err, "reviews")
		}
		reviews = append(reviews, r)
	}
	return reviews, mapQueryError(rows.Err(), "reviews")
}

// CreateReview inserts a review keyed by (user, book).
func (s *Store) CreateReview(ctx context.Context, r domain.Review) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, book_id, score, comment, created_at) VALUES (?, ?, ?, ?, ?)`,
		r.UserID, r.BookID, r.Score, r.Comment, formatTime(r.CreatedAt))
	return mapError(err, "review")
}

// UpdateReview rewrites the score and comment of an existing review.
func (s *Store) UpdateReview(ctx context.Context, r domain.Review) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE reviews SET score = ?, comment = ? WHERE user_id = ? AND book_id = ?`,
		r.Score, r.Comment, r.UserID, r.BookID)
	return mapError(err, "review")
}

// DeleteReview removes a review row.
func (s *Store) DeleteReview(ctx context.Context, userID, bookID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE user_id = ? AND book_id = ?`, userID, bookID)
	return mapError(err, "review")
}
