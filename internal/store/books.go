package store

import (
	"context"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (domain.Book, error) {
	var (
		b         domain.Book
		createdAt string
	)
	err := scanner.Scan(&b.ID, &b.AuthorID, &b.Title, &b.Description, &b.ImageFile, &b.BookFile, &createdAt)
	if err != nil {
		return domain.Book{}, err
	}
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return domain.Book{}, err
	}
	return b, nil
}

// ListBooks returns every book in table scan order.
func (s *Store) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author_id, title, description, image_file, book_file, created_at FROM books ORDER BY id`)
	if err != nil {
		return nil, mapQueryError(err, "books")
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, mapQueryError(err, "books")
		}
		books = append(books, b)
	}
	return books, mapQueryError(rows.Err(), "books")
}

// ListBookGenres returns every book/genre relation row in table scan order.
func (s *Store) ListBookGenres(ctx context.Context) ([]domain.BookGenre, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id, genre_id FROM book_genres ORDER BY book_id, genre_id`)
	if err != nil {
		return nil, mapQueryError(err, "book genres")
	}
	defer rows.Close()

	var links []domain.BookGenre
	for rows.Next() {
		var bg domain.BookGenre
		if err := rows.Scan(&bg.BookID, &bg.GenreID); err != nil {
			return nil, mapQueryError(err, "book genres")
		}
		links = append(links, bg)
	}
	return links, mapQueryError(rows.Err(), "book genres")
}

// CreateBook inserts a book and its genre relations in one transaction and
// returns the generated book id.
func (s *Store) CreateBook(ctx context.Context, b domain.Book, genreIDs []int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapError(err, "book")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO books (author_id, title, description, image_file, book_file, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.AuthorID, b.Title, b.Description, b.ImageFile, b.BookFile, formatTime(b.CreatedAt))
	if err != nil {
		return 0, mapError(err, "book")
	}
	bookID, err := lastInsertID(res)
	if err != nil {
		return 0, err
	}

	for _, genreID := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)`, bookID, genreID); err != nil {
			return 0, mapError(err, "book genre")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, mapError(err, "book")
	}
	return bookID, nil
}

// UpdateBook rewrites the mutable columns of a book row and, when genreIDs is
// non-nil, replaces its genre relations in the same transaction.
func (s *Store) UpdateBook(ctx context.Context, b domain.Book, genreIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err, "book")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE books SET author_id = ?, title = ?, description = ?, image_file = ?, book_file = ? WHERE id = ?`,
		b.AuthorID, b.Title, b.Description, b.ImageFile, b.BookFile, b.ID)
	if err != nil {
		return mapError(err, "book")
	}

	if genreIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = ?`, b.ID); err != nil {
			return mapError(err, "book genre")
		}
		for _, genreID := range genreIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)`, b.ID, genreID); err != nil {
				return mapError(err, "book genre")
			}
		}
	}

	return mapError(tx.Commit(), "book")
}

// DeleteBook removes a book row and its genre relations.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err, "book")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = ?`, id); err != nil {
		return mapError(err, "book genre")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return mapError(err, "book")
	}

	return mapError(tx.Commit(), "book")
}
