package store

import (
	"context"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// ListAuthors returns every author in table scan order.
func (s *Store) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, full_name, bio, image_file FROM authors ORDER BY id`)
	if err != nil {
		return nil, mapQueryError(err, "authors")
	}
	defer rows.Close()

	var authors []domain.Author
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.FullName, &a.Bio, &a.ImageFile); err != nil {
			return nil, mapQueryError(err, "authors")
		}
		authors = append(authors, a)
	}
	return authors, mapQueryError(rows.Err(), "authors")
}

// CreateAuthor inserts a new author and returns its generated id.
func (s *Store) CreateAuthor(ctx context.Context, a domain.Author) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO authors (full_name, bio, image_file) VALUES (?, ?, ?)`,
		a.FullName, a.Bio, a.ImageFile)
	if err != nil {
		return 0, mapError(err, "author")
	}
	return lastInsertID(res)
}

// UpdateAuthor rewrites the mutable columns of an author row.
func (s *Store) UpdateAuthor(ctx context.Context, a domain.Author) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE authors SET full_name = ?, bio = ?, image_file = ? WHERE id = ?`,
		a.FullName, a.Bio, a.ImageFile, a.ID)
	return mapError(err, "author")
}

// DeleteAuthor removes an author row.
func (s *Store) DeleteAuthor(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	return mapError(err, "author")
}

// ListGenres returns every genre in table scan order.
func (s *Store) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, mapQueryError(err, "genres")
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, mapQueryError(err, "genres")
		}
		genres = append(genres, g)
	}
	return genres, mapQueryError(rows.Err(), "genres")
}

// CreateGenre inserts a new genre and returns its generated id.
func (s *Store) CreateGenre(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO genres (name) VALUES (?)`, name)
	if err != nil {
		return 0, mapError(err, "genre")
	}
	return lastInsertID(res)
}

// UpdateGenre renames a genre.
func (s *Store) UpdateGenre(ctx context.Context, g domain.Genre) error {
	_, err := s.db.ExecContext(ctx, `UPDATE genres SET name = ? WHERE id = ?`, g.Name, g.ID)
	return mapError(err, "genre")
}

// DeleteGenre removes a genre row.
func (s *Store) DeleteGenre(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	return mapError(err, "genre")
}

// ListStatuses returns every status in table scan order.
func (s *Store) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM statuses ORDER BY id`)
	if err != nil {
		return nil, mapQueryError(err, "statuses")
	}
	defer rows.Close()

	var statuses []domain.Status
	for rows.Next() {
		var st domain.Status
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, mapQueryError(err, "statuses")
		}
		statuses = append(statuses, st)
	}
	return statuses, mapQueryError(rows.Err(), "statuses")
}

// CreateStatus inserts a new status and returns its generated id.
func (s *Store) CreateStatus(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO statuses (name) VALUES (?)`, name)
	if err != nil {
		return 0, mapError(err, "status")
	}
	return lastInsertID(res)
}

// UpdateStatus renames a status.
func (s *Store) UpdateStatus(ctx context.Context, st domain.Status) error {
	_, err := s.db.ExecContext(ctx, `UPDATE statuses SET name = ? WHERE id = ?`, st.Name, st.ID)
	return mapError(err, "status")
}

// DeleteStatus removes a status row.
func (s *Store) DeleteStatus(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM statuses WHERE id = ?`, id)
	return mapError(err, "status")
}
