package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// Source is the slice of the durable store the registry reads from.
// *store.Store satisfies it.
type Source interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListAuthors(ctx context.Context) ([]domain.Author, error)
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	ListStatuses(ctx context.Context) ([]domain.Status, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	ListBookGenres(ctx context.Context) ([]domain.BookGenre, error)
	ListBooklistItems(ctx context.Context) ([]domain.BooklistItem, error)
	ListReviews(ctx context.Context) ([]domain.Review, error)
}

// Registry owns one snapshot cache per entity table. It is created once at
// startup and handed to validators and services; there is no ambient global
// cache state.
type Registry struct {
	Roles      *Cache[domain.Role]
	Users      *Cache[domain.User]
	Authors    *Cache[domain.Author]
	Genres     *Cache[domain.Genre]
	Statuses   *Cache[domain.Status]
	Books      *Cache[domain.Book]
	BookGenres *Cache[domain.BookGenre]
	Booklist   *Cache[domain.BooklistItem]
	Reviews    *Cache[domain.Review]

	logger *slog.Logger
}

// NewRegistry wires one cache per entity table against the given source.
func NewRegistry(src Source, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		Roles:      New("roles", src.ListRoles),
		Users:      New("users", src.ListUsers),
		Authors:    New("authors", src.ListAuthors),
		Genres:     New("genres", src.ListGenres),
		Statuses:   New("statuses", src.ListStatuses),
		Books:      New("books", src.ListBooks),
		BookGenres: New("book_genres", src.ListBookGenres),
		Booklist:   New("booklist_items", src.ListBooklistItems),
		Reviews:    New("reviews", src.ListReviews),
		logger:     logger,
	}
}

// InitAll refreshes every cache. Tables are disjoint so order does not
// matter; any failure aborts startup, since the process must not serve requests
// with missing caches.
func (r *Registry) InitAll(ctx context.Context) error {
	type refresher interface {
		Refresh(ctx context.Context) error
	}
	all := []refresher{
		r.Roles, r.Users, r.Authors, r.Genres, r.Statuses,
		r.Books, r.BookGenres, r.Booklist, r.Reviews,
	}
	for _, c := range all {
		if err := c.Refresh(ctx); err != nil {
			return fmt.Errorf("initialize caches: %w", err)
		}
	}
	r.logger.Info("caches initialized",
		"roles", r.Roles.Len(),
		"users", r.Users.Len(),
		"authors", r.Authors.Len(),
		"genres", r.Genres.Len(),
		"statuses", r.Statuses.Len(),
		"books", r.Books.Len(),
		"booklist_items", r.Booklist.Len(),
		"reviews", r.Reviews.Len(),
	)
	return nil
}
