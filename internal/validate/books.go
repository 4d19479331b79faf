package validate

import (
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

// Books validates book mutations against cache state.
type Books struct {
	reg *cache.Registry
}

// NewBooks creates a book validator over the given registry.
func NewBooks(reg *cache.Registry) *Books {
	return &Books{reg: reg}
}

// Getting returns the book with the given id or NOT_FOUND.
func (v *Books) Getting(id int64) (domain.Book, error) {
	book, ok := v.reg.BookByID(id)
	if !ok {
		return domain.Book{}, apperrors.NotFoundf("book with id %d does not exist", id)
	}
	return book, nil
}

// Creating gates book creation: the author must exist and the genre list
// must be non-empty with every genre present in cache.
func (v *Books) Creating(authorID int64, genreIDs []int64) error {
	if _, ok := v.reg.AuthorByID(authorID); !ok {
		return apperrors.ReferenceNotFoundf("author with id %d does not exist", authorID)
	}
	if len(genreIDs) == 0 {
		return apperrors.InvalidInput("genreIds must not be empty")
	}
	return v.requireGenres(genreIDs)
}

// Updating gates a book update and returns the current book. A nil authorID
// or genreIDs leaves the corresponding field unchanged.
func (v *Books) Updating(id int64, authorID *int64, genreIDs []int64) (domain.Book, error) {
	book, err := v.Getting(id)
	if err != nil {
		return domain.Book{}, err
	}
	if authorID != nil {
		if _, ok := v.reg.AuthorByID(*authorID); !ok {
			return domain.Book{}, apperrors.ReferenceNotFoundf("author with id %d does not exist", *authorID)
		}
	}
	if genreIDs != nil {
		if len(genreIDs) == 0 {
			return domain.Book{}, apperrors.InvalidInput("genreIds must not be empty")
		}
		if err := v.requireGenres(genreIDs); err != nil {
			return domain.Book{}, err
		}
	}
	return book, nil
}

// Deleting gates book deletion: a book with live booklist items or reviews
// cannot be removed.
func (v *Books) Deleting(id int64) (domain.Book, error) {
	book, err := v.Getting(id)
	if err != nil {
		return domain.Book{}, err
	}
	if cache.Exists(v.reg.Booklist, func(item domain.BooklistItem) bool { return item.BookID == id }) {
		return domain.Book{}, apperrors.Forbiddenf("book %d is still on booklists", id)
	}
	if cache.Exists(v.reg.Reviews, func(r domain.Review) bool { return r.BookID == id }) {
		return domain.Book{}, apperrors.Forbiddenf("book %d still has reviews", id)
	}
	return book, nil
}

// Filters validates the read-side filter options for books.
func (v *Books) Filters(f dto.BookFilters) error {
	return v.requireGenres(f.SearchGenreIDs)
}

func (v *Books) requireGenres(genreIDs []int64) error {
	for _, genreID := range genreIDs {
		if _, ok := v.reg.GenreByID(genreID); !ok {
			return apperrors.ReferenceNotFoundf("genre with id %d does not exist", genreID)
		}
	}
	return nil
}
