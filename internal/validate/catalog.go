package validate

import (
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

// Authors validates author mutations against cache state.
type Authors struct {
	reg *cache.Registry
}

// NewAuthors creates an author validator over the given registry.
func NewAuthors(reg *cache.Registry) *Authors {
	return &Authors{reg: reg}
}

// Getting returns the author with the given id or NOT_FOUND.
func (v *Authors) Getting(id int64) (domain.Author, error) {
	author, ok := v.reg.AuthorByID(id)
	if !ok {
		return domain.Author{}, apperrors.NotFoundf("author with id %d does not exist", id)
	}
	return author, nil
}

// Deleting gates author deletion: an author with books in the catalog cannot
// be removed.
func (v *Authors) Deleting(id int64) (domain.Author, error) {
	author, err := v.Getting(id)
	if err != nil {
		return domain.Author{}, err
	}
	if cache.Exists(v.reg.Books, func(b domain.Book) bool { return b.AuthorID == id }) {
		return domain.Author{}, apperrors.Forbiddenf("author %d still has books", id)
	}
	return author, nil
}

// Genres validates genre mutations against cache state.
type Genres struct {
	reg *cache.Registry
}

// NewGenres creates a genre validator over the given registry.
func NewGenres(reg *cache.Registry) *Genres {
	return &Genres{reg: reg}
}

// Getting returns the genre with the given id or NOT_FOUND.
func (v *Genres) Getting(id int64) (domain.Genre, error) {
	genre, ok := v.reg.GenreByID(id)
	if !ok {
		return domain.Genre{}, apperrors.NotFoundf("genre with id %d does not exist", id)
	}
	return genre, nil
}

// Creating gates genre creation: the name must be unique.
func (v *Genres) Creating(name string) error {
	if _, ok := v.reg.GenreByName(name); ok {
		return apperrors.Duplicatef("genre with name %q already exists", name)
	}
	return nil
}

// Updating gates a genre rename and returns the current genre.
func (v *Genres) Updating(id int64, name string) (domain.Genre, error) {
	genre, err := v.Getting(id)
	if err != nil {
		return domain.Genre{}, err
	}
	if existing, ok := v.reg.GenreByName(name); ok && existing.ID != id {
		return domain.Genre{}, apperrors.Duplicatef("genre with name %q already exists", name)
	}
	return genre, nil
}

// Deleting gates genre deletion: a genre still linked to books cannot be
// removed.
func (v *Genres) Deleting(id int64) (domain.Genre, error) {
	genre, err := v.Getting(id)
	if err != nil {
		return domain.Genre{}, err
	}
	if cache.Exists(v.reg.BookGenres, func(bg domain.BookGenre) bool { return bg.GenreID == id }) {
		return domain.Genre{}, apperrors.Forbiddenf("genre %d is still linked to books", id)
	}
	return genre, nil
}

// Statuses validates status mutations against cache state.
type Statuses struct {
	reg *cache.Registry
}

// NewStatuses creates a status validator over the given registry.
func NewStatuses(reg *cache.Registry) *Statuses {
	return &Statuses{reg: reg}
}

// Getting returns the status with the given id or NOT_FOUND.
func (v *Statuses) Getting(id int64) (domain.Status, error) {
	status, ok := v.reg.StatusByID(id)
	if !ok {
		return domain.Status{}, apperrors.NotFoundf("status with id %d does not exist", id)
	}
	return status, nil
}

// Creating gates status creation: the name must be unique.
func (v *Statuses) Creating(name string) error {
	if _, ok := v.reg.StatusByName(name); ok {
		return apperrors.Duplicatef("status with name %q already exists", name)
	}
	return nil
}

// Updating gates a status rename and returns the current status.
func (v *Statuses) Updating(id int64, name string) (domain.Status, error) {
	status, err := v.Getting(id)
	if err != nil {
		return domain.Status{}, err
	}
	if existing, ok := v.reg.StatusByName(name); ok && existing.ID != id {
		return domain.Status{}, apperrors.Duplicatef("status with name %q already exists", name)
	}
	return status, nil
}

// Deleting gates status deletion: a status referenced by booklist items
// cannot be removed.
func (v *Statuses) Deleting(id int64) (domain.Status, error) {
	status, err := v.Getting(id)
	if err != nil {
		return domain.Status{}, err
	}
	if cache.Exists(v.reg.Booklist, func(item domain.BooklistItem) bool { return item.StatusID == id }) {
		return domain.Status{}, apperrors.Forbiddenf("status %d is still used by booklist items", id)
	}
	return status, nil
}
