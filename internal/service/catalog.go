package service

import (
	"context"
	"log/slog"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/validate"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

// AuthorService serves author reads from cache and runs author mutations.
type AuthorService struct {
	store     *store.Store
	reg       *cache.Registry
	logger    *slog.Logger
	validator *validation.Validator
	authors   *validate.Authors
}

// NewAuthorService creates a new author service.
func NewAuthorService(st *store.Store, reg *cache.Registry, logger *slog.Logger) *AuthorService {
	return &AuthorService{
		store:     st,
		reg:       reg,
		logger:    logger,
		validator: validation.New(),
		authors:   validate.NewAuthors(reg),
	}
}

// Find returns all authors in cache order.
func (s *AuthorService) Find() []dto.Author {
	authors := s.reg.Authors.Snapshot()
	out := make([]dto.Author, 0, len(authors))
	for _, a := range authors {
		out = append(out, parseAuthorToDto(a))
	}
	return out
}

// FindOne returns the author with the given id.
func (s *AuthorService) FindOne(id int64) (dto.Author, error) {
	author, err := s.authors.Getting(id)
	if err != nil {
		return dto.Author{}, err
	}
	return parseAuthorToDto(author), nil
}

// CreateAuthorRequest contains fields for creating an author.
type CreateAuthorRequest struct {
	FullName  string `json:"fullName" validate:"required,min=1,max=255"`
	Bio       string `json:"bio" validate:"max=5000"`
	ImageFile string `json:"imageFile"`
}

// Create writes a new author and refreshes the authors cache.
func (s *AuthorService) Create(ctx context.Context, req CreateAuthorRequest) (dto.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Author{}, err
	}

	id, err := s.store.CreateAuthor(ctx, domain.Author{
		FullName:  req.FullName,
		Bio:       req.Bio,
		ImageFile: req.ImageFile,
	})
	if err != nil {
		return dto.Author{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Authors); err != nil {
		return dto.Author{}, err
	}

	author, ok := s.reg.AuthorByID(id)
	if !ok {
		return dto.Author{}, apperrors.Internalf("author %d missing from cache after refresh", id)
	}
	return parseAuthorToDto(author), nil
}

// UpdateAuthorRequest contains fields for updating an author. Nil fields are
// left unchanged.
type UpdateAuthorRequest struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=1,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=5000"`
	ImageFile *string `json:"imageFile"`
}

// Update changes an author's fields.
func (s *AuthorService) Update(ctx context.Context, id int64, req UpdateAuthorRequest) (dto.Author, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Author{}, err
	}
	author, err := s.authors.Getting(id)
	if err != nil {
		return dto.Author{}, err
	}

	if req.FullName != nil {
		author.FullName = *req.FullName
	}
	if req.Bio != nil {
		author.Bio = *req.Bio
	}
	if req.ImageFile != nil {
		author.ImageFile = *req.ImageFile
	}

	if err := s.store.UpdateAuthor(ctx, author); err != nil {
		return dto.Author{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Authors); err != nil {
		return dto.Author{}, err
	}
	return parseAuthorToDto(author), nil
}

// Delete removes an author. Authors still referenced by books are refused.
func (s *AuthorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.authors.Deleting(id); err != nil {
		return err
	}
	if err := s.store.DeleteAuthor(ctx, id); err != nil {
		return err
	}
	return refreshAfterWrite(ctx, s.logger, s.reg.Authors)
}

func parseAuthorToDto(a domain.Author) dto.Author {
	return dto.Author{ID: a.ID, FullName: a.FullName, Bio: a.Bio, ImageFile: a.ImageFile}
}

// GenreService serves genre reads from cache and runs genre mutations.
type GenreService struct {
	store     *store.Store
	reg       *cache.Registry
	logger    *slog.Logger
	validator *validation.Validator
	genres    *validate.Genres
}

// NewGenreService creates a new genre service.
func NewGenreService(st *store.Store, reg *cache.Registry, logger *slog.Logger) *GenreService {
	return &GenreService{
		store:     st,
		reg:       reg,
		logger:    logger,
		validator: validation.New(),
		genres:    validate.NewGenres(reg),
	}
}

// Find returns all genres in cache order.
func (s *GenreService) Find() []dto.Genre {
	genres := s.reg.Genres.Snapshot()
	out := make([]dto.Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, dto.Genre{ID: g.ID, Name: g.Name})
	}
	return out
}

// FindOne returns the genre with the given id.
func (s *GenreService) FindOne(id int64) (dto.Genre, error) {
	genre, err := s.genres.Getting(id)
	if err != nil {
		return dto.Genre{}, err
	}
	return dto.Genre{ID: genre.ID, Name: genre.Name}, nil
}

// NameRequest carries the single name field shared by genre and status
// create and rename operations.
type NameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Create writes a new genre and refreshes the genres cache. Duplicate names
// are refused.
func (s *GenreService) Create(ctx context.Context, req NameRequest) (dto.Genre, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Genre{}, err
	}
	if err := s.genres.Creating(req.Name); err != nil {
		return dto.Genre{}, err
	}

	id, err := s.store.CreateGenre(ctx, req.Name)
	if err != nil {
		return dto.Genre{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Genres); err != nil {
		return dto.Genre{}, err
	}
	return dto.Genre{ID: id, Name: req.Name}, nil
}

// Update renames a genre.
func (s *GenreService) Update(ctx context.Context, id int64, req NameRequest) (dto.Genre, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Genre{}, err
	}
	genre, err := s.genres.Updating(id, req.Name)
	if err != nil {
		return dto.Genre{}, err
	}

	genre.Name = req.Name
	if err := s.store.UpdateGenre(ctx, genre); err != nil {
		return dto.Genre{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Genres); err != nil {
		return dto.Genre{}, err
	}
	return dto.Genre{ID: genre.ID, Name: genre.Name}, nil
}

// Delete removes a genre. Genres still attached to books are refused.
func (s *GenreService) Delete(ctx context.Context, id int64) error {
	if _, err := s.genres.Deleting(id); err != nil {
		return err
	}
	if err := s.store.DeleteGenre(ctx, id); err != nil {
		return err
	}
	return refreshAfterWrite(ctx, s.logger, s.reg.Genres)
}

// StatusService serves booklist status reads from cache and runs status
// mutations.
type StatusService struct {
	store     *store.Store
	reg       *cache.Registry
	logger    *slog.Logger
	validator *validation.Validator
	statuses  *validate.Statuses
}

// NewStatusService creates a new status service.
func NewStatusService(st *store.Store, reg *cache.Registry, logger *slog.Logger) *StatusService {
	return &StatusService{
		store:     st,
		reg:       reg,
		logger:    logger,
		validator: validation.New(),
		statuses:  validate.NewStatuses(reg),
	}
}

// Find returns all statuses in cache order.
func (s *StatusService) Find() []dto.Status {
	statuses := s.reg.Statuses.Snapshot()
	out := make([]dto.Status, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, dto.Status{ID: st.ID, Name: st.Name})
	}
	return out
}

// FindOne returns the status with the given id.
func (s *StatusService) FindOne(id int64) (dto.Status, error) {
	status, err := s.statuses.Getting(id)
	if err != nil {
		return dto.Status{}, err
	}
	return dto.Status{ID: status.ID, Name: status.Name}, nil
}

// Create writes a new status and refreshes the statuses cache.
func (s *StatusService) Create(ctx context.Context, req NameRequest) (dto.Status, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Status{}, err
	}
	if err := s.statuses.Creating(req.Name); err != nil {
		return dto.Status{}, err
	}

	id, err := s.store.CreateStatus(ctx, req.Name)
	if err != nil {
		return dto.Status{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Statuses); err != nil {
		return dto.Status{}, err
	}
	return dto.Status{ID: id, Name: req.Name}, nil
}

// Update renames a status.
func (s *StatusService) Update(ctx context.Context, id int64, req NameRequest) (dto.Status, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Status{}, err
	}
	status, err := s.statuses.Updating(id, req.Name)
	if err != nil {
		return dto.Status{}, err
	}

	status.Name = req.Name
	if err := s.store.UpdateStatus(ctx, status); err != nil {
		return dto.Status{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Statuses); err != nil {
		return dto.Status{}, err
	}
	return dto.Status{ID: status.ID, Name: status.Name}, nil
}

// Delete removes a status. Statuses still used by booklist items are refused.
func (s *StatusService) Delete(ctx context.Context, id int64) error {
	if _, err := s.statuses.Deleting(id); err != nil {
		return err
	}
	if err := s.store.DeleteStatus(ctx, id); err != nil {
		return err
	}
	return refreshAfterWrite(ctx, s.logger, s.reg.Statuses)
}
