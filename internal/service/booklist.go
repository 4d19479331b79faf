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

// BooklistService serves booklist reads from cache and runs booklist
// mutations.
type BooklistService struct {
	store     *store.Store
	reg       *cache.Registry
	logger    *slog.Logger
	validator *validation.Validator
	booklist  *validate.Booklist
}

// NewBooklistService creates a new booklist service.
func NewBooklistService(st *store.Store, reg *cache.Registry, logger *slog.Logger) *BooklistService {
	return &BooklistService{
		store:     st,
		reg:       reg,
		logger:    logger,
		validator: validation.New(),
		booklist:  validate.NewBooklist(reg),
	}
}

// FindByUser returns the booklist DTOs of one user in cache order.
func (s *BooklistService) FindByUser(userID int64) ([]dto.BooklistItem, error) {
	items := cache.Select(s.reg.Booklist, func(item domain.BooklistItem) bool {
		return item.UserID == userID
	})

	out := make([]dto.BooklistItem, 0, len(items))
	for _, item := range items {
		itemDto, err := s.parseToDto(item)
		if err != nil {
			return nil, err
		}
		out = append(out, itemDto)
	}
	return out, nil
}

// FindOne returns the booklist item DTO for the (user, book) pair.
func (s *BooklistService) FindOne(userID, bookID int64) (dto.BooklistItem, error) {
	item, err := s.booklist.Getting(userID, bookID)
	if err != nil {
		return dto.BooklistItem{}, err
	}
	return s.parseToDto(item)
}

// CreateBooklistItemRequest contains fields for adding a book to a list.
type CreateBooklistItemRequest struct {
	StatusID int64 `json:"statusId" validate:"required"`
}

// Create puts a book on a user's list with the given status.
func (s *BooklistService) Create(ctx context.Context, userID, bookID int64, req CreateBooklistItemRequest) (dto.BooklistItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.BooklistItem{}, err
	}
	if err := s.booklist.Creating(userID, bookID, req.StatusID); err != nil {
		return dto.BooklistItem{}, err
	}

	item := domain.BooklistItem{UserID: userID, BookID: bookID, StatusID: req.StatusID}
	if err := s.store.CreateBooklistItem(ctx, item); err != nil {
		return dto.BooklistItem{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Booklist); err != nil {
		return dto.BooklistItem{}, err
	}

	s.logger.Info("booklist item created", "user_id", userID, "book_id", bookID, "status_id", req.StatusID)
	return s.parseToDto(item)
}

// UpdateBooklistItemRequest contains the status change payload.
type UpdateBooklistItemRequest struct {
	StatusID int64 `json:"statusId" validate:"required"`
}

// Update changes the status of a booklist item.
func (s *BooklistService) Update(ctx context.Context, userID, bookID int64, req UpdateBooklistItemRequest) (dto.BooklistItem, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.BooklistItem{}, err
	}
	item, err := s.booklist.Updating(userID, bookID, req.StatusID)
	if err != nil {
		return dto.BooklistItem{}, err
	}

	item.StatusID = req.StatusID
	if err := s.store.UpdateBooklistItem(ctx, item); err != nil {
		return dto.BooklistItem{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Booklist); err != nil {
		return dto.BooklistItem{}, err
	}

	return s.parseToDto(item)
}

// Delete removes a booklist item. Items whose (user, book) pair still has a
// review are refused.
func (s *BooklistService) Delete(ctx context.Context, userID, bookID int64) error {
	if _, err := s.booklist.Deleting(userID, bookID); err != nil {
		return err
	}
	if err := s.store.DeleteBooklistItem(ctx, userID, bookID); err != nil {
		return err
	}
	return refreshAfterWrite(ctx, s.logger, s.reg.Booklist)
}

// parseToDto resolves the item's foreign keys by cache lookup.
func (s *BooklistService) parseToDto(item domain.BooklistItem) (dto.BooklistItem, error) {
	user, ok := s.reg.UserByID(item.UserID)
	if !ok {
		return dto.BooklistItem{}, apperrors.ReferenceNotFoundf("booklist join: user %d missing from cache", item.UserID)
	}
	entry, err := booklistEntry(s.reg, item)
	if err != nil {
		return dto.BooklistItem{}, err
	}
	return dto.BooklistItem{
		User:   dto.UserRef{ID: user.ID, Username: user.Username},
		Book:   entry.Book,
		Status: entry.Status,
		Review: entry.Review,
	}, nil
}

// booklistEntry builds the book/status/review projection shared by the
// booklist service and the user details DTO. Each lookup reads the snapshot
// current at call time; a row deleted between snapshots surfaces as a typed
// reference error rather than a crash.
func booklistEntry(reg *cache.Registry, item domain.BooklistItem) (dto.BooklistEntry, error) {
	book, ok := reg.BookByID(item.BookID)
	if !ok {
		return dto.BooklistEntry{}, apperrors.ReferenceNotFoundf("booklist join: book %d missing from cache", item.BookID)
	}
	author, ok := reg.AuthorByID(book.AuthorID)
	if !ok {
		return dto.BooklistEntry{}, apperrors.ReferenceNotFoundf("booklist join: author %d missing from cache", book.AuthorID)
	}
	status, ok := reg.StatusByID(item.StatusID)
	if !ok {
		return dto.BooklistEntry{}, apperrors.ReferenceNotFoundf("booklist join: status %d missing from cache", item.StatusID)
	}

	entry := dto.BooklistEntry{
		Book: dto.BookRef{
			ID:     book.ID,
			Title:  book.Title,
			Author: dto.AuthorRef{ID: author.ID, FullName: author.FullName},
		},
		Status: dto.Status{ID: status.ID, Name: status.Name},
	}

	if review, ok := reg.ReviewByKey(item.UserID, item.BookID); ok {
		entry.Review = &dto.ReviewBrief{
			Score:     review.Score,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
	}

	return entry, nil
}
