package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/validate"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

// ReviewService serves review reads from cache and runs review mutations.
type ReviewService struct {
	store     *store.Store
	reg       *cache.Registry
	logger    *slog.Logger
	validator *validation.Validator
	reviews   *validate.Reviews
}

// NewReviewService creates a new review service.
func NewReviewService(st *store.Store, reg *cache.Registry, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:     st,
		reg:       reg,
		logger:    logger,
		validator: validation.New(),
		reviews:   validate.NewReviews(reg),
	}
}

// Find returns review DTOs matching the filters, preserving cache order.
// Entity-id filters apply before score range filters; all filters are pure
// intersections so ordering only matters for how early the set shrinks.
func (s *ReviewService) Find(f dto.ReviewFilters) ([]dto.Review, error) {
	if !f.Empty() {
		if err := s.reviews.Filters(f); err != nil {
			return nil, err
		}
	}

	reviews := s.reg.Reviews.Snapshot()

	if f.UserID != nil {
		reviews = filterReviews(reviews, func(r domain.Review) bool { return r.UserID == *f.UserID })
	}
	if f.BookID != nil {
		reviews = filterReviews(reviews, func(r domain.Review) bool { return r.BookID == *f.BookID })
	}
	if f.ScoreMin != nil {
		reviews = filterReviews(reviews, func(r domain.Review) bool { return r.Score >= *f.ScoreMin })
	}
	if f.ScoreMax != nil {
		reviews = filterReviews(reviews, func(r domain.Review) bool { return r.Score <= *f.ScoreMax })
	}

	out := make([]dto.Review, 0, len(reviews))
	for _, review := range reviews {
		reviewDto, err := s.parseToDto(review)
		if err != nil {
			return nil, err
		}
		out = append(out, reviewDto)
	}
	return out, nil
}

// FindOne returns the review DTO for the (user, book) pair.
func (s *ReviewService) FindOne(userID, bookID int64) (dto.Review, error) {
	review, err := s.reviews.Getting(userID, bookID)
	if err != nil {
		return dto.Review{}, err
	}
	return s.parseToDto(review)
}

// CreateReviewRequest contains fields for creating a review.
type CreateReviewRequest struct {
	Score   int    `json:"score" validate:"gte=0,lte=10"`
	Comment string `json:"comment" validate:"max=2000"`
}

// Create validates, writes, refreshes the review cache, and returns the DTO
// built from the freshly refreshed snapshot.
func (s *ReviewService) Create(ctx context.Context, userID, bookID int64, req CreateReviewRequest) (dto.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Review{}, err
	}
	if err := s.reviews.Creating(userID, bookID, req.Score); err != nil {
		return dto.Review{}, err
	}

	review := domain.Review{
		UserID:    userID,
		BookID:    bookID,
		Score:     req.Score,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateReview(ctx, review); err != nil {
		return dto.Review{}, err
	}

	if err := refreshAfterWrite(ctx, s.logger, s.reg.Reviews); err != nil {
		return dto.Review{}, err
	}

	s.logger.Info("review created", "user_id", userID, "book_id", bookID, "score", req.Score)

	created, ok := s.reg.ReviewByKey(userID, bookID)
	if !ok {
		return dto.Review{}, apperrors.Internalf(
			"review with user id %d and book id %d missing from cache after refresh", userID, bookID)
	}
	return s.parseToDto(created)
}

// UpdateReviewRequest contains fields for updating a review. Nil fields are
// left unchanged.
type UpdateReviewRequest struct {
	Score   *int    `json:"score" validate:"omitempty,gte=0,lte=10"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// Update changes the score and/or comment of an existing review.
func (s *ReviewService) Update(ctx context.Context, userID, bookID int64, req UpdateReviewRequest) (dto.Review, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Review{}, err
	}
	review, err := s.reviews.Updating(userID, bookID, req.Score)
	if err != nil {
		return dto.Review{}, err
	}

	if req.Score != nil {
		review.Score = *req.Score
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	if err := s.store.UpdateReview(ctx, review); err != nil {
		return dto.Review{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Reviews); err != nil {
		return dto.Review{}, err
	}

	return s.parseToDto(review)
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, userID, bookID int64) error {
	if _, err := s.reviews.Getting(userID, bookID); err != nil {
		return err
	}
	if err := s.store.DeleteReview(ctx, userID, bookID); err != nil {
		return err
	}
	return refreshAfterWrite(ctx, s.logger, s.reg.Reviews)
}

// parseToDto resolves the review's foreign keys by cache lookup. Joins take
// independent snapshots, so a row deleted between them can be missing; the
// lookup fails softly with a typed reference error instead of crashing the
// request.
func (s *ReviewService) parseToDto(review domain.Review) (dto.Review, error) {
	user, ok := s.reg.UserByID(review.UserID)
	if !ok {
		return dto.Review{}, apperrors.ReferenceNotFoundf("review join: user %d missing from cache", review.UserID)
	}
	book, ok := s.reg.BookByID(review.BookID)
	if !ok {
		return dto.Review{}, apperrors.ReferenceNotFoundf("review join: book %d missing from cache", review.BookID)
	}
	author, ok := s.reg.AuthorByID(book.AuthorID)
	if !ok {
		return dto.Review{}, apperrors.ReferenceNotFoundf("review join: author %d missing from cache", book.AuthorID)
	}

	return dto.Review{
		User: dto.UserRef{ID: user.ID, Username: user.Username},
		Book: dto.BookRef{
			ID:     book.ID,
			Title:  book.Title,
			Author: dto.AuthorRef{ID: author.ID, FullName: author.FullName},
		},
		Score:     review.Score,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}, nil
}

func filterReviews(reviews []domain.Review, keep func(domain.Review) bool) []domain.Review {
	var out []domain.Review
	for _, r := range reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
