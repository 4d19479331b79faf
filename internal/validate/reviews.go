package validate

import (
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

// Reviews validates review mutations against cache state.
type Reviews struct {
	reg *cache.Registry
}

// NewReviews creates a review validator over the given registry.
func NewReviews(reg *cache.Registry) *Reviews {
	return &Reviews{reg: reg}
}

// Getting returns the review for the (user, book) pair or NOT_FOUND.
func (v *Reviews) Getting(userID, bookID int64) (domain.Review, error) {
	review, ok := v.reg.ReviewByKey(userID, bookID)
	if !ok {
		return domain.Review{}, apperrors.NotFoundf(
			"review with user id %d and book id %d does not exist", userID, bookID)
	}
	return review, nil
}

// Creating gates review creation: the (user, book) pair must be unique, both
// sides of the pair must exist, a booklist item for the pair must already
// exist, and the score must be in range.
func (v *Reviews) Creating(userID, bookID int64, score int) error {
	if err := requireUser(v.reg, userID); err != nil {
		return err
	}
	if err := requireBook(v.reg, bookID); err != nil {
		return err
	}

	if _, ok := v.reg.ReviewByKey(userID, bookID); ok {
		return apperrors.Duplicatef(
			"review with user id %d and book id %d already exists", userID, bookID)
	}

	// A review is only allowed once the book is on the user's list.
	if _, ok := v.reg.BooklistItemByKey(userID, bookID); !ok {
		return apperrors.ReferenceNotFoundf(
			"no booklist item with user id %d and book id %d for creating review", userID, bookID)
	}

	return checkScore(score)
}

// Updating gates a review update and returns the current review.
func (v *Reviews) Updating(userID, bookID int64, score *int) (domain.Review, error) {
	review, err := v.Getting(userID, bookID)
	if err != nil {
		return domain.Review{}, err
	}
	if score != nil {
		if err := checkScore(*score); err != nil {
			return domain.Review{}, err
		}
	}
	return review, nil
}

// Filters validates the read-side filter options for reviews.
func (v *Reviews) Filters(f dto.ReviewFilters) error {
	if f.BookID != nil {
		if err := requireBook(v.reg, *f.BookID); err != nil {
			return err
		}
	}
	if f.UserID != nil {
		if err := requireUser(v.reg, *f.UserID); err != nil {
			return err
		}
	}
	if f.ScoreMin != nil {
		if err := checkScore(*f.ScoreMin); err != nil {
			return err
		}
	}
	if f.ScoreMax != nil {
		if err := checkScore(*f.ScoreMax); err != nil {
			return err
		}
	}
	return nil
}
