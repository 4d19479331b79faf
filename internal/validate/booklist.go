package validate

import (
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

// Booklist validates booklist item mutations against cache state.
type Booklist struct {
	reg *cache.Registry
}

// NewBooklist creates a booklist validator over the given registry.
func NewBooklist(reg *cache.Registry) *Booklist {
	return &Booklist{reg: reg}
}

// Getting returns the booklist item for the (user, book) pair or NOT_FOUND.
func (v *Booklist) Getting(userID, bookID int64) (domain.BooklistItem, error) {
	item, ok := v.reg.BooklistItemByKey(userID, bookID)
	if !ok {
		return domain.BooklistItem{}, apperrors.NotFoundf(
			"booklist item with user id %d and book id %d does not exist", userID, bookID)
	}
	return item, nil
}

// Creating gates booklist item creation: user, book, and status must exist
// and the (user, book) pair must be unique.
func (v *Booklist) Creating(userID, bookID, statusID int64) error {
	if err := requireUser(v.reg, userID); err != nil {
		return err
	}
	if err := requireBook(v.reg, bookID); err != nil {
		return err
	}
	if err := requireStatus(v.reg, statusID); err != nil {
		return err
	}
	if _, ok := v.reg.BooklistItemByKey(userID, bookID); ok {
		return apperrors.Duplicatef(
			"booklist item with user id %d and book id %d already exists", userID, bookID)
	}
	return nil
}

// Updating gates a status change and returns the current item.
func (v *Booklist) Updating(userID, bookID, statusID int64) (domain.BooklistItem, error) {
	item, err := v.Getting(userID, bookID)
	if err != nil {
		return domain.BooklistItem{}, err
	}
	if err := requireStatus(v.reg, statusID); err != nil {
		return domain.BooklistItem{}, err
	}
	return item, nil
}

// Deleting gates booklist item deletion: removing the item while the user's
// review of the book exists would orphan the review, so it is forbidden.
func (v *Booklist) Deleting(userID, bookID int64) (domain.BooklistItem, error) {
	item, err := v.Getting(userID, bookID)
	if err != nil {
		return domain.BooklistItem{}, err
	}
	if _, ok := v.reg.ReviewByKey(userID, bookID); ok {
		return domain.BooklistItem{}, apperrors.Forbiddenf(
			"booklist item with user id %d and book id %d still has a review", userID, bookID)
	}
	return item, nil
}
