// Package validate gates every mutation against current cache state before
// the write reaches the durable store. All checks read cache snapshots only:
// validation never adds a round trip to the store beyond the mutation itself.
//
// Checks fail with typed errors: REFERENCE_NOT_FOUND for a missing foreign
// key, DUPLICATE for a natural-key conflict, INVALID_INPUT for a domain rule,
// NOT_FOUND for a primary lookup miss.
package validate

import (
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

// checkScore enforces the review score contract: an integer in
// [domain.MinScore, domain.MaxScore], both inclusive.
func checkScore(score int) error {
	if score < domain.MinScore || score > domain.MaxScore {
		return apperrors.InvalidInputf("score must be between %d and %d, got %d",
			domain.MinScore, domain.MaxScore, score)
	}
	return nil
}

// requireUser checks that a referenced user id exists in cache.
func requireUser(reg *cache.Registry, id int64) error {
	if _, ok := reg.UserByID(id); !ok {
		return apperrors.ReferenceNotFoundf("user with id %d does not exist", id)
	}
	return nil
}

// requireBook checks that a referenced book id exists in cache.
func requireBook(reg *cache.Registry, id int64) error {
	if _, ok := reg.BookByID(id); !ok {
		return apperrors.ReferenceNotFoundf("book with id %d does not exist", id)
	}
	return nil
}

// requireStatus checks that a referenced status id exists in cache.
func requireStatus(reg *cache.Registry, id int64) error {
	if _, ok := reg.StatusByID(id); !ok {
		return apperrors.ReferenceNotFoundf("status with id %d does not exist", id)
	}
	return nil
}
