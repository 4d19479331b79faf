// Package service composes cache snapshots into response DTOs and runs the
// mutation pipeline: Validate -> Write(store) -> Refresh(cache) -> Build DTO.
//
// Reads never touch the durable store; they join cache snapshots. Mutations
// write to the store and then synchronously refresh the affected caches, so
// the cache reflects the write before the call returns.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

// refreshable is the slice of cache.Cache the pipeline needs.
type refreshable interface {
	Refresh(ctx context.Context) error
	Name() string
}

// refreshAfterWrite closes the write-to-cache gap after a successful store
// mutation. A refresh failure here is the one state where the store and the
// cache disagree: the write already happened, so the error is reported as a
// CONSISTENCY_RISK and logged with an incident id rather than swallowed.
// Recovery is a forced refresh on the next successful mutation or restart.
func refreshAfterWrite(ctx context.Context, logger *slog.Logger, caches ...refreshable) error {
	for _, c := range caches {
		if err := c.Refresh(ctx); err != nil {
			incident := uuid.NewString()
			logger.Error("cache refresh failed after successful write; store and cache disagree",
				"cache", c.Name(),
				"incident_id", incident,
				"error", err,
			)
			return apperrors.ConsistencyRisk(
				fmt.Sprintf("%s cache refresh failed after write (incident %s)", c.Name(), incident), err)
		}
	}
	return nil
}
