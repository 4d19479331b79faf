package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

func TestReviewService_CreateAndReadBack(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.store, env.reg, env.logger)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.alice, env.solaris, CreateReviewRequest{
		Score:   9,
		Comment: "unsettling and brilliant",
	})
	require.NoError(t, err)

	assert.Equal(t, env.alice, created.User.ID)
	assert.Equal(t, "alice", created.User.Username)
	assert.Equal(t, env.solaris, created.Book.ID)
	assert.Equal(t, "Solaris", created.Book.Title)
	assert.Equal(t, "Stanislaw Lem", created.Book.Author.FullName)
	assert.Equal(t, 9, created.Score)

	// The write is visible through the cache without reopening anything.
	got, err := svc.FindOne(env.alice, env.solaris)
	require.NoError(t, err)
	assert.Equal(t, created.Score, got.Score)
	assert.Equal(t, created.Comment, got.Comment)
}

func TestReviewService_CreateDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.store, env.reg, env.logger)
	ctx := context.Background()

	_, err := svc.Create(ctx, env.alice, env.solaris, CreateReviewRequest{Score: 7})
	require.NoError(t, err)

	_, err = svc.Create(ctx, env.alice, env.solaris, CreateReviewRequest{Score: 8})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicate))
}

func TestReviewService_CreateRequiresBooklistItem(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.store, env.reg, env.logger)

	// Alice never listed The Dispossessed.
	_, err := svc.Create(context.Background(), env.alice, env.dispossess, CreateReviewRequest{Score: 5})
	assert.True(t, apperrors.Is(err, apperrors.ErrReferenceNotFound))
}

func TestReviewService_CreateRejectsOutOfRangeScore(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.store, env.reg, env.logger)

	_, err := svc.Create(context.Background(), env.alice, env.solaris, CreateReviewRequest{Score: 11})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestReviewService_FindFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.store, env.reg, env.logger)
	ctx := context.Background()

	_, err := svc.Create(ctx, env.alice, env.solaris, CreateReviewRequest{Score: 9})
	require.NoError(t, err)
	_, err = svc.Create(ctx, env.bob, env.dispossess, CreateReviewRequest{Score: 6})
	require.NoError(t, err)

	all, err := svc.Find(dto.ReviewFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byUser, err := svc.Find(dto.ReviewFilters{UserID: &env.alice})
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "alice", byUser[0].User.Username)

	byScore, err := svc.Find(dto.ReviewFilters{ScoreMin: ptr(7)})
	require.NoError(t, err)
	require.Len(t, byScore, 1)
	assert.Equal(t, 9, byScore[0].Score)

	narrow, err := svc.Find(dto.ReviewFilters{ScoreMin: ptr(0), ScoreMax: ptr(5)})
	require.NoError(t, err)
	assert.Empty(t, narrow)

	// Filters referencing unknown entities are rejected up front.
	unknown := int64(999)
	_, err = svc.Find(dto.ReviewFilters{BookID: &unknown})
	assert.True(t, apperrors.Is(err, apperrors.ErrReferenceNotFound))
}

func TestReviewService_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.store, env.reg, env.logger)
	ctx := context.Background()

	_, err := svc.Create(ctx, env.alice, env.solaris, CreateReviewRequest{Score: 5, Comment: "fine"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, env.alice, env.solaris, UpdateReviewRequest{Score: ptr(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Score)
	assert.Equal(t, "fine", updated.Comment)

	require.NoError(t, svc.Delete(ctx, env.alice, env.solaris))

	_, err = svc.FindOne(env.alice, env.solaris)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
