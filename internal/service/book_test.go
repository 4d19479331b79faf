package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

func TestBookService_CreateAndReadBack(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBookService(env.store, env.reg, env.logger)

	created, err := svc.Create(context.Background(), CreateBookRequest{
		AuthorID: env.lem,
		Title:    "The Cyberiad",
		GenreIDs: []int64{env.sciFi, env.fantasy},
	})
	require.NoError(t, err)
	assert.Equal(t, "The Cyberiad", created.Title)
	assert.Equal(t, "Stanislaw Lem", created.Author.FullName)
	require.Len(t, created.Genres, 2)

	got, err := svc.FindOne(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
}

func TestBookService_CreateRejectsBadReferences(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBookService(env.store, env.reg, env.logger)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookRequest{
		AuthorID: 999, Title: "Ghost", GenreIDs: []int64{env.sciFi},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrReferenceNotFound))

	_, err = svc.Create(ctx, CreateBookRequest{
		AuthorID: env.lem, Title: "Ghost", GenreIDs: []int64{999},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrReferenceNotFound))

	_, err = svc.Create(ctx, CreateBookRequest{
		AuthorID: env.lem, Title: "Ghost", GenreIDs: nil,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestBookService_FindFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBookService(env.store, env.reg, env.logger)

	all, err := svc.Find(dto.BookFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	fantasyOnly, err := svc.Find(dto.BookFilters{SearchGenreIDs: []int64{env.fantasy}})
	require.NoError(t, err)
	require.Len(t, fantasyOnly, 1)
	assert.Equal(t, "The Dispossessed", fantasyOnly[0].Title)

	byTitle, err := svc.Find(dto.BookFilters{SearchTitle: "solar"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Solaris", byTitle[0].Title)

	both, err := svc.Find(dto.BookFilters{SearchGenreIDs: []int64{env.sciFi}, SearchTitle: "dispossessed"})
	require.NoError(t, err)
	assert.Len(t, both, 1)

	_, err = svc.Find(dto.BookFilters{SearchGenreIDs: []int64{999}})
	assert.True(t, apperrors.Is(err, apperrors.ErrReferenceNotFound))
}

func TestBookService_Update(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBookService(env.store, env.reg, env.logger)
	ctx := context.Background()

	updated, err := svc.Update(ctx, env.solaris, UpdateBookRequest{
		Title:    ptr("Solaris (revised)"),
		GenreIDs: []int64{env.fantasy},
	})
	require.NoError(t, err)
	assert.Equal(t, "Solaris (revised)", updated.Title)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "fantasy", updated.Genres[0].Name)

	// Nil genre ids leave the links alone.
	updated, err = svc.Update(ctx, env.solaris, UpdateBookRequest{Description: ptr("a living ocean")})
	require.NoError(t, err)
	assert.Equal(t, "a living ocean", updated.Description)
	require.Len(t, updated.Genres, 1)

	_, err = svc.Update(ctx, 999, UpdateBookRequest{Title: ptr("nope")})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestBookService_DeleteForbiddenWhenListed(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBookService(env.store, env.reg, env.logger)
	ctx := context.Background()

	// Solaris is on alice's list.
	err := svc.Delete(ctx, env.solaris)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	booklist := NewBooklistService(env.store, env.reg, env.logger)
	require.NoError(t, booklist.Delete(ctx, env.alice, env.solaris))
	require.NoError(t, svc.Delete(ctx, env.solaris))

	_, ok := env.reg.BookByID(env.solaris)
	assert.False(t, ok)
}
