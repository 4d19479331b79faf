package service

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

// testEnv bundles a real sqlite store with initialized caches, seeded with a
// small catalog the service tests share.
type testEnv struct {
	store  *store.Store
	reg    *cache.Registry
	logger *slog.Logger

	roleAdmin  int64
	roleMember int64
	alice      int64
	bob        int64
	lem        int64
	leGuin     int64
	sciFi      int64
	fantasy    int64
	reading    int64
	finished   int64
	solaris    int64
	dispossess int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	env := &testEnv{store: st, logger: logger}

	env.roleAdmin, err = st.CreateRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	env.roleMember, err = st.CreateRole(ctx, domain.RoleMember)
	require.NoError(t, err)

	hash, err := auth.HashPassword("password-alice")
	require.NoError(t, err)
	env.alice, err = st.CreateUser(ctx, domain.User{
		Username: "alice", PasswordHash: hash, RoleID: env.roleMember, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	hash, err = auth.HashPassword("password-bob")
	require.NoError(t, err)
	env.bob, err = st.CreateUser(ctx, domain.User{
		Username: "bob", PasswordHash: hash, RoleID: env.roleAdmin, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	env.lem, err = st.CreateAuthor(ctx, domain.Author{FullName: "Stanislaw Lem"})
	require.NoError(t, err)
	env.leGuin, err = st.CreateAuthor(ctx, domain.Author{FullName: "Ursula K. Le Guin"})
	require.NoError(t, err)

	env.sciFi, err = st.CreateGenre(ctx, "science fiction")
	require.NoError(t, err)
	env.fantasy, err = st.CreateGenre(ctx, "fantasy")
	require.NoError(t, err)

	env.reading, err = st.CreateStatus(ctx, "reading")
	require.NoError(t, err)
	env.finished, err = st.CreateStatus(ctx, "finished")
	require.NoError(t, err)

	env.solaris, err = st.CreateBook(ctx, domain.Book{
		AuthorID: env.lem, Title: "Solaris", CreatedAt: time.Now().UTC(),
	}, []int64{env.sciFi})
	require.NoError(t, err)
	env.dispossess, err = st.CreateBook(ctx, domain.Book{
		AuthorID: env.leGuin, Title: "The Dispossessed", CreatedAt: time.Now().UTC(),
	}, []int64{env.sciFi, env.fantasy})
	require.NoError(t, err)

	require.NoError(t, st.CreateBooklistItem(ctx, domain.BooklistItem{
		UserID: env.alice, BookID: env.solaris, StatusID: env.reading,
	}))
	require.NoError(t, st.CreateBooklistItem(ctx, domain.BooklistItem{
		UserID: env.bob, BookID: env.dispossess, StatusID: env.finished,
	}))

	env.reg = cache.NewRegistry(st, logger)
	require.NoError(t, env.reg.InitAll(ctx))

	return env
}

func ptr[T any](v T) *T { return &v }

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}
