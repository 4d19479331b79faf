package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmark/shelfmark-server/internal/domain"
)

// fakeSource serves fixed slices and can be told to fail a table.
type fakeSource struct {
	roles    []domain.Role
	users    []domain.User
	authors  []domain.Author
	genres   []domain.Genre
	statuses []domain.Status
	books    []domain.Book
	links    []domain.BookGenre
	items    []domain.BooklistItem
	reviews  []domain.Review

	failUsers bool
}

func (f *fakeSource) ListRoles(context.Context) ([]domain.Role, error)     { return f.roles, nil }
func (f *fakeSource) ListAuthors(context.Context) ([]domain.Author, error) { return f.authors, nil }
func (f *fakeSource) ListGenres(context.Context) ([]domain.Genre, error)   { return f.genres, nil }
func (f *fakeSource) ListStatuses(context.Context) ([]domain.Status, error) {
	return f.statuses, nil
}
func (f *fakeSource) ListBooks(context.Context) ([]domain.Book, error) { return f.books, nil }
func (f *fakeSource) ListBookGenres(context.Context) ([]domain.BookGenre, error) {
	return f.links, nil
}
func (f *fakeSource) ListBooklistItems(context.Context) ([]domain.BooklistItem, error) {
	return f.items, nil
}
func (f *fakeSource) ListReviews(context.Context) ([]domain.Review, error) { return f.reviews, nil }

func (f *fakeSource) ListUsers(context.Context) ([]domain.User, error) {
	if f.failUsers {
		return nil, errors.New("store offline")
	}
	return f.users, nil
}

func TestRegistry_InitAll(t *testing.T) {
	src := &fakeSource{
		roles: []domain.Role{{ID: 1, Name: domain.RoleAdmin}},
		users: []domain.User{{ID: 1, Username: "alice", RoleID: 1}},
		books: []domain.Book{{ID: 1, AuthorID: 1, Title: "Solaris"}},
	}

	reg := NewRegistry(src, nil)
	require.NoError(t, reg.InitAll(context.Background()))

	assert.Equal(t, 1, reg.Roles.Len())
	assert.Equal(t, 1, reg.Users.Len())
	assert.Equal(t, 1, reg.Books.Len())
	assert.Equal(t, 0, reg.Reviews.Len())
}

func TestRegistry_InitAllFailsWhenAnyTableFails(t *testing.T) {
	src := &fakeSource{failUsers: true}

	reg := NewRegistry(src, nil)
	err := reg.InitAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialize caches")
}

func TestRegistry_Lookups(t *testing.T) {
	src := &fakeSource{
		roles:    []domain.Role{{ID: 1, Name: domain.RoleAdmin}, {ID: 2, Name: domain.RoleMember}},
		users:    []domain.User{{ID: 7, Username: "alice", RoleID: 2}},
		authors:  []domain.Author{{ID: 3, FullName: "Stanislaw Lem"}},
		genres:   []domain.Genre{{ID: 4, Name: "science fiction"}},
		statuses: []domain.Status{{ID: 5, Name: "reading"}},
		books:    []domain.Book{{ID: 6, AuthorID: 3, Title: "Solaris"}},
		links:    []domain.BookGenre{{BookID: 6, GenreID: 4}},
		items:    []domain.BooklistItem{{UserID: 7, BookID: 6, StatusID: 5}},
		reviews:  []domain.Review{{UserID: 7, BookID: 6, Score: 9}},
	}

	reg := NewRegistry(src, nil)
	require.NoError(t, reg.InitAll(context.Background()))

	role, ok := reg.RoleByName(domain.RoleMember)
	require.True(t, ok)
	assert.Equal(t, int64(2), role.ID)

	user, ok := reg.UserByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, int64(7), user.ID)

	_, ok = reg.UserByID(99)
	assert.False(t, ok)

	book, ok := reg.BookByID(6)
	require.True(t, ok)
	assert.Equal(t, "Solaris", book.Title)

	assert.Equal(t, []int64{4}, reg.GenreIDsForBook(6))
	assert.Empty(t, reg.GenreIDsForBook(99))

	item, ok := reg.BooklistItemByKey(7, 6)
	require.True(t, ok)
	assert.Equal(t, int64(5), item.StatusID)

	review, ok := reg.ReviewByKey(7, 6)
	require.True(t, ok)
	assert.Equal(t, 9, review.Score)

	_, ok = reg.ReviewByKey(7, 99)
	assert.False(t, ok)
}
