package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

func TestAuthors_Deleting(t *testing.T) {
	v := NewAuthors(newTestRegistry(t))

	// Authors 1 and 2 each have a book; author 3 has none.
	_, err := v.Deleting(1)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = v.Deleting(3)
	require.NoError(t, err)

	_, err = v.Deleting(99)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestGenres_CreatingAndUpdating(t *testing.T) {
	v := NewGenres(newTestRegistry(t))

	require.NoError(t, v.Creating("horror"))

	err := v.Creating("fantasy")
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicate))

	// Renaming to its own name is allowed.
	_, err = v.Updating(1, "science fiction")
	require.NoError(t, err)

	_, err = v.Updating(1, "fantasy")
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicate))
}

func TestGenres_Deleting(t *testing.T) {
	v := NewGenres(newTestRegistry(t))

	// Genre 1 is linked to both books; genre 2 is unused.
	_, err := v.Deleting(1)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = v.Deleting(2)
	require.NoError(t, err)
}

func TestStatuses_Deleting(t *testing.T) {
	v := NewStatuses(newTestRegistry(t))

	// Statuses 1 and 2 back booklist items; status 3 is unused.
	_, err := v.Deleting(1)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = v.Deleting(3)
	require.NoError(t, err)
}

func TestStatuses_CreatingDuplicate(t *testing.T) {
	v := NewStatuses(newTestRegistry(t))

	require.NoError(t, v.Creating("on hold"))

	err := v.Creating("reading")
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicate))
}
