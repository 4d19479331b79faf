package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

type createRequest struct {
	Title    string  `json:"title" validate:"required,min=1,max=10"`
	Score    int     `json:"score" validate:"gte=0,lte=10"`
	AuthorID int64   `json:"authorId" validate:"required,gt=0"`
	GenreIDs []int64 `json:"genreIds" validate:"required,min=1,dive,gt=0"`
}

func TestValidatePassesValidStruct(t *testing.T) {
	v := New()

	err := v.Validate(createRequest{
		Title:    "Solaris",
		Score:    9,
		AuthorID: 1,
		GenreIDs: []int64{1, 2},
	})
	require.NoError(t, err)
}

func TestValidateReportsFieldsByJSONName(t *testing.T) {
	v := New()

	err := v.Validate(createRequest{
		Title:    "",
		Score:    11,
		AuthorID: 0,
		GenreIDs: nil,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	var appErr *apperrors.Error
	require.True(t, apperrors.As(err, &appErr))

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "must be less than or equal to 10", details["score"])
	assert.Equal(t, "is required", details["authorId"])
	assert.Equal(t, "is required", details["genreIds"])
}

func TestValidateStringLengthMessages(t *testing.T) {
	v := New()

	err := v.Validate(createRequest{
		Title:    "much too long a title",
		Score:    5,
		AuthorID: 1,
		GenreIDs: []int64{1},
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, apperrors.As(err, &appErr))
	details := appErr.Details.(map[string]string)
	assert.Equal(t, "must not exceed 10 characters", details["title"])
}
