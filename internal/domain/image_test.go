package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		have string
		want Position
	}{
		{"", PositionTopRight},
		{"top-left", PositionTopLeft},
		{"BOTTOM_CENTER", PositionBottomCenter},
		{" center ", PositionCenter},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.have)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePosition("middle")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestSeasonalImage_Validate(t *testing.T) {
	img := NewSeasonalImage()
	img.ImagePath = "hat.png"
	require.NoError(t, img.Validate())

	img.StartMonth, img.StartDay = 2, 29
	img.EndMonth, img.EndDay = 3, 1
	assert.NoError(t, img.Validate(), "feb 29 is always a valid calendar day")

	img.EndMonth, img.EndDay = 6, 31
	err := img.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "end", verr.Field)
}

func TestSeasonalImage_Wraps(t *testing.T) {
	img := NewSeasonalImage()
	img.StartMonth, img.StartDay, img.EndMonth, img.EndDay = 12, 20, 1, 5
	assert.True(t, img.Wraps())
	assert.True(t, img.Matches(1, 1))

	img.EndMonth, img.EndDay = 12, 26
	assert.False(t, img.Wraps())
	assert.False(t, img.Matches(1, 1))
}

func TestImageUpdate_Apply(t *testing.T) {
	img := NewSeasonalImage()
	img.ImagePath = "hat.png"

	assert.True(t, ImageUpdate{}.Empty())

	priority := 4
	path := "snow.png"
	position := PositionCenter
	u := ImageUpdate{Priority: &priority, ImagePath: &path, Position: &position}
	assert.False(t, u.Empty())

	u.Apply(&img)
	assert.Equal(t, 4, img.Priority)
	assert.Equal(t, "snow.png", img.ImagePath)
	assert.Equal(t, PositionCenter, img.Position)
	assert.True(t, img.Enabled, "unset fields are untouched")
}

func TestStoreError(t *testing.T) {
	cause := errors.New("database is locked")
	err := NewStoreError(cause, "error executing query")

	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "error executing query: database is locked", err.Error())
	assert.Nil(t, NewStoreError(nil, "unused"))
}
