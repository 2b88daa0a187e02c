package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/seasonal/internal/domain"
)

func TestDateFlag(t *testing.T) {
	now := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)

	got, err := dateFlag(now, "12-25")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.December, 25, 12, 0, 0, 0, time.UTC), got)

	got, err = dateFlag(now, "02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 29, got.Day())
	assert.Equal(t, 2028, got.Year())

	_, err = dateFlag(now, "02-30")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
