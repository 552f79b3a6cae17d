package pagination

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"blogstarter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorEncodeDecode(t *testing.T) {
	order := Order{Field: "createdAt", Direction: Desc}
	ts := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC)

	encoded, err := EncodeCursor(order, ts, "abc")
	require.NoError(t, err)

	c, err := DecodeCursor(encoded, order)
	require.NoError(t, err)
	assert.Equal(t, "abc", c.ID)

	var got time.Time
	require.NoError(t, c.Scan(&got))
	assert.True(t, ts.Equal(got))
}

func TestDecodeCursorErrors(t *testing.T) {
	order := Order{Field: "title", Direction: Asc}

	noID := base64.RawURLEncoding.EncodeToString([]byte(`{"f":"title","d":"asc","v":"x"}`))
	notJSON := base64.RawURLEncoding.EncodeToString([]byte(`nope`))
	otherDirection, err := EncodeCursor(Order{Field: "title", Direction: Desc}, "x", "1")
	require.NoError(t, err)

	for _, s := range []string{"***", notJSON, noID, otherDirection} {
		_, err := DecodeCursor(s, order)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCursor))
		assert.True(t, errors.Is(err, models.ErrBadRequest))
	}
}

func TestCursorScanTypeMismatch(t *testing.T) {
	order := Order{Field: "published", Direction: Asc}
	encoded, err := EncodeCursor(order, "yes", "1")
	require.NoError(t, err)

	c, err := DecodeCursor(encoded, order)
	require.NoError(t, err)

	var b bool
	assert.True(t, errors.Is(c.Scan(&b), ErrInvalidCursor))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)
	assert.Equal(t, Asc, d.Reversed())
	assert.Equal(t, "DESC", d.SQL())

	_, err = ParseDirection("sideways")
	assert.True(t, errors.Is(err, models.ErrBadRequest))
}
