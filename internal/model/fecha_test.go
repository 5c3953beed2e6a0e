package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFecha(t *testing.T) {
	t.Run("RFC3339", func(t *testing.T) {
		got, err := ParseFecha("2026-03-15T09:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("datetime without zone", func(t *testing.T) {
		got, err := ParseFecha("2026-03-15T09:30:00")
		require.NoError(t, err)
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 15, got.Day())
		assert.Equal(t, 9, got.Hour())
		assert.Equal(t, 30, got.Minute())
	})

	t.Run("date only", func(t *testing.T) {
		got, err := ParseFecha("2026-03-15")
		require.NoError(t, err)
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 15, got.Day())
		assert.Equal(t, 0, got.Hour())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, value := range []string{"", "ayer", "15/03/2026", "2026-13-01"} {
			_, err := ParseFecha(value)
			assert.Error(t, err, "value %q", value)
		}
	})
}
