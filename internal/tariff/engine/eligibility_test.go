package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowContains(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("start date is inclusive", func(t *testing.T) {
		assert.True(t, windowContains(from, &to, from))
	})

	t.Run("end date is inclusive", func(t *testing.T) {
		assert.True(t, windowContains(from, &to, to))
	})

	t.Run("before window", func(t *testing.T) {
		assert.False(t, windowContains(from, &to, from.AddDate(0, 0, -1)))
	})

	t.Run("after window", func(t *testing.T) {
		assert.False(t, windowContains(from, &to, to.AddDate(0, 0, 1)))
	})

	t.Run("nil end date is open-ended", func(t *testing.T) {
		assert.True(t, windowContains(from, nil, from.AddDate(30, 0, 0)))
	})
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "USA", NormalizeCountry(" usa "))
	assert.Equal(t, "CN", NormalizeCountry("cn"))
}

func TestResolveStaging(t *testing.T) {
	effective := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		category string
		date     time.Time
		eligible bool
	}{
		{"category A applies immediately", "A", effective, true},
		{"category B before phase-in", "B", effective.AddDate(2, 11, 30), false},
		{"category B at phase-in boundary", "B", effective.AddDate(3, 0, 0), true},
		{"category E long phase", "E", effective.AddDate(9, 0, 0), false},
		{"lowercase category accepted", "b", effective.AddDate(4, 0, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, warning := resolveStaging(tc.category, effective, tc.date, "AUSFTA")
			assert.Equal(t, tc.eligible, ok)
			if tc.eligible {
				assert.Empty(t, warning)
			} else {
				assert.NotEmpty(t, warning)
			}
		})
	}

	t.Run("unknown category never guesses", func(t *testing.T) {
		ok, warning := resolveStaging("Q", effective, effective.AddDate(20, 0, 0), "AUSFTA")
		assert.False(t, ok)
		assert.Contains(t, warning, "unknown staging category")
	})
}
