package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, day("2025-03-01"), got)

	got, err = ParseDate("2025-03-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, day("2025-03-01"), got)

	// Offset timestamps normalize to the UTC calendar day.
	got, err = ParseDate("2025-03-01T23:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, day("2025-03-02"), got)

	_, err = ParseDate("01/03/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	// 2025-03-01 02:30 UTC+5 is 2025-02-28 21:30 UTC.
	in := time.Date(2025, 3, 1, 2, 30, 0, 0, loc)
	got := NormalizeDate(in)
	assert.Equal(t, day("2025-02-28"), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestRentalDays(t *testing.T) {
	assert.Equal(t, 1, RentalDays(day("2025-03-01"), day("2025-03-02")))
	assert.Equal(t, 4, RentalDays(day("2025-03-01"), day("2025-03-05")))
	assert.Equal(t, 0, RentalDays(day("2025-03-01"), day("2025-03-01")))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "2025-03-01", "2025-03-05", "2025-03-01", "2025-03-05", true},
		{"partial", "2025-03-01", "2025-03-05", "2025-03-04", "2025-03-08", true},
		{"contained", "2025-03-01", "2025-03-10", "2025-03-03", "2025-03-05", true},
		{"adjacent after", "2025-03-01", "2025-03-05", "2025-03-05", "2025-03-08", false},
		{"adjacent before", "2025-03-05", "2025-03-08", "2025-03-01", "2025-03-05", false},
		{"disjoint", "2025-03-01", "2025-03-03", "2025-03-10", "2025-03-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-03-01", FormatDate(day("2025-03-01")))
}
