package dates

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "iso", input: "2025-11-14", want: date(2025, time.November, 14)},
		{name: "iso with padding", input: "  2025-01-05 ", want: date(2025, time.January, 5)},
		{name: "iso leap day", input: "2024-02-29", want: date(2024, time.February, 29)},
		{name: "iso wrapped in markup", input: "<span>2025-11-16</span>", want: date(2025, time.November, 16)},
		{name: "short", input: "14 Nov 25", want: date(2025, time.November, 14)},
		{name: "short lower case", input: "1 jan 26", want: date(2026, time.January, 1)},
		{name: "short upper case", input: "09 DEC 30", want: date(2030, time.December, 9)},
		{name: "short four digit year", input: "14 Nov 2025", want: date(2025, time.November, 14)},
		{name: "short in markup", input: "<b>16</b> <i>Nov</i> 25", want: date(2025, time.November, 16)},

		{name: "empty", input: "", wantErr: true},
		{name: "only markup", input: "<br/>", wantErr: true},
		{name: "february 30", input: "2024-02-30", wantErr: true},
		{name: "february 29 non leap", input: "2025-02-29", wantErr: true},
		{name: "april 31", input: "2025-04-31", wantErr: true},
		{name: "month 13", input: "2025-13-01", wantErr: true},
		{name: "day zero", input: "2025-01-00", wantErr: true},
		{name: "non numeric part", input: "2025-ab-01", wantErr: true},
		{name: "signed part", input: "2025-+1-01", wantErr: true},
		{name: "too many parts", input: "2025-01-01-01", wantErr: true},
		{name: "short year in iso", input: "25-11-14", wantErr: true},
		{name: "short unknown month", input: "14 Novem 25", wantErr: true},
		{name: "short invalid day", input: "31 Apr 25", wantErr: true},
		{name: "short two tokens", input: "14 Nov", wantErr: true},
		{name: "short year out of range", input: "14 Nov 1999", wantErr: true},
		{name: "slash format", input: "11/14/2025", wantErr: true},
		{name: "words", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "Parse(%q) = %v, want %v", tt.input, got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParse_ISORoundTrip(t *testing.T) {
	for d := date(2024, time.January, 1); d.Year() < 2026; d = d.AddDate(0, 0, 1) {
		s := d.Format(ISOLayout)
		got, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, Format(got))
	}
}

func TestParse_TwoDigitYears(t *testing.T) {
	for yy := 0; yy < 100; yy++ {
		input := fmt.Sprintf("15 Jun %02d", yy)
		got, err := Parse(input)
		require.NoError(t, err, input)
		assert.Equal(t, 2000+yy, got.Year(), input)
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, Nights(date(2025, time.November, 14), date(2025, time.November, 16)))
	assert.Equal(t, 1, Nights(date(2025, time.December, 31), date(2026, time.January, 1)))
	assert.Equal(t, 0, Nights(date(2025, time.November, 14), date(2025, time.November, 14)))
	assert.Equal(t, 1, Nights(date(2025, time.November, 14), date(2025, time.November, 14).Add(time.Hour)))
}

func TestToday(t *testing.T) {
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Lagos (UTC+1).
	now := time.Date(2025, time.November, 13, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2025, time.November, 14), Today(lagos, now))
	assert.Equal(t, date(2025, time.November, 13), Today(nil, now))
}

func TestOverlaps(t *testing.T) {
	start, end := date(2025, time.November, 14), date(2025, time.November, 16)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical", start, end, true},
		{"partial tail", date(2025, time.November, 15), date(2025, time.November, 17), true},
		{"partial head", date(2025, time.November, 13), date(2025, time.November, 15), true},
		{"contains", date(2025, time.November, 10), date(2025, time.November, 20), true},
		{"back to back after", end, date(2025, time.November, 18), false},
		{"back to back before", date(2025, time.November, 12), start, false},
		{"disjoint", date(2025, time.December, 1), date(2025, time.December, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(start, end, tt.start, tt.end))
			assert.Equal(t, tt.want, Overlaps(tt.start, tt.end, start, end))
		})
	}
}
