// Package dates turns the date strings submitted by booking forms into
// calendar dates and provides the half-open interval arithmetic used by
// availability checks.
//
// A calendar date is a time.Time at midnight UTC. Parse never consults the
// clock; comparisons against "today" belong to the caller (see Today).
package dates

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	ISOLayout = "2006-01-02"

	day = 24 * time.Hour
)

var ErrInvalidDate = errors.New("invalid date")

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var monthAbbreviations = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// Parse accepts "YYYY-MM-DD" or "dd Mon yy", optionally wrapped in markup.
func Parse(input string) (time.Time, error) {
	cleaned := strings.TrimSpace(tagPattern.ReplaceAllString(input, ""))
	if cleaned == "" {
		return time.Time{}, ErrInvalidDate
	}

	if t, ok := parseISO(cleaned); ok {
		return t, nil
	}
	if t, ok := parseShort(cleaned); ok {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

func parseISO(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) != 4 {
		return time.Time{}, false
	}

	year, ok := digits(parts[0])
	if !ok {
		return time.Time{}, false
	}
	month, ok := digits(parts[1])
	if !ok || month < 1 || month > 12 {
		return time.Time{}, false
	}
	d, ok := digits(parts[2])
	if !ok || d < 1 || d > 31 {
		return time.Time{}, false
	}

	return build(year, time.Month(month), d)
}

func parseShort(s string) (time.Time, bool) {
	tokens := strings.Fields(s)
	if len(tokens) != 3 {
		return time.Time{}, false
	}

	d, ok := digits(tokens[0])
	if !ok || d < 1 || d > 31 {
		return time.Time{}, false
	}
	month, ok := monthAbbreviations[strings.ToLower(tokens[1])]
	if !ok {
		return time.Time{}, false
	}
	year, ok := digits(tokens[2])
	if !ok {
		return time.Time{}, false
	}
	switch {
	case year < 100:
		year += 2000
	case year < 2000 || year > 2099:
		return time.Time{}, false
	}

	return build(year, month, d)
}

// build rejects values that time.Date would silently normalize, such as
// February 30th rolling over into March.
func build(year int, month time.Month, d int) (time.Time, bool) {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func Format(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// Nights counts started nights between two dates.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / day.Hours()))
}

// Today is the calendar date of now as seen from the hotel's location.
func Today(loc *time.Location, now time.Time) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Intervals that only touch at an endpoint do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
