package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

const maxSlugLength = 100

var (
	reSlugDrop   = regexp.MustCompile(`[^a-z0-9\s-]+`)
	reSlugSpaces = regexp.MustCompile(`\s+`)
	reSlugDashes = regexp.MustCompile(`-+`)
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeTag(tag string) string {
	return strings.ToLower(TrimAndNormalize(tag))
}

// Slug derives a URL path segment from a title:
// "Top 5 Spots in Lagos!" becomes "top-5-spots-in-lagos".
func Slug(title string) string {
	p := Pipeline{
		strings.ToLower,
		func(s string) string { return reSlugDrop.ReplaceAllString(s, "") },
		strings.TrimSpace,
		func(s string) string { return reSlugSpaces.ReplaceAllString(s, "-") },
		func(s string) string { return reSlugDashes.ReplaceAllString(s, "-") },
		func(s string) string {
			if len(s) > maxSlugLength {
				s = s[:maxSlugLength]
			}
			return strings.Trim(s, "-")
		},
	}
	return p.Apply(title)
}
