package sanitizer

import "strings"

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

// SplitList turns "WiFi, Mini bar,TV" into its trimmed parts.
func SplitList(s string) []string {
	return NormalizeStringSlice(strings.Split(s, ","), TrimAndNormalize)
}

func NormalizeAmenities(amenities []string) []string {
	return NormalizeStringSlice(amenities, TrimAndNormalize)
}

func NormalizeTags(tags []string) []string {
	return NormalizeStringSlice(tags, NormalizeTag)
}

func NormalizeImages(images []string) []string {
	return NormalizeStringSlice(images, NormalizeImageRef)
}
