package locale

import "strings"

// InferCountryFromPhone returns the country whose calling code prefixes an
// E.164 number, or nil when the number is from outside the table.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)
	if !strings.HasPrefix(normalized, "+") {
		return nil
	}

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
