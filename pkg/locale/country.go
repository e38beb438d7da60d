package locale

import (
	"strings"
)

const (
	DefaultTimezone = "UTC"
	DefaultRegion   = "NG"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "NG", "GB")
	Name            string   // Human-readable country name
	DefaultTimezone string   // IANA timezone identifier (e.g., "Africa/Lagos")
	Currency        string   // ISO 4217 code rooms are priced in
	Timezones       []string // IANA names that map back to this country
	PhonePrefixes   []string // E.164 calling code prefixes
}

var Countries = map[string]Country{
	"NG": {
		Code:            "NG",
		Name:            "Nigeria",
		DefaultTimezone: "Africa/Lagos",
		Currency:        "NGN",
		Timezones:       []string{"Africa/Lagos"},
		PhonePrefixes:   []string{"+234"},
	},
	"GH": {
		Code:            "GH",
		Name:            "Ghana",
		DefaultTimezone: "Africa/Accra",
		Currency:        "GHS",
		Timezones:       []string{"Africa/Accra"},
		PhonePrefixes:   []string{"+233"},
	},
	"GB": {
		Code:            "GB",
		Name:            "United Kingdom",
		DefaultTimezone: "Europe/London",
		Currency:        "GBP",
		Timezones:       []string{"Europe/London", "GB"},
		PhonePrefixes:   []string{"+44"},
	},
	"US": {
		Code:            "US",
		Name:            "United States",
		DefaultTimezone: "America/New_York",
		Currency:        "USD",
		Timezones:       []string{"America/New_York", "America/Chicago", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
		PhonePrefixes:   []string{"+1"},
	},
}

// DetectRegion maps a hotel timezone to the region used when parsing
// guest phone numbers written without a country code.
func DetectRegion(tz string) string {
	for region, country := range Countries {
		for _, z := range country.Timezones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultRegion
}

func CurrencyFor(region string) string {
	if country, ok := Countries[strings.ToUpper(region)]; ok {
		return country.Currency
	}
	return Countries[DefaultRegion].Currency
}
