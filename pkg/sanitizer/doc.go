// Package sanitizer normalizes free-text input from booking, blog and
// facility forms before it is validated and stored.
//
// Normalization is idempotent. Functions return an empty value rather than
// an error for input that cannot be normalized, and callers decide whether
// empty is acceptable.
//
//   - Phone numbers: parsed for the hotel's default region and rendered E.164
//   - Strings: whitespace collapsed and trimmed
//   - Emails: trimmed and lower-cased
//   - Slugs: lower-case ASCII words joined by hyphens
//   - Lists: comma-split, normalized, de-duplicated, empties dropped
//   - Image references: site-relative paths kept, absolute URLs forced to https
package sanitizer
