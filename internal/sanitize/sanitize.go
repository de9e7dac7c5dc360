// Package sanitize holds the pure input cleaning and validation helpers used
// before anything is written to the database. Every function returns a zero
// value (empty string, false, 0) on bad input instead of an error, so callers
// must check for emptiness when a field is required.
package sanitize

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var (
	phoneRe      = regexp.MustCompile(`^\+?[0-9][0-9 \-]*$`)
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	slugUnsafeRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Clean trims the string, removes control characters plus '<' and '>', and
// clamps the result to max runes. Cleaning an already-clean string returns it
// unchanged.
func Clean(s string, max int) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) || r == '<' || r == '>' {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	runes := []rune(out)
	if max > 0 && len(runes) > max {
		out = strings.TrimSpace(string(runes[:max]))
	}
	return out
}

// ValidPhone accepts an optional leading '+', then digits, spaces and dashes,
// with 7 to 15 digits overall.
func ValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !phoneRe.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// ValidEmail checks the usual local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// Money coerces a submitted amount to a usable non-negative number.
func Money(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Quantity clamps n into [min, max].
func Quantity(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Slugify lowercases the name, replaces runs of non-alphanumeric characters
// with a single hyphen and trims leading/trailing hyphens. Distinct names can
// map to the same slug; uniqueness is left to the database index.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugUnsafeRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizePhone strips everything but digits, then drops a leading 254
// country code or trunk zero so that 0712..., +254712... and 712... all
// compare equal.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "254") && len(digits) > 9 {
		return digits[3:]
	}
	if strings.HasPrefix(digits, "0") && len(digits) > 1 {
		return digits[1:]
	}
	return digits
}
