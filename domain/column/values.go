package column

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Value classifiers are pure predicates over a single raw cell value. They do
// no locale handling; everything is textual pattern matching on the string
// form the file reader produced.

var datePatterns = []*regexp.Regexp{
	// D/M/Y or D-M-Y with 1-2 digit day/month and 2-4 digit year
	regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`),
	// Y/M/D or Y-M-D
	regexp.MustCompile(`^\d{2,4}[/-]\d{1,2}[/-]\d{1,2}$`),
	// D/Mon/Y with a 3-letter month abbreviation, e.g. 12-Jan-2020
	regexp.MustCompile(`^\d{1,2}[/-][A-Za-z]{3}[/-]\d{2,4}$`),
}

// IsDateLike reports whether v matches one of the supported date layouts.
// First match wins; the order of the patterns does not change the result.
func IsDateLike(v string) bool {
	v = strings.TrimSpace(v)
	for _, pattern := range datePatterns {
		if pattern.MatchString(v) {
			return true
		}
	}
	return false
}

// IsPercentage reports whether the trimmed form of v ends with a percent sign.
func IsPercentage(v string) bool {
	v = strings.TrimSpace(v)
	return strings.HasSuffix(v, "%")
}

// ParsePercentage strips the percent sign and surrounding whitespace and
// parses the remainder as a float. It returns NaN when the value is not
// parsable; it never panics.
func ParsePercentage(v string) float64 {
	v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// IsNumeric reports whether v parses fully as a floating-point number.
// Partial parses ("12abc") do not count.
func IsNumeric(v string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return err == nil
}

var booleanLiterals = map[string]bool{
	"true": true, "false": true,
	"0": true, "1": true,
	"yes": true, "no": true,
	"y": true, "n": true,
}

// IsBooleanLike reports whether the lower-cased form of v is a recognized
// boolean literal.
func IsBooleanLike(v string) bool {
	return booleanLiterals[strings.ToLower(strings.TrimSpace(v))]
}
