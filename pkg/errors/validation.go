package errors

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Field validators used by the editor and by ingestion. Each returns a
// *FieldError naming the offending field, so callers can report it without
// further formatting.

// MaxCodeLength bounds classification and sample type codes.
const MaxCodeLength = 24

// codeRegex matches classification codes: letters and digits, optionally
// joined by single hyphens ("SM", "GP-GM", "ROCK").
var codeRegex = regexp.MustCompile(`^[A-Za-z0-9]+(-[A-Za-z0-9]+)*$`)

func fieldErr(field, value, format string, args ...any) error {
	return &FieldError{Field: field, Value: value, Err: New(ErrCodeInvalidInput, format, args...)}
}

// ParseNumber parses a finite decimal number.
func ParseNumber(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fieldErr(field, value, "not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fieldErr(field, value, "must be finite")
	}
	return v, nil
}

// ParseDepth parses a depth below ground surface. Depths cannot be negative.
func ParseDepth(field, value string) (float64, error) {
	v, err := ParseNumber(field, value)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fieldErr(field, value, "depth cannot be negative")
	}
	return v, nil
}

// ParseOptionalNumber is ParseNumber for optional fields: blank input
// clears the value.
func ParseOptionalNumber(field, value string) (*float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	v, err := ParseNumber(field, value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseOptionalDepth is ParseDepth for optional fields.
func ParseOptionalDepth(field, value string) (*float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	v, err := ParseDepth(field, value)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ValidateInterval checks that top lies above bottom.
func ValidateInterval(field string, top, bottom float64) error {
	if top >= bottom {
		return fieldErr(field, strconv.FormatFloat(top, 'f', -1, 64)+"-"+strconv.FormatFloat(bottom, 'f', -1, 64),
			"top must be above bottom")
	}
	return nil
}

// ValidateCode checks a classification or sample type code. Empty codes are
// allowed; they render with the fallback pattern.
func ValidateCode(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if len(value) > MaxCodeLength {
		return fieldErr(field, value, "code too long (max %d characters)", MaxCodeLength)
	}
	if !codeRegex.MatchString(value) {
		return fieldErr(field, value, "code may only contain letters, digits and single hyphens")
	}
	return nil
}

// ValidateEnum checks value against allowed, ignoring case. Empty is allowed.
func ValidateEnum(field, value string, allowed []string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return fieldErr(field, value, "must be one of %s", strings.Join(allowed, ", "))
}

// ParseBlows parses SPT blow counts written as "4-5-6", "4,5,6" or
// "4 5 6". Blank input yields nil. At most three counts are accepted.
func ParseBlows(field, value string) ([]int, error) {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '-' || r == ',' || r == '/' || unicode.IsSpace(r)
	})
	if len(parts) == 0 {
		return nil, nil
	}
	if len(parts) > 3 {
		return nil, fieldErr(field, value, "at most three blow counts")
	}
	blows := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fieldErr(field, value, "blow counts must be whole non-negative numbers")
		}
		blows[i] = n
	}
	return blows, nil
}

// ValidateText rejects control characters in free-form fields.
func ValidateText(field, value string) error {
	for _, r := range value {
		if unicode.IsControl(r) && r != '\t' {
			return fieldErr(field, value, "contains control characters")
		}
	}
	return nil
}
