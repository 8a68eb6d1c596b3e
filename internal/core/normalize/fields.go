// Package normalize turns raw vision-model output, either free OCR text or
// a loosely-keyed JSON object, into the canonical session records.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractNumber applies pattern to text and parses the first capture group
// as a number. No match or an unparseable group yields nil, never an error.
func ExtractNumber(text string, pattern *regexp.Regexp) *float64 {
	m := pattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// ExtractValue applies pattern to text and capitalizes the first capture
// group. No match returns the caller-supplied default, which may be nil.
func ExtractValue(text string, pattern *regexp.Regexp, def *string) *string {
	m := pattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return def
	}
	s := capitalize(m[1])
	return &s
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// how the extraction labels are displayed in the app ("Technical", "High").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// numberRule binds one record slot to an ordered pattern chain. Patterns
// are tried in order and the first hit wins; rules are independent, so one
// field's miss never affects another.
type numberRule struct {
	dst      **float64
	patterns []*regexp.Regexp
}

func applyNumberRules(text string, rules []numberRule) {
	for _, r := range rules {
		for _, p := range r.patterns {
			if v := ExtractNumber(text, p); v != nil {
				*r.dst = v
				break
			}
		}
	}
}

func strPtr(s string) *string { return &s }
