package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthAlternation = `(january|february|march|april|may|june|july|august|september|october|november|december)`

var (
	longDateRe = regexp.MustCompile(`(?i)` + monthAlternation + `\s+(\d{1,2}),\s*(\d{4})`)
	// Training sessions title as "March 15, 2024 Morning Session"; the
	// tail after the time-of-day word belongs to the title. Match reports
	// have no tail, and [^,]* crosses newlines, so the match pattern must
	// stop at the time-of-day word.
	sessionNameRe      = regexp.MustCompile(`(?i)(` + monthAlternation + `\s+\d{1,2},\s*\d{4}\s+(?:morning|afternoon|evening)[^,]*)`)
	matchSessionNameRe = regexp.MustCompile(`(?i)(` + monthAlternation + `\s+\d{1,2},\s*\d{4}\s+(?:morning|afternoon|evening))`)
	isoDateRe          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	months = map[string]time.Month{
		"january": time.January, "february": time.February, "march": time.March,
		"april": time.April, "may": time.May, "june": time.June,
		"july": time.July, "august": time.August, "september": time.September,
		"october": time.October, "november": time.November, "december": time.December,
	}
)

// ParseLongDate finds the first "<Month> <day>, <year>" occurrence and
// converts it to YYYY-MM-DD. Anything unparseable, including impossible
// calendar dates, yields nil rather than an error.
func ParseLongDate(text string) *string {
	m := longDateRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	month, ok := months[strings.ToLower(m[1])]
	if !ok {
		return nil
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	// time.Date normalizes "February 30" into March; reject such rollover.
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month || d.Year() != year {
		return nil
	}
	s := d.Format("2006-01-02")
	return &s
}

// extractSessionName captures the app's session title line, e.g.
// "march 15, 2024 morning session".
func extractSessionName(text string) *string {
	return firstCapture(sessionNameRe, text)
}

// extractMatchSessionName captures a match report's title, which ends at
// the time-of-day word, e.g. "march 20, 2024 afternoon".
func extractMatchSessionName(text string) *string {
	return firstCapture(matchSessionNameRe, text)
}

func firstCapture(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	s := strings.TrimSpace(m[1])
	return &s
}
