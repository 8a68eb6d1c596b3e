package normalize

import (
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/weljim73-spec/soccertrainerocr/internal/core/domain"
)

// binding maps one canonical record slot to the external keys that may
// carry its value. Exactly one of num/str is set. Keys are tried in order,
// so the canonical name always comes first and synonyms cover the model's
// inconsistent naming.
type binding struct {
	keys []string
	num  **float64
	str  **string
	date **string
}

// RecordFromJSON locates the single JSON object embedded in the model
// response and maps its flat keys into the canonical record for the
// session type. A response without a parseable {...} span is a malformed
// response, never a partially-filled record.
func RecordFromJSON(sessionType domain.SessionType, raw string) (domain.SessionRecord, error) {
	obj, err := parseEmbeddedObject(raw)
	if err != nil {
		return nil, err
	}
	flat := flatten(obj)

	switch sessionType {
	case domain.SessionBallWork:
		r := &domain.BallWorkRecord{}
		applyBindings(flat, ballWorkBindings(r))
		return r, nil
	case domain.SessionSpeedAgility:
		r := &domain.SpeedAgilityRecord{}
		applyBindings(flat, speedAgilityBindings(r))
		return r, nil
	default:
		r := &domain.MatchRecord{}
		applyBindings(flat, matchBindings(r))
		r.Session.TrainingType = strPtr("Match")
		return r, nil
	}
}

// FlatObject exposes the located and flattened extraction object so the
// caller can run the lenient schema check against it.
func FlatObject(raw string) (map[string]any, error) {
	obj, err := parseEmbeddedObject(raw)
	if err != nil {
		return nil, err
	}
	return flatten(obj), nil
}

func parseEmbeddedObject(raw string) (map[string]any, error) {
	span := extractJSONObject(raw)
	if span == "" {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "locate json object",
			errors.New("response contains no {...} span"))
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, domain.WrapError(domain.ErrMalformedResponse, "parse json object", err)
	}
	return obj, nil
}

// extractJSONObject returns the substring between the first "{" and the
// last "}", which reliably strips the prose models wrap around the object.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return ""
}

// flatten merges nested objects into the top level so the binding tables
// work whether the model returned flat keys or grouped them by section.
// Top-level keys win on collision. Sections are merged in sorted key
// order so a key repeated across sections resolves the same way on every
// request; map iteration order must not pick the survivor.
func flatten(obj map[string]any) map[string]any {
	sections := make([]string, 0, len(obj))
	for k, v := range obj {
		if _, ok := v.(map[string]any); ok {
			sections = append(sections, k)
		}
	}
	sort.Strings(sections)

	out := make(map[string]any, len(obj))
	for _, k := range sections {
		for ck, cv := range flatten(obj[k].(map[string]any)) {
			if _, exists := out[ck]; !exists {
				out[ck] = cv
			}
		}
	}
	for k, v := range obj {
		if _, ok := v.(map[string]any); !ok {
			out[k] = v
		}
	}
	return out
}

var leadingNumberRe = regexp.MustCompile(`^-?\d+(?:\.\d+)?`)

// toNumber coerces the JSON value into a number. Models frequently return
// "23.4 mph" or "45%" as strings; the leading numeric run is taken.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" || strings.EqualFold(s, "null") {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		if m := leadingNumberRe.FindString(s); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func toString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return "", false
	}
	return s, true
}

// toDate accepts either an already-ISO date or the app's long form.
func toDate(v any) (string, bool) {
	s, ok := toString(v)
	if !ok {
		return "", false
	}
	if isoDateRe.MatchString(s) {
		return s, true
	}
	if d := ParseLongDate(s); d != nil {
		return *d, true
	}
	return "", false
}

func applyBindings(obj map[string]any, bindings []binding) {
	for _, b := range bindings {
		for _, key := range b.keys {
			v, ok := obj[key]
			if !ok || v == nil {
				continue
			}
			if b.set(v) {
				break
			}
		}
	}
}

// set attempts the coercion for the binding's slot kind; a value of the
// wrong shape is skipped so a later synonym key can still supply it.
func (b binding) set(v any) bool {
	switch {
	case b.num != nil:
		if f, ok := toNumber(v); ok {
			val := f
			*b.num = &val
			return true
		}
	case b.date != nil:
		if s, ok := toDate(v); ok {
			val := s
			*b.date = &val
			return true
		}
	case b.str != nil:
		if s, ok := toString(v); ok {
			val := s
			*b.str = &val
			return true
		}
	}
	return false
}
