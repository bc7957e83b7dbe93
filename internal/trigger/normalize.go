package trigger

import (
	"strconv"
	"strings"
	"time"
)

// Recognized trigger tokens. Unknown tokens survive normalization but
// never match a handler.
const (
	TriggerClick  = "click"
	TriggerHover  = "hover"
	TriggerFocus  = "focus"
	TriggerBlur   = "blur"
	TriggerManual = "manual"
)

// NormalizeTriggers canonicalizes a raw trigger configuration: a string of
// whitespace-separated tokens, a list of strings, or a mixed list. Tokens
// are lower-cased, empty entries dropped, duplicates removed preserving
// first occurrence. Unsupported shapes yield nil.
func NormalizeTriggers(raw any) []string {
	var joined string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		joined = v
	case []string:
		joined = strings.Join(v, " ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		joined = strings.Join(parts, " ")
	default:
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(joined)) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

// Delay is the normalized show/hide delay pair. Both values are
// non-negative.
type Delay struct {
	Show time.Duration
	Hide time.Duration
}

// NormalizeDelay canonicalizes a raw delay configuration: a number of
// milliseconds applying to both directions, a numeric string, or a
// {show, hide} record with independent values. Anything invalid or
// negative clamps to zero.
func NormalizeDelay(raw any) Delay {
	if m, ok := raw.(map[string]any); ok {
		return Delay{Show: delayValue(m["show"]), Hide: delayValue(m["hide"])}
	}
	d := delayValue(raw)
	return Delay{Show: d, Hide: d}
}

// delayValue converts one raw delay value to a duration, zero on anything
// unusable.
func delayValue(raw any) time.Duration {
	var ms int
	switch v := raw.(type) {
	case int:
		ms = v
	case int64:
		ms = int(v)
	case float64:
		ms = int(v)
	case time.Duration:
		if v < 0 {
			return 0
		}
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		ms = n
	default:
		return 0
	}
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}
