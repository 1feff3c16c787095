// Package sanitize strips common XSS vectors from untrusted input.
// It runs before binding, so handlers and validators only ever see
// cleaned values.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	scriptTagRe   = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
	iframeBlockRe = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>`)
	iframeTagRe   = regexp.MustCompile(`(?i)</?iframe\b[^>]*>`)
	eventAttrRe   = regexp.MustCompile(`(?i)\bon\w+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	jsSchemeRe    = regexp.MustCompile(`(?i)javascript\s*:`)
	dataHTMLRe    = regexp.MustCompile(`(?i)data\s*:\s*text/html`)
)

// String cleans a single string value. Steps run in a fixed order:
// script blocks, iframe blocks, inline event handlers, javascript:
// URIs, data:text/html URIs, then whitespace trim. The result is
// stable under re-application.
func String(s string) string {
	s = stripRepeatedly(s, scriptBlockRe)
	s = stripRepeatedly(s, scriptTagRe)
	s = stripRepeatedly(s, iframeBlockRe)
	s = stripRepeatedly(s, iframeTagRe)
	s = stripRepeatedly(s, eventAttrRe)
	s = stripRepeatedly(s, jsSchemeRe)
	s = stripRepeatedly(s, dataHTMLRe)
	return strings.TrimSpace(s)
}

// Removal can expose a new match (split tags reassembling), so each
// pattern is applied until the value stops changing.
func stripRepeatedly(s string, re *regexp.Regexp) string {
	for {
		next := re.ReplaceAllString(s, "")
		if next == s {
			return next
		}
		s = next
	}
}

// Value walks an arbitrary decoded JSON value and cleans every string
// leaf, preserving the shape of the tree. Numbers, booleans and nulls
// pass through untouched. It never fails.
func Value(v any) any {
	switch val := v.(type) {
	case string:
		return String(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Value(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Value(item)
		}
		return out
	default:
		return v
	}
}

// Map cleans every string leaf of a decoded JSON object in place
// semantics-wise, returning the cleaned copy.
func Map(m map[string]any) map[string]any {
	cleaned, _ := Value(m).(map[string]any)
	return cleaned
}
