// Package phone normalizes phone numbers to E.164.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultRegion is used when the number has no international prefix.
const defaultRegion = "BR"

// Normalize parses a raw phone number and returns it in E.164 form.
// Numbers without a country prefix are assumed Brazilian. When the
// value cannot be parsed as a valid number, the trimmed input is
// returned unchanged so the original contact detail is never lost.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return trimmed
	}

	return phonenumbers.Format(parsed, phonenumbers.E164)
}
