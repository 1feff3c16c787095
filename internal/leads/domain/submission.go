// Package domain holds the lead types and the intake rules.
package domain

import (
	"strings"

	"pago_backend/platform/phone"
)

// SubmitOutcome says what happened to a submission. Both outcomes
// produce the same response to the caller, only OutcomeAccepted
// persists and notifies.
type SubmitOutcome int

const (
	// OutcomeAccepted means the lead was stored.
	OutcomeAccepted SubmitOutcome = iota
	// OutcomeSilentlyDiscarded means the honeypot fired and the
	// submission was dropped without a trace in the response.
	OutcomeSilentlyDiscarded
)

// Submission is a normalized, validated lead intake. Build it through
// NewSubmission so no unnormalized value reaches the repository.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Source  string
}

// NewSubmission normalizes the already-validated field values: names
// and messages are trimmed, emails stored lower-cased, phones brought
// to E.164 when parseable.
func NewSubmission(name, email, phoneRaw, message, source string) Submission {
	return Submission{
		Name:    strings.TrimSpace(name),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Phone:   phone.Normalize(phoneRaw),
		Message: strings.TrimSpace(message),
		Source:  strings.TrimSpace(source),
	}
}

// HoneypotTriggered reports whether the hidden website field was
// filled in. Whitespace-only values do not count, autofill browsers
// sometimes pad hidden inputs.
func HoneypotTriggered(value string) bool {
	return strings.TrimSpace(value) != ""
}
