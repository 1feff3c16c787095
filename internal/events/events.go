// Package events defines the domain events exchanged between modules.
package events

import (
	"github.com/google/uuid"

	"pago_backend/platform/events"
)

// Event names.
const (
	LeadSubmittedName = "lead.submitted"
)

// LeadSubmitted is published after a lead has been persisted.
type LeadSubmitted struct {
	events.BaseEvent
	LeadID  uuid.UUID
	Name    string
	Email   string
	Phone   string
	Message string
	Source  string
}

// EventName implements events.Event.
func (LeadSubmitted) EventName() string { return LeadSubmittedName }
