package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead statuses, in the order they usually progress.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusEnrolled  = "enrolled"
	StatusArchived  = "archived"
)

// ValidStatus reports whether s is a known lead status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusEnrolled, StatusArchived:
		return true
	}
	return false
}

// Lead is a stored lead record.
type Lead struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Message   string
	Source    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter narrows admin lead listings.
type ListFilter struct {
	Status   string
	Source   string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// Normalize clamps pagination to the supported range.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

// Offset returns the SQL offset for the normalized filter.
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
