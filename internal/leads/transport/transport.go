// Package transport defines the wire DTOs for the leads module.
package transport

import (
	"time"

	"pago_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// SubmitRequest is the public intake payload. The website field is
// the honeypot, it carries no validation on purpose.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255,person_name"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Phone   string `json:"phone" validate:"omitempty,max=30,phone_chars"`
	Message string `json:"message" validate:"omitempty,max=2000"`
	Website string `json:"website"`
	Source  string `json:"source" validate:"omitempty,max=100"`
}

// SubmitResponse is returned for every successful-looking intake,
// accepted or discarded alike.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LeadResponse is the admin view of a lead.
type LeadResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Source    string    `json:"source,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromLead maps a domain lead to its response shape.
func FromLead(lead *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:        lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
		Source:    lead.Source,
		Status:    lead.Status,
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}

// ListResponse is a paginated lead listing.
type ListResponse struct {
	Items    []LeadResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// UpdateStatusRequest changes a lead's status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
