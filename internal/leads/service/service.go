// Package service implements lead intake and the admin operations.
package service

import (
	"context"
	"errors"
	"time"

	domainevents "pago_backend/internal/events"
	"pago_backend/internal/leads/domain"
	"pago_backend/internal/leads/repository"
	"pago_backend/platform/apperr"
	"pago_backend/platform/events"
	"pago_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadStore is the persistence surface the service needs.
type LeadStore interface {
	Create(ctx context.Context, s domain.Submission) (*domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Lead, int64, error)
	ListForExport(ctx context.Context, from, to *time.Time) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Lead, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Service coordinates lead intake and administration.
type Service struct {
	store LeadStore
	bus   events.Bus
	log   *logger.Logger
}

// New creates a Service.
func New(store LeadStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log}
}

// SubmitInput is the validated, sanitized public payload.
type SubmitInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Website string
	Source  string
}

// Submit runs the honeypot check and persists the lead. A triggered
// honeypot returns OutcomeSilentlyDiscarded with no error, so the
// handler produces the exact same response either way.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (domain.SubmitOutcome, error) {
	if domain.HoneypotTriggered(input.Website) {
		return domain.OutcomeSilentlyDiscarded, nil
	}

	submission := domain.NewSubmission(input.Name, input.Email, input.Phone, input.Message, input.Source)

	lead, err := s.store.Create(ctx, submission)
	if err != nil {
		s.log.DatabaseError("leads.create", err)
		return domain.OutcomeAccepted, apperr.Wrap(apperr.KindInternal, "não foi possível registrar a inscrição", err)
	}

	s.bus.Publish(ctx, domainevents.LeadSubmitted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Message:   lead.Message,
		Source:    lead.Source,
	})

	return domain.OutcomeAccepted, nil
}

// List returns a page of leads for the admin listing.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Lead, int64, error) {
	filter.Normalize()
	leads, total, err := s.store.List(ctx, filter)
	if err != nil {
		s.log.DatabaseError("leads.list", err)
		return nil, 0, apperr.Wrap(apperr.KindInternal, "não foi possível listar os leads", err)
	}
	return leads, total, nil
}

// Get returns a single lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrLeadNotFound) {
		return nil, apperr.NotFound("lead não encontrado")
	}
	if err != nil {
		s.log.DatabaseError("leads.get", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível carregar o lead", err)
	}
	return lead, nil
}

// UpdateStatus transitions a lead to a new status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Lead, error) {
	if !domain.ValidStatus(status) {
		return nil, apperr.Validation("status inválido")
	}

	lead, err := s.store.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrLeadNotFound) {
		return nil, apperr.NotFound("lead não encontrado")
	}
	if err != nil {
		s.log.DatabaseError("leads.update_status", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível atualizar o lead", err)
	}
	return lead, nil
}

// Delete soft-deletes a lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.SoftDelete(ctx, id)
	if errors.Is(err, repository.ErrLeadNotFound) {
		return apperr.NotFound("lead não encontrado")
	}
	if err != nil {
		s.log.DatabaseError("leads.delete", err)
		return apperr.Wrap(apperr.KindInternal, "não foi possível remover o lead", err)
	}
	return nil
}

// Export returns every lead in the date range for CSV streaming.
func (s *Service) Export(ctx context.Context, from, to *time.Time) ([]domain.Lead, error) {
	leads, err := s.store.ListForExport(ctx, from, to)
	if err != nil {
		s.log.DatabaseError("leads.export", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível exportar os leads", err)
	}
	return leads, nil
}
