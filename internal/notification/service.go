package notification

import (
	"context"
	"encoding/json"
	"fmt"

	domainevents "pago_backend/internal/events"
	"pago_backend/internal/email"
	"pago_backend/platform/config"
	"pago_backend/platform/events"
	"pago_backend/platform/logger"

	"github.com/google/uuid"
)

// maxAttempts before an outbox entry is parked as failed.
const maxAttempts = 5

// LeadAlertPayload is the outbox payload for a lead alert.
type LeadAlertPayload struct {
	LeadID  string `json:"lead_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Service turns lead events into admin alert emails.
type Service struct {
	repo   *Repository
	sender email.Sender
	queue  *Client
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// NewService creates a Service. queue may be nil, delivery then runs
// inline in the subscriber goroutine.
func NewService(repo *Repository, sender email.Sender, queue *Client, cfg config.NotificationConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, sender: sender, queue: queue, cfg: cfg, log: log}
}

// HandleLeadSubmitted is the lead.submitted subscriber.
func (s *Service) HandleLeadSubmitted(ctx context.Context, event events.Event) error {
	submitted, ok := event.(domainevents.LeadSubmitted)
	if !ok {
		return nil
	}

	payload, err := json.Marshal(LeadAlertPayload{
		LeadID:  submitted.LeadID.String(),
		Name:    submitted.Name,
		Email:   submitted.Email,
		Phone:   submitted.Phone,
		Message: submitted.Message,
		Source:  submitted.Source,
	})
	if err != nil {
		s.log.Error("lead alert payload marshal failed", "error", err)
		return nil
	}

	outboxID, err := s.repo.Insert(ctx, TaskDeliver, payload)
	if err != nil {
		s.log.DatabaseError("notification.outbox_insert", err)
		return nil
	}

	if s.queue != nil {
		err := s.queue.EnqueueDeliver(ctx, outboxID)
		if err == nil {
			return nil
		}
		s.log.Error("enqueue failed, delivering inline", "outbox_id", outboxID, "error", err)
	}

	if err := s.Deliver(ctx, outboxID); err != nil {
		s.log.EmailError("lead_alert", s.cfg.GetAdminNotifyAddress(), err)
	}
	return nil
}

// Deliver sends one outbox entry and updates its status. Already-sent
// entries are skipped so redeliveries stay harmless.
func (s *Service) Deliver(ctx context.Context, outboxID uuid.UUID) error {
	entry, err := s.repo.Get(ctx, outboxID)
	if err != nil {
		return err
	}
	if entry.Status == StatusSent {
		return nil
	}

	var payload LeadAlertPayload
	if err := json.Unmarshal(entry.Payload, &payload); err != nil {
		_ = s.repo.MarkFailed(ctx, outboxID, true)
		return fmt.Errorf("decode outbox payload: %w", err)
	}

	subject, htmlBody, textBody, err := renderLeadAlert(leadAlertData{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Message:  payload.Message,
		Source:   payload.Source,
		AdminURL: fmt.Sprintf("%s/admin/leads/%s", s.cfg.GetAppBaseURL(), payload.LeadID),
	})
	if err != nil {
		_ = s.repo.MarkFailed(ctx, outboxID, true)
		return err
	}

	sendErr := s.sender.Send(ctx, email.Message{
		To:       s.cfg.GetAdminNotifyAddress(),
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if sendErr != nil {
		final := entry.Attempts+1 >= maxAttempts
		_ = s.repo.MarkFailed(ctx, outboxID, final)
		return sendErr
	}

	return s.repo.MarkSent(ctx, outboxID)
}
