package notification

import (
	domainevents "pago_backend/internal/events"
	"pago_backend/internal/email"
	"pago_backend/platform/config"
	"pago_backend/platform/events"
	"pago_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module owns lead alert delivery. It registers no HTTP routes, it
// only listens on the event bus.
type Module struct {
	service *Service
}

// NewModule builds the notification module and subscribes it.
func NewModule(pool *pgxpool.Pool, sender email.Sender, queue *Client, cfg *config.Config, bus events.Bus, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	service := NewService(repo, sender, queue, cfg, log)
	bus.Subscribe(domainevents.LeadSubmittedName, service.HandleLeadSubmitted)
	return &Module{service: service}
}

// Service exposes the delivery service for the queue worker binary.
func (m *Module) Service() *Service {
	return m.service
}
