package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/expensedesk/reimbursement-service/internal/config"
	"github.com/expensedesk/reimbursement-service/internal/events"
	"github.com/expensedesk/reimbursement-service/internal/observability"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger.With(zap.String("component", "notification_service")),
		metrics:    metrics,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n == nil || n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserEvent)
	n.dispatcher.Subscribe(events.EventUserUpdated, n.handleUserEvent)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleUserEvent)
	n.dispatcher.Subscribe(events.EventReimbursementSubmitted, n.handleReimbursementSubmitted)
	n.dispatcher.Subscribe(events.EventReimbursementUpdated, n.handleReimbursementUpdated)
	n.dispatcher.Subscribe(events.EventReimbursementResolved, n.handleReimbursementResolved)
}

func (n *NotificationService) handleUserEvent(_ context.Context, event events.Event) error {
	n.record(event)
	n.logWebhookNotification(event)
	return nil
}

func (n *NotificationService) handleReimbursementSubmitted(_ context.Context, event events.Event) error {
	n.record(event)
	n.logWebhookNotification(event)
	return nil
}

func (n *NotificationService) handleReimbursementUpdated(_ context.Context, event events.Event) error {
	n.record(event)
	return nil
}

// The author hears about resolutions by mail.
func (n *NotificationService) handleReimbursementResolved(_ context.Context, event events.Event) error {
	n.record(event)
	n.logEmailNotification(event)
	n.logWebhookNotification(event)
	return nil
}

func (n *NotificationService) record(event events.Event) {
	n.metrics.RecordEvent(string(event.Type))
	n.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.Int("entity_id", event.EntityID),
		zap.Any("actor", event.Actor),
		zap.Any("payload", event.Payload))
}

// logEmailNotification records the mail an author would receive. Nothing
// is sent until a mailer is configured.
func (n *NotificationService) logEmailNotification(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) logWebhookNotification(event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
