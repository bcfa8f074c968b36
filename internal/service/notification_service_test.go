package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/expensedesk/reimbursement-service/internal/config"
	"github.com/expensedesk/reimbursement-service/internal/events"
	"github.com/expensedesk/reimbursement-service/internal/observability"
)

func TestNotificationServiceHandlesPublishedEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	n := NewNotificationService(dispatcher, zap.New(core), metrics, config.NotificationConfig{})
	n.RegisterHandlers()

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{ID: "e1", Type: events.EventReimbursementSubmitted, EntityID: 3})
	_ = dispatcher.Publish(ctx, events.Event{ID: "e2", Type: events.EventReimbursementResolved, EntityID: 3})
	_ = dispatcher.Publish(ctx, events.Event{ID: "e3", Type: events.EventUserDeleted, EntityID: 9})

	entries := logs.FilterMessage("domain event").All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "reimbursement_resolved", entries[1].ContextMap()["event_type"])

	count := testutil.CollectAndCount(metrics.Registry(), "reimbursement_domain_events_total")
	assert.Equal(t, 3, count)
}

func TestNotificationServiceLogsConfiguredTargets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	n := NewNotificationService(dispatcher, zap.New(core), nil, config.NotificationConfig{
		EmailFrom:  "noreply@example.com",
		WebhookURL: "http://hooks.example.com/reimb",
	})
	n.RegisterHandlers()

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.Event{ID: "e1", Type: events.EventReimbursementResolved, EntityID: 3})
	_ = dispatcher.Publish(ctx, events.Event{ID: "e2", Type: events.EventReimbursementUpdated, EntityID: 3})

	email := logs.FilterMessage("email notification").All()
	if assert.Len(t, email, 1) {
		assert.Equal(t, "noreply@example.com", email[0].ContextMap()["from"])
		assert.Equal(t, int64(3), email[0].ContextMap()["entity_id"])
	}
	webhook := logs.FilterMessage("webhook notification").All()
	if assert.Len(t, webhook, 1) {
		assert.Equal(t, "http://hooks.example.com/reimb", webhook[0].ContextMap()["url"])
	}
}

func TestNotificationServiceSkipsUnconfiguredTargets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	n := NewNotificationService(dispatcher, zap.New(core), nil, config.NotificationConfig{})
	n.RegisterHandlers()
	_ = dispatcher.Publish(context.Background(), events.Event{ID: "e1", Type: events.EventReimbursementResolved, EntityID: 3})

	assert.Zero(t, logs.FilterMessage("email notification").Len())
	assert.Zero(t, logs.FilterMessage("webhook notification").Len())
	assert.Equal(t, 1, logs.FilterMessage("domain event").Len())
}
