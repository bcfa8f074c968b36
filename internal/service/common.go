package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/expensedesk/reimbursement-service/internal/domain"
	"github.com/expensedesk/reimbursement-service/internal/events"
	"github.com/expensedesk/reimbursement-service/pkg/util/errorutil"
)

const msgInvalidID = "Invalid ID was input."

// coerceID converts a lookup value to a number the way a loose numeric cast
// would: blank becomes 0 and garbage becomes NaN. The result still has to
// pass IsValidID.
func coerceID(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// lookupID validates a lookup value as an entity id.
func lookupID(isValid func(any) bool, raw string) (int, error) {
	f := coerceID(raw)
	if !isValid(f) || f > math.MaxInt32 {
		return 0, errorutil.NewInvalidInput(msgInvalidID)
	}
	return int(f), nil
}

func actorFromContext(ctx context.Context) events.Actor {
	p, ok := domain.PrincipalFromContext(ctx)
	if !ok {
		return events.Actor{}
	}
	id := p.ID
	return events.Actor{UserID: &id, Username: p.Username}
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Actor = actorFromContext(ctx)
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
