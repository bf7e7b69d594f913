package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"
)

const asyncSendTimeout = time.Minute

type asyncDispatcher struct {
	sender *Sender
	logger *zap.Logger
}

// NewAsyncDispatcher sends each notification in its own goroutine, detached
// from the request context so a finished HTTP request does not cancel it.
func NewAsyncDispatcher(sender *Sender, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.async")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.async")
	}
	return &asyncDispatcher{sender: sender, logger: l}
}

func (d *asyncDispatcher) Dispatch(ctx context.Context, n Notification) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncSendTimeout)
	rid := contextutil.GetRequestID(ctx)

	go func() {
		defer cancel()
		if ok := d.sender.Send(sendCtx, n.PhoneNumber, n.Message, n.Type); !ok {
			d.logger.Warn("notification not delivered",
				zap.String("request_id", rid),
				zap.String("type", string(n.Type)),
			)
		}
	}()
}

type outboxDispatcher struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewOutboxDispatcher queues notifications in outbox_events; the worker
// publishes them and the consumer delivers them through a Sender.
func NewOutboxDispatcher(outbox kafka.OutboxRepository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &outboxDispatcher{outbox: outbox, logger: l}
}

func (d *outboxDispatcher) Dispatch(ctx context.Context, n Notification) {
	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveNotificationRequestedEvent{
		EventType:        events.LeaveNotificationRequestedType,
		RequestID:        rid,
		NotificationType: string(n.Type),
		PhoneNumber:      n.PhoneNumber,
		Message:          n.Message,
		OccurredAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("marshal notification event failed", zap.String("request_id", rid), zap.Error(err))
		return
	}

	id := uuid.NewString()
	if err := d.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            id,
		RequestID:     rid,
		AggregateType: "notification",
		AggregateID:   id,
		EventType:     event.EventType,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		d.logger.Error("queue notification failed",
			zap.String("request_id", rid),
			zap.String("type", string(n.Type)),
			zap.Error(err),
		)
		return
	}

	d.logger.Debug("notification queued",
		zap.String("outbox_id", id),
		zap.String("type", string(n.Type)),
	)
}
