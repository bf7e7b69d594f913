package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-leave/internal/events"
	"go-leave/internal/notification"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NotificationSender delivers one message; implemented by *notification.Sender.
type NotificationSender interface {
	Send(ctx context.Context, phoneNumber, message string, typ notification.Type) bool
}

// ConsumeLeaveNotifications delivers queued notifications. The Sender already
// retries, so every message is committed after one Send whatever the outcome.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader MessageReader,
	sender NotificationSender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notification")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, msg, sender, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, msg kafkago.Message, sender NotificationSender, log *zap.Logger) {
	var event events.LeaveNotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave notification event failed", zap.Error(err))
		return
	}

	typ := notification.Type(event.NotificationType)
	if !typ.Valid() {
		log.Warn("unknown notification type, skipping",
			zap.String("request_id", event.RequestID),
			zap.String("notification_type", event.NotificationType),
		)
		return
	}

	if !sender.Send(ctx, event.PhoneNumber, event.Message, typ) {
		log.Warn("leave notification not delivered",
			zap.String("request_id", event.RequestID),
			zap.String("notification_type", event.NotificationType),
		)
		return
	}

	log.Info("leave notification delivered",
		zap.String("request_id", event.RequestID),
		zap.String("notification_type", event.NotificationType),
	)
}
