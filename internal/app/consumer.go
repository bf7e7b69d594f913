package app

import (
	"context"
	"errors"

	"go-leave/internal/config"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer delivers notifications read from Kafka until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LeaveNotificationTopic,
		GroupID:        "go-leave-notification",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	sender := newSender(cfg.Notification, zap.L())

	consumer.ConsumeLeaveNotifications(ctx, reader, sender, logger)

	logger.Info("consumer shutting down")
	return nil
}
