package app

import (
	"database/sql"
	"net/http"
	"time"

	"go-leave/internal/config"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/notification"

	"go.uber.org/zap"
)

// newSender picks the WhatsApp gateway when one is configured and falls
// back to logging the messages.
func newSender(cfg config.NotificationConfig, logger *zap.Logger) *notification.Sender {
	var channel notification.Channel
	if cfg.WhatsAppAPIURL != "" {
		channel = notification.NewWhatsAppChannel(
			cfg.WhatsAppAPIURL,
			cfg.WhatsAppAPIToken,
			&http.Client{Timeout: 10 * time.Second},
		)
	} else {
		logger.Warn("WHATSAPP_API_URL not set, notifications will only be logged")
		channel = notification.NewLogChannel(logger)
	}

	return notification.NewSender(channel,
		notification.WithRetryPolicy(notification.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			BackoffBase: cfg.BackoffBase,
		}),
		notification.WithPhoneNormalizer(notification.PhoneNormalizer{
			CountryCode: cfg.DefaultCountryCode,
			LocalLength: cfg.LocalNumberLength,
		}),
		notification.WithLogger(logger),
	)
}

func newDispatcher(cfg config.NotificationConfig, sqlDB *sql.DB, logger *zap.Logger) notification.Dispatcher {
	if cfg.Mode == config.NotificationModeOutbox {
		logger.Info("notifications queued through the outbox")
		return notification.NewOutboxDispatcher(kafka.NewOutboxRepository(sqlDB), logger)
	}
	logger.Info("notifications sent directly")
	return notification.NewAsyncDispatcher(newSender(cfg, logger), logger)
}
