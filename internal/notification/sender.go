package notification

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type Sender struct {
	channel Channel
	policy  RetryPolicy
	phone   PhoneNormalizer
	sleep   Sleeper
	logger  *zap.Logger
}

type SenderOption func(*Sender)

func WithRetryPolicy(p RetryPolicy) SenderOption {
	return func(s *Sender) { s.policy = p }
}

func WithPhoneNormalizer(p PhoneNormalizer) SenderOption {
	return func(s *Sender) { s.phone = p }
}

func WithSleeper(fn Sleeper) SenderOption {
	return func(s *Sender) { s.sleep = fn }
}

func WithLogger(l *zap.Logger) SenderOption {
	return func(s *Sender) {
		if l != nil {
			s.logger = l.Named("notification.sender")
		}
	}
}

func NewSender(channel Channel, opts ...SenderOption) *Sender {
	s := &Sender{
		channel: channel,
		policy:  DefaultRetryPolicy(),
		phone:   PhoneNormalizer{CountryCode: "1", LocalLength: 10},
		sleep:   SleepContext,
		logger:  zap.L().Named("notification.sender"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send reports whether the message was delivered. It never returns an error
// and never panics past its boundary.
func (s *Sender) Send(ctx context.Context, phoneNumber, message string, typ Type) (delivered bool) {
	if strings.TrimSpace(phoneNumber) == "" || strings.TrimSpace(message) == "" {
		s.logger.Warn("notification skipped: empty phone number or message", zap.String("type", string(typ)))
		return false
	}

	to := s.phone.Normalize(phoneNumber)
	if to == "" {
		s.logger.Warn("notification skipped: phone number has no digits", zap.String("type", string(typ)))
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("notification channel panicked", zap.Any("panic", r), zap.String("to", to))
			delivered = false
		}
	}()

	res := Deliver(ctx, s.policy, s.sleep, func(ctx context.Context, attempt int) (bool, error) {
		ok, err := s.channel.Deliver(ctx, to, message, typ)
		if err != nil {
			s.logger.Warn("notification attempt failed",
				zap.String("to", to),
				zap.String("type", string(typ)),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return false, err
		}
		if !ok {
			s.logger.Warn("notification attempt rejected",
				zap.String("to", to),
				zap.String("type", string(typ)),
				zap.Int("attempt", attempt),
			)
		}
		return ok, nil
	})

	if res.Outcome == Delivered {
		s.logger.Info("notification sent",
			zap.String("to", to),
			zap.String("type", string(typ)),
			zap.Int("attempts", res.Attempts),
		)
		return true
	}

	s.logger.Error("notification exhausted retries",
		zap.String("to", to),
		zap.String("type", string(typ)),
		zap.Int("attempts", res.Attempts),
		zap.Error(res.LastErr),
	)
	return false
}
