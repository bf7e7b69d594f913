package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-leave/internal/notification"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type scriptedOutcome struct {
	ok  bool
	err error
}

// scriptedChannel replays outcomes in order and repeats the last one.
type scriptedChannel struct {
	outcomes []scriptedOutcome
	calls    int
	lastTo   string
	panicMsg string
}

func (c *scriptedChannel) Deliver(ctx context.Context, phone, message string, typ notification.Type) (bool, error) {
	if c.panicMsg != "" {
		panic(c.panicMsg)
	}
	c.calls++
	c.lastTo = phone
	i := c.calls - 1
	if i >= len(c.outcomes) {
		i = len(c.outcomes) - 1
	}
	return c.outcomes[i].ok, c.outcomes[i].err
}

func newTestSender(ch notification.Channel) *notification.Sender {
	return notification.NewSender(ch,
		notification.WithLogger(zap.NewNop()),
		notification.WithSleeper(func(ctx context.Context, d time.Duration) error { return nil }),
	)
}

func TestSender_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("always soft-failing destination returns false after exactly 3 attempts", func(t *testing.T) {
		ch := &scriptedChannel{outcomes: []scriptedOutcome{{ok: false}}}

		ok := newTestSender(ch).Send(ctx, "555-123-4567", "hello", notification.TypeNewRequest)

		assert.False(t, ok)
		assert.Equal(t, 3, ch.calls)
	})

	for n := 1; n <= 3; n++ {
		n := n
		t.Run(fmt.Sprintf("succeeds on attempt %d", n), func(t *testing.T) {
			outcomes := make([]scriptedOutcome, 0, n)
			for i := 1; i < n; i++ {
				outcomes = append(outcomes, scriptedOutcome{ok: false})
			}
			outcomes = append(outcomes, scriptedOutcome{ok: true})
			ch := &scriptedChannel{outcomes: outcomes}

			ok := newTestSender(ch).Send(ctx, "5551234567", "hello", notification.TypeStatusUpdate)

			assert.True(t, ok)
			assert.Equal(t, n, ch.calls)
		})
	}

	t.Run("transport errors are swallowed and retried", func(t *testing.T) {
		ch := &scriptedChannel{outcomes: []scriptedOutcome{
			{err: errors.New("dial tcp: refused")},
			{ok: true},
		}}

		ok := newTestSender(ch).Send(ctx, "5551234567", "hello", notification.TypeNewRequest)

		assert.True(t, ok)
		assert.Equal(t, 2, ch.calls)
	})

	t.Run("blank input is rejected without any attempt", func(t *testing.T) {
		ch := &scriptedChannel{outcomes: []scriptedOutcome{{ok: true}}}
		s := newTestSender(ch)

		assert.False(t, s.Send(ctx, "   ", "hello", notification.TypeNewRequest))
		assert.False(t, s.Send(ctx, "5551234567", " \n", notification.TypeNewRequest))
		assert.False(t, s.Send(ctx, "n/a", "hello", notification.TypeNewRequest))
		assert.Zero(t, ch.calls)
	})

	t.Run("phone number is normalized before delivery", func(t *testing.T) {
		ch := &scriptedChannel{outcomes: []scriptedOutcome{{ok: true}}}

		newTestSender(ch).Send(ctx, "(555) 123-4567", "hello", notification.TypeNewRequest)

		assert.Equal(t, "15551234567", ch.lastTo)
	})

	t.Run("custom retry policy", func(t *testing.T) {
		ch := &scriptedChannel{outcomes: []scriptedOutcome{{ok: false}}}
		s := notification.NewSender(ch,
			notification.WithLogger(zap.NewNop()),
			notification.WithRetryPolicy(notification.RetryPolicy{MaxAttempts: 5}),
		)

		assert.False(t, s.Send(ctx, "5551234567", "hello", notification.TypeNewRequest))
		assert.Equal(t, 5, ch.calls)
	})

	t.Run("panicking channel resolves to false", func(t *testing.T) {
		ch := &scriptedChannel{panicMsg: "boom"}

		assert.NotPanics(t, func() {
			ok := newTestSender(ch).Send(ctx, "5551234567", "hello", notification.TypeNewRequest)
			assert.False(t, ok)
		})
	})
}

func TestWhatsAppChannel_Deliver(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "15551234567", body["to"])
			assert.Equal(t, "whatsapp", body["messaging_product"])
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ch := notification.NewWhatsAppChannel(srv.URL, "token-1", srv.Client())
		ok, err := ch.Deliver(ctx, "15551234567", "hello", notification.TypeNewRequest)

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("provider rejection is a soft failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		ch := notification.NewWhatsAppChannel(srv.URL, "", srv.Client())
		ok, err := ch.Deliver(ctx, "15551234567", "hello", notification.TypeNewRequest)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unreachable provider is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		ch := notification.NewWhatsAppChannel(url, "", nil)
		ok, err := ch.Deliver(ctx, "15551234567", "hello", notification.TypeNewRequest)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}
