package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Channel is the external transport behind the Sender. A (false, nil) return
// means the provider answered but did not accept the message.
type Channel interface {
	Deliver(ctx context.Context, phoneNumber, message string, typ Type) (bool, error)
}

type whatsAppChannel struct {
	client *http.Client
	url    string
	token  string
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppPayload struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

// NewWhatsAppChannel posts text messages to a WhatsApp Business style
// messages endpoint.
func NewWhatsAppChannel(url, token string, client *http.Client) Channel {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &whatsAppChannel{client: client, url: url, token: token}
}

func (c *whatsAppChannel) Deliver(ctx context.Context, phoneNumber, message string, _ Type) (bool, error) {
	body, err := json.Marshal(whatsAppPayload{
		MessagingProduct: "whatsapp",
		To:               phoneNumber,
		Type:             "text",
		Text:             whatsAppText{Body: message},
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("whatsapp request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

type logChannel struct {
	logger *zap.Logger
}

// NewLogChannel writes messages to the log instead of sending them. Used when
// no provider URL is configured.
func NewLogChannel(logger *zap.Logger) Channel {
	if logger == nil {
		logger = zap.L()
	}
	return &logChannel{logger: logger.Named("notification.log_channel")}
}

func (c *logChannel) Deliver(_ context.Context, phoneNumber, message string, typ Type) (bool, error) {
	c.logger.Info("notification",
		zap.String("phone_number", phoneNumber),
		zap.String("type", string(typ)),
		zap.String("message", message),
	)
	return true, nil
}
