package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tajer/backend/internal/infrastructure/config"
)

// Message is an outgoing WhatsApp text message
type Message struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// Sender delivers customer notifications. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// WhatsAppClient sends messages through an HTTP WhatsApp gateway.
// Delivery is advisory: callers treat failures as log-and-continue.
type WhatsAppClient struct {
	cfg        config.WhatsAppConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWhatsAppClient creates a gateway-backed sender
func NewWhatsAppClient(cfg config.WhatsAppConfig, logger *zap.Logger) *WhatsAppClient {
	return &WhatsAppClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("whatsapp"),
	}
}

// Send posts the message to the gateway, retrying transient failures
func (c *WhatsAppClient) Send(ctx context.Context, msg Message) error {
	if !c.cfg.Enabled {
		c.logger.Debug("whatsapp disabled, dropping message", zap.String("to", msg.To))
		return nil
	}
	if msg.To == "" {
		return fmt.Errorf("whatsapp: recipient number is empty")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("whatsapp: failed to encode message: %w", err)
	}

	var lastErr error
	attempts := c.cfg.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		lastErr = c.post(ctx, payload)
		if lastErr == nil {
			c.logger.Info("whatsapp message sent", zap.String("to", msg.To))
			return nil
		}

		c.logger.Warn("whatsapp send attempt failed",
			zap.Int("attempt", attempt+1),
			zap.String("to", msg.To),
			zap.Error(lastErr),
		)
	}

	return fmt.Errorf("whatsapp: delivery failed after %d attempts: %w", attempts, lastErr)
}

func (c *WhatsAppClient) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// NopSender discards all messages. Used when notifications are disabled
// and in tests.
type NopSender struct{}

// Send implements Sender
func (NopSender) Send(ctx context.Context, msg Message) error {
	return nil
}

var (
	_ Sender = (*WhatsAppClient)(nil)
	_ Sender = NopSender{}
)
