package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TimberService/pkg/tracing"
)

// WebhookTransport отправляет события POST-запросом на внешний URL
type WebhookTransport struct {
	url        string
	httpClient *http.Client
}

// NewWebhookTransport создает новый экземпляр webhook-транспорта
func NewWebhookTransport(url string, timeout time.Duration) *WebhookTransport {
	return &WebhookTransport{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *WebhookTransport) Send(ctx context.Context, msg *Message, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Id", msg.EventID)
	req.Header.Set("X-Event-Type", msg.EventType)
	for k, v := range tracing.InjectMap(ctx) {
		req.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Любой 2xx считается доставкой
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

func (t *WebhookTransport) Close() error {
	t.httpClient.CloseIdleConnections()
	return nil
}
