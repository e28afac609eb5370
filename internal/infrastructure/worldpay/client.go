package worldpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopfront/payments-worldpay/internal/domain"
)

// SandboxEndpoint is the demo environment of the JSON payments API.
const SandboxEndpoint = "https://gwapi.demo.securenet.com/api/"

// Client performs one request/response round trip against the JSON
// payments API. It issues exactly one outbound HTTP call per invocation
// and never retries.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Post serializes the request, signs it with the merchant credentials and
// returns the parsed gateway reply. A reply is returned for any HTTP status
// as long as the body decodes; the success field decides the outcome. On
// transport failure or a malformed body the raw detail is logged and
// ErrNoResponse is returned.
func (c *Client) Post(ctx context.Context, settings *domain.Settings, req Request) (*PaymentResponse, error) {
	base := settings.EndPoint
	if settings.UseSandbox {
		base = SandboxEndpoint
	}
	url := strings.TrimSuffix(base, "/") + req.Path()

	req.stampDeveloper(DeveloperApplication{
		DeveloperID: settings.DeveloperID,
		Version:     settings.DeveloperVersion,
	})

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", req.Path(), err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", req.Path(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(settings.SecureNetID, settings.SecureKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("worldpay request failed",
			"path", req.Path(),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("worldpay response read failed",
			"path", req.Path(),
			"status", resp.StatusCode,
			"error", err,
		)
		return nil, fmt.Errorf("%w: reading body: %v", ErrNoResponse, err)
	}

	var out PaymentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error("worldpay returned malformed response",
			"path", req.Path(),
			"status", resp.StatusCode,
			"body", string(raw),
			"error", err,
		)
		return nil, fmt.Errorf("%w: decoding status %d body: %v", ErrNoResponse, resp.StatusCode, err)
	}

	return &out, nil
}
