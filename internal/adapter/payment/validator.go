package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"
)

// TooManyRequestsError represents rate limiting signal from the payment gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Validator checks whether a normalized card number may be charged.
type Validator interface {
	Validate(ctx context.Context, cardNumber string) (bool, error)
}

// AllowList accepts only test cards made of sixteen identical digits.
type AllowList struct{}

// Validate reports whether cardNumber is one of 0000000000000000..9999999999999999.
func (AllowList) Validate(_ context.Context, cardNumber string) (bool, error) {
	if len(cardNumber) != 16 {
		return false, nil
	}
	first := cardNumber[0]
	if first < '0' || first > '9' {
		return false, nil
	}
	for i := 1; i < len(cardNumber); i++ {
		if cardNumber[i] != first {
			return false, nil
		}
	}
	return true, nil
}

// HTTPClient validates cards against a remote payment gateway.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type validateRequest struct {
	CardNumber string `json:"cardNumber"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// NewHTTPClient creates HTTP payment client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Validate posts the card number to the gateway and returns its verdict.
func (c *HTTPClient) Validate(ctx context.Context, cardNumber string) (bool, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/payments/validate")

	payload, err := json.Marshal(validateRequest{CardNumber: cardNumber})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data validateResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return false, fmt.Errorf("decode payment response: %w", err)
		}
		return data.Valid, nil
	case http.StatusTooManyRequests:
		return false, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment validation failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return false, fmt.Errorf("payment gateway error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
