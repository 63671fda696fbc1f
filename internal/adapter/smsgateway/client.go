package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/krishisheba/agri-advisory/internal/domain"
	"github.com/krishisheba/agri-advisory/internal/observability"
)

// Client implements domain.AlertSender against the SMS gateway HTTP API.
// One SendAlert call is one outbound SMS to the requesting farmer.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an SMS gateway client.
func NewClient(baseURL, token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// sendRequest is the gateway's submit payload.
type sendRequest struct {
	Recipient string `json:"recipient"` // farmer identifier, resolved to MSISDN by the gateway
	Message   string `json:"message"`
	District  string `json:"district,omitempty"`
	Crop      string `json:"crop,omitempty"`
	Risk      string `json:"risk,omitempty"`
	Reference string `json:"reference,omitempty"` // bundle ID, echoed in delivery reports
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// SendAlert submits one critical alert to the gateway.
func (c *Client) SendAlert(ctx context.Context, alert domain.CriticalAlert) error {
	payload, err := json.Marshal(sendRequest{
		Recipient: alert.FarmerID,
		Message:   alert.Message,
		District:  alert.District,
		Crop:      alert.Crop,
		Risk:      string(alert.Risk),
		Reference: alert.BundleID,
	})
	if err != nil {
		return fmt.Errorf("encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.SMSAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.SMSRequests.WithLabelValues("error").Inc()
		return fmt.Errorf("sms gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		c.metrics.SMSRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms gateway error: status %d: %s", resp.StatusCode, body)
	}

	var gatewayResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		c.metrics.SMSRequests.WithLabelValues("error").Inc()
		return fmt.Errorf("decode sms response: %w", err)
	}

	c.metrics.SMSRequests.WithLabelValues("success").Inc()
	c.logger.Debug("sms alert submitted",
		"message_id", gatewayResp.MessageID,
		"farmer_id", alert.FarmerID,
		"crop", alert.Crop,
	)
	return nil
}
