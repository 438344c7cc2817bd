package enquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"edupath/models"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// ErrUnauthorized signals a 401-class response from the upstream API; the
// caller redirects the user to login rather than retrying.
var ErrUnauthorized = errors.New("enquiry API rejected the bearer token")

// API is the slice of the upstream enquiry/email service the wizard consumes.
type API interface {
	SendOTP(ctx context.Context, email, institutionName, mobile string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	CreateCareerEnquiry(ctx context.Context, enq models.CareerEnquiry) (*models.BookingOrder, error)
	SendCounselingConfirmation(ctx context.Context, mail models.ConfirmationEmail) error
}

// Client is a thin REST client for the upstream enquiry API. Every request
// carries the configured bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an enquiry API client.
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type orderResponse struct {
	Data models.BookingOrder `json:"data"`
}

// SendOTP asks the upstream service to email a one-time password.
func (c *Client) SendOTP(ctx context.Context, email, institutionName, mobile string) (string, error) {
	payload := map[string]string{
		"email":           email,
		"institutionName": institutionName,
		"mobile":          mobile,
	}
	var resp messageResponse
	if err := c.post(ctx, "/email/sendOTP", payload, &resp); err != nil {
		return "", fmt.Errorf("failed to send OTP: %w", err)
	}
	return resp.Message, nil
}

// VerifyOTP checks the OTP the user typed against the upstream record.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	payload := map[string]string{
		"email": email,
		"otp":   otp,
	}
	var resp messageResponse
	if err := c.post(ctx, "/email/verifyOTP", payload, &resp); err != nil {
		return fmt.Errorf("failed to verify OTP: %w", err)
	}
	return nil
}

// CreateCareerEnquiry submits the booking snapshot and returns the payment
// order the checkout gateway consumes.
func (c *Client) CreateCareerEnquiry(ctx context.Context, enq models.CareerEnquiry) (*models.BookingOrder, error) {
	var resp orderResponse
	if err := c.post(ctx, "/enquiry/career", enq, &resp); err != nil {
		return nil, fmt.Errorf("failed to create career enquiry: %w", err)
	}
	if resp.Data.OrderID == "" {
		return nil, fmt.Errorf("enquiry API returned no order")
	}
	return &resp.Data, nil
}

// SendCounselingConfirmation fires the post-payment confirmation email.
// Callers treat failures as best-effort.
func (c *Client) SendCounselingConfirmation(ctx context.Context, mail models.ConfirmationEmail) error {
	var resp messageResponse
	if err := c.post(ctx, "/email/send-career-counseling", mail, &resp); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("enquiry API error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s: %s", path, apiErr.Message)
		}
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}
