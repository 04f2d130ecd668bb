package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tricoterie/internal/entities"
)

// Mailer dispatches a reservation through the transactional template API.
type Mailer interface {
	SendReservation(ctx context.Context, serviceID, templateID string, params entities.ReservationEmailParams) error
}

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSClient calls the EmailJS REST API the same way the site's form used
// to, with the account public key as user_id.
type EmailJSClient struct {
	httpClient *http.Client
	endpoint   string
	publicKey  string
}

func NewEmailJSClient(publicKey string) *EmailJSClient {
	return &EmailJSClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   emailJSEndpoint,
		publicKey:  publicKey,
	}
}

func (c *EmailJSClient) SendReservation(ctx context.Context, serviceID, templateID string, params entities.ReservationEmailParams) error {
	body := struct {
		ServiceID      string                          `json:"service_id"`
		TemplateID     string                          `json:"template_id"`
		UserID         string                          `json:"user_id"`
		TemplateParams entities.ReservationEmailParams `json:"template_params"`
	}{
		ServiceID:      serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("emailjs: encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("emailjs: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("emailjs: send returned status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
