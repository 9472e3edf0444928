package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrGatewayURLRequired is returned when the gateway base URL is missing.
	ErrGatewayURLRequired = errors.New("sms gateway url is required")
	// ErrNoRecipient is returned when Message.To is empty.
	ErrNoRecipient = errors.New("no recipient provided")
	// ErrNoSender is returned when both Message.From and the configured default From are empty.
	ErrNoSender = errors.New("no sender provided")
)

// HTTPGateway is a Sender implementation that posts JSON to a vendor HTTP
// API. Twilio-style gateways and in-house relays both fit this shape.
type HTTPGateway struct {
	url         string
	apiKey      string
	defaultFrom string
	client      *http.Client
}

// HTTPGatewayConfig configures the HTTP gateway implementation.
type HTTPGatewayConfig struct {
	// URL is the gateway send endpoint.
	URL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// From is the default sender number when Message.From is empty.
	From string
	// Timeout bounds each send request; zero means 10 seconds.
	Timeout time.Duration
}

// NewHTTPGateway constructs an HTTP gateway sender.
func NewHTTPGateway(cfg HTTPGatewayConfig) (*HTTPGateway, error) {
	if cfg.URL == "" {
		return nil, ErrGatewayURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPGateway{
		url:         cfg.URL,
		apiKey:      cfg.APIKey,
		defaultFrom: cfg.From,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

type gatewayPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// Send delivers a message through the gateway.
func (g *HTTPGateway) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	from := msg.From
	if from == "" {
		from = g.defaultFrom
	}
	if from == "" {
		return ErrNoSender
	}

	payload, err := json.Marshal(gatewayPayload{From: from, To: msg.To, Body: msg.Body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a short error snippet; gateways return small JSON bodies.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, snippet)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (g *HTTPGateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
