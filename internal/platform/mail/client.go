// Package mail sends transactional email through a template-based REST
// provider (ZeptoMail-compatible). Dispatch is asynchronous and
// best-effort: callers never block on delivery and never see an error.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendTimeout = 10 * time.Second

// templateRequest is the provider's template-send payload.
type templateRequest struct {
	TemplateKey string         `json:"template_key"`
	From        emailAddress   `json:"from"`
	To          []recipient    `json:"to"`
	MergeInfo   map[string]any `json:"merge_info"`
}

type emailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type recipient struct {
	EmailAddress emailAddress `json:"email_address"`
}

// Client posts template sends to the provider API.
type Client struct {
	apiURL      string
	apiToken    string
	fromAddress string
	fromName    string
	httpClient  *http.Client
}

// NewClient creates a provider client. An empty apiURL or apiToken leaves
// the client in log-only mode; SendTemplate then reports a config error
// that the dispatcher logs.
func NewClient(apiURL, apiToken, fromAddress, fromName string) *Client {
	return &Client{
		apiURL:      apiURL,
		apiToken:    apiToken,
		fromAddress: fromAddress,
		fromName:    fromName,
		httpClient:  &http.Client{Timeout: sendTimeout},
	}
}

// SendTemplate posts one template send with the given merge payload.
func (c *Client) SendTemplate(ctx context.Context, templateKey, toAddress, toName string, mergeInfo map[string]any) error {
	if c.apiURL == "" || c.apiToken == "" {
		return fmt.Errorf("mail provider not configured")
	}
	if templateKey == "" {
		return fmt.Errorf("mail template key not configured")
	}

	payload := templateRequest{
		TemplateKey: templateKey,
		From:        emailAddress{Address: c.fromAddress, Name: c.fromName},
		To:          []recipient{{EmailAddress: emailAddress{Address: toAddress, Name: toName}}},
		MergeInfo:   mergeInfo,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
