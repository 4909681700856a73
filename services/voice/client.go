package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AssistantClient is the transport to the external voice-assistant service.
// The audio pipeline itself lives entirely on the assistant's side; this
// client only starts and stops calls.
type AssistantClient interface {
	StartCall(ctx context.Context, assistantID string) (string, error)
	StopCall(ctx context.Context, callID string) error
}

// RestAssistantClient talks to a Vapi-style REST API.
type RestAssistantClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewRestAssistantClient(baseURL, apiKey string) *RestAssistantClient {
	return &RestAssistantClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type startCallRequest struct {
	AssistantID string `json:"assistantId"`
}

type startCallResponse struct {
	ID string `json:"id"`
}

// StartCall issues the external start request and returns the call handle.
func (c *RestAssistantClient) StartCall(ctx context.Context, assistantID string) (string, error) {
	body, err := json.Marshal(startCallRequest{AssistantID: assistantID})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/call", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant start request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("assistant start request returned status %d", resp.StatusCode)
	}

	var out startCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode assistant start response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("assistant start response missing call id")
	}
	return out.ID, nil
}

// StopCall issues the external stop request.
func (c *RestAssistantClient) StopCall(ctx context.Context, callID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/call/"+callID, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("assistant stop request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("assistant stop request returned status %d", resp.StatusCode)
	}
	return nil
}
