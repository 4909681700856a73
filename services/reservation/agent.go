package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"routed/models"
)

// RestAgentClient posts batch requests to the reservation agent's HTTP
// endpoint.
type RestAgentClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewRestAgentClient(baseURL string) *RestAgentClient {
	return &RestAgentClient{
		BaseURL: baseURL,
		// Agent runs happen in real time against restaurant systems; give
		// them room before timing out.
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// rawResult tolerates both flat and nested restaurant-name shapes.
type rawResult struct {
	RestaurantName string `json:"restaurant_name"`
	Restaurant     *struct {
		Name string `json:"name"`
	} `json:"restaurant"`
	Location              string `json:"location"`
	Status                string `json:"status"`
	ConfirmationNumber    string `json:"confirmation_number"`
	PhoneForManualBooking string `json:"phone_for_manual_booking"`
	Error                 string `json:"error"`
}

func (r rawResult) normalize() models.ReservationResult {
	name := r.RestaurantName
	if name == "" && r.Restaurant != nil {
		name = r.Restaurant.Name
	}
	return models.ReservationResult{
		RestaurantName:        name,
		Location:              r.Location,
		Status:                r.Status,
		ConfirmationNumber:    r.ConfirmationNumber,
		PhoneForManualBooking: r.PhoneForManualBooking,
		Error:                 r.Error,
	}
}

// SubmitBatch forwards the request and normalizes the reply, which the agent
// returns either as an array or as a single object.
func (c *RestAgentClient) SubmitBatch(ctx context.Context, req models.BatchReservationRequest) ([]models.ReservationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/batch_reserve", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("reservation agent request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("reservation agent returned status %d", resp.StatusCode)
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode reservation agent response: %w", err)
	}
	return normalizeResults(payload)
}

// normalizeResults accepts an array or a single object and yields a slice.
func normalizeResults(payload json.RawMessage) ([]models.ReservationResult, error) {
	var raws []rawResult
	if err := json.Unmarshal(payload, &raws); err != nil {
		var single rawResult
		if err := json.Unmarshal(payload, &single); err != nil {
			return nil, fmt.Errorf("unrecognized reservation agent response shape")
		}
		raws = []rawResult{single}
	}

	results := make([]models.ReservationResult, len(raws))
	for i, r := range raws {
		results[i] = r.normalize()
	}
	return results, nil
}
