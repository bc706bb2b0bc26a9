// Package client provides the HTTP client for the upstream availability API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"booking_portal_backend/internal/availability/transport"
	"booking_portal_backend/platform/logger"
)

// Client is the HTTP client for the provider availability API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a new availability API client.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		log:        log,
	}
}

// GetSlots fetches the open slots for a provider/service/date combination.
// A 404 means the provider publishes no calendar for that day and is not an
// error; the caller decides whether to fall back.
func (c *Client) GetSlots(ctx context.Context, query transport.SlotQuery) ([]transport.TimeSlot, error) {
	params := url.Values{}
	params.Set("providerId", strconv.FormatInt(query.ProviderID, 10))
	params.Set("serviceId", strconv.FormatInt(query.ServiceID, 10))
	params.Set("date", query.Date)
	if query.DurationHours > 0 {
		params.Set("durationHours", strconv.FormatFloat(query.DurationHours, 'f', -1, 64))
	}

	reqURL := fmt.Sprintf("%s/v1/slots?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("availability request failed", "error", err, "url", reqURL)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to decode
	case http.StatusNotFound:
		c.log.Debug("availability no calendar published", "provider", query.ProviderID, "date", query.Date)
		return nil, nil
	default:
		c.log.Error("availability upstream error", "status", resp.StatusCode, "url", reqURL)
		return nil, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var apiSlots []apiSlot
	if err := json.NewDecoder(resp.Body).Decode(&apiSlots); err != nil {
		c.log.Error("availability decode failed", "error", err)
		return nil, fmt.Errorf("decode response: %w", err)
	}

	slots := make([]transport.TimeSlot, 0, len(apiSlots))
	for _, api := range apiSlots {
		slots = append(slots, api.toTransport(query.Date))
	}

	return slots, nil
}

// Ping checks if the availability API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/ping", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping failed: status %d", resp.StatusCode)
	}

	return nil
}

// apiSlot is the raw upstream payload.
type apiSlot struct {
	Date      *string `json:"date"`
	StartTime string  `json:"start_time"`
	Label     *string `json:"label"`
	Popular   *bool   `json:"popular"`
}

func (a *apiSlot) toTransport(queryDate string) transport.TimeSlot {
	slot := transport.TimeSlot{
		Date: queryDate,
		Time: a.StartTime,
	}
	if a.Date != nil && *a.Date != "" {
		slot.Date = *a.Date
	}
	if a.Label != nil {
		slot.FormattedTime = *a.Label
	}
	if slot.FormattedTime == "" {
		slot.FormattedTime = slot.Time
	}
	if a.Popular != nil {
		slot.IsPopular = *a.Popular
	}
	return slot
}
