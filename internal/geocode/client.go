package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ridewatch/internal/model"
)

// Client resolves free-text addresses against a Nominatim-compatible
// geocoding service. One request per call; no caching, no retries.
type Client struct {
	baseURL string
	country string
	client  *http.Client
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewClient builds a geocoding client. country is an optional comma-separated
// countrycodes filter ("de"); empty means unrestricted.
func NewClient(baseURL, country string) *Client {
	return &Client{
		baseURL: baseURL,
		country: country,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Resolve returns the coordinates of the best match for address, or nil when
// the address is unknown or the service is unavailable. Callers must treat
// both cases the same; transport failures are logged here and deliberately
// not surfaced.
func (c *Client) Resolve(ctx context.Context, address string) *model.Coordinates {
	coords, err := c.lookup(ctx, address)
	if err != nil {
		slog.Error("geocoding failed", "address", address, "error", err)
		return nil
	}
	return coords
}

func (c *Client) lookup(ctx context.Context, address string) (*model.Coordinates, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	if c.country != "" {
		params.Set("countrycodes", c.country)
	}

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "ridewatch/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return &model.Coordinates{Latitude: lat, Longitude: lon}, nil
}
