package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoResults is returned when the geocoder answered but found no address
// for the coordinates. Callers fall back to the raw coordinate string.
var ErrNoResults = fmt.Errorf("no address found for coordinates")

// Client is a reverse-geocoding client (Nominatim-style API).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ReverseGeocode resolves coordinates to a formatted address line.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "jsonv2")

	reqURL := strings.TrimSuffix(c.baseURL, "/") + "/reverse?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "findit-backend/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to reverse geocode: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result reverseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if result.Error != "" || result.DisplayName == "" {
		return "", ErrNoResults
	}

	return result.DisplayName, nil
}
