package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the label-model inference service. The model itself is a
// black box: bytes in, ranked labels out.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type annotateRequest struct {
	Image      string `json:"image"` // base64-encoded bytes
	MaxResults int    `json:"max_results,omitempty"`
}

type annotateResponse struct {
	Labels []Label `json:"labels"`
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AnnotateLabels sends the image for labeling and returns the labels in the
// order the model ranked them. An empty slice is a valid response.
func (c *Client) AnnotateLabels(ctx context.Context, image []byte) ([]Label, error) {
	reqBody := annotateRequest{
		Image:      base64.StdEncoding.EncodeToString(image),
		MaxResults: 10,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/images:annotate"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to annotate image: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result annotateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	return result.Labels, nil
}
