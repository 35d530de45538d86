package wavespeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.wavespeed.ai"

	qwenEditEndpoint = "/api/v3/wavespeed-ai/qwen-image/edit-plus"
	wanT2IEndpoint   = "/api/v3/wavespeed-ai/wan-2.2/text-to-image"

	// The edit endpoint rejects more than three input images.
	maxInputImages = 3
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// envelope is the Wavespeed response wrapper around every prediction.
type envelope struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    Prediction `json:"data"`
}

// Prediction is one completed generation: the model that ran and its outputs
// as data URIs.
type Prediction struct {
	ID              string   `json:"id"`
	Model           string   `json:"model"`
	Outputs         []string `json:"outputs"`
	HasNSFWContents []bool   `json:"has_nsfw_contents,omitempty"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

type editRequest struct {
	EnableBase64Output bool     `json:"enable_base64_output"`
	EnableSyncMode     bool     `json:"enable_sync_mode"`
	Images             []string `json:"images"`
	OutputFormat       string   `json:"output_format"`
	Prompt             string   `json:"prompt"`
	Seed               int64    `json:"seed"`
	Size               string   `json:"size"`
}

type textToImageRequest struct {
	EnableBase64Output bool   `json:"enable_base64_output"`
	EnableSyncMode     bool   `json:"enable_sync_mode"`
	OutputFormat       string `json:"output_format"`
	Prompt             string `json:"prompt"`
	AspectRatio        string `json:"aspect_ratio"`
}

// EditOptions drive the Qwen image-edit model: 1-3 input images, pixel size
// as "W*H", seed of -1 for random.
type EditOptions struct {
	APIKey       string
	Prompt       string
	Images       []string // data URIs
	Size         string
	Seed         int64
	OutputFormat string
}

// TextToImageOptions drive the Wan 2.2 text-to-image model, which takes a
// named aspect ratio and no caller-controlled seed.
type TextToImageOptions struct {
	APIKey       string
	Prompt       string
	AspectRatio  string
	OutputFormat string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// EditImage runs the Qwen edit model synchronously and returns the prediction
// with outputs normalized to data URIs. Failing responses, non-200 envelope
// codes, and empty output lists are all errors; nothing is persisted here.
func (c *Client) EditImage(ctx context.Context, opts EditOptions) (*Prediction, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if len(opts.Images) == 0 {
		return nil, fmt.Errorf("at least one input image is required")
	}
	if len(opts.Images) > maxInputImages {
		return nil, fmt.Errorf("at most %d input images are allowed", maxInputImages)
	}

	size := opts.Size
	if size == "" {
		size = "1536*1536"
	}
	format := opts.OutputFormat
	if format == "" {
		format = "jpeg"
	}
	seed := opts.Seed
	if seed == 0 {
		seed = -1
	}

	req := editRequest{
		EnableBase64Output: true,
		EnableSyncMode:     true,
		Images:             opts.Images,
		OutputFormat:       format,
		Prompt:             opts.Prompt,
		Seed:               seed,
		Size:               size,
	}
	return c.predict(ctx, qwenEditEndpoint, opts.APIKey, req, format)
}

// TextToImage runs the Wan 2.2 text-to-image model synchronously.
func (c *Client) TextToImage(ctx context.Context, opts TextToImageOptions) (*Prediction, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	aspect := opts.AspectRatio
	if aspect == "" {
		aspect = "1:1"
	}
	format := opts.OutputFormat
	if format == "" {
		format = "jpeg"
	}

	req := textToImageRequest{
		EnableBase64Output: true,
		EnableSyncMode:     true,
		OutputFormat:       format,
		Prompt:             opts.Prompt,
		AspectRatio:        aspect,
	}
	return c.predict(ctx, wanT2IEndpoint, opts.APIKey, req, format)
}

func (c *Client) predict(ctx context.Context, endpoint, apiKey string, body any, outputFormat string) (*Prediction, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + endpoint
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation request failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result envelope
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}

	if result.Code != http.StatusOK {
		msg := result.Message
		if msg == "" {
			msg = "api request failed"
		}
		return nil, fmt.Errorf("generation rejected: %s (code %d)", msg, result.Code)
	}

	if len(result.Data.Outputs) == 0 {
		return nil, fmt.Errorf("generation returned no outputs, body: %s", string(respBody))
	}

	for i, output := range result.Data.Outputs {
		result.Data.Outputs[i] = ToDataURI(output, outputFormat)
	}

	return &result.Data, nil
}

// ToDataURI wraps a raw base64 payload in a data URI; payloads that already
// are data URIs pass through unchanged.
func ToDataURI(output, outputFormat string) string {
	if strings.HasPrefix(output, "data:") {
		return output
	}
	return "data:image/" + outputFormat + ";base64," + output
}

// RetryWithBackoff executes a function with exponential backoff retry logic.
func (c *Client) RetryWithBackoff(fn func() error, maxRetries int) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(backoffs) {
			time.Sleep(backoffs[i])
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
