package imagegen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ClipDropClient talks to the ClipDrop text-to-image endpoint. The vendor
// has no Go SDK; the API takes a multipart "prompt" field and returns raw
// PNG bytes.
type ClipDropClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClipDropClient(apiKey, baseURL string) *ClipDropClient {
	if baseURL == "" {
		baseURL = "https://clipdrop-api.co"
	}
	return &ClipDropClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Generate renders an image for the prompt and returns the PNG bytes.
func (c *ClipDropClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/text-to-image/v1", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("image generation failed with status %d: %s", resp.StatusCode, payload)
	}

	return io.ReadAll(resp.Body)
}
