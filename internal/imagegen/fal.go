package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// FalOptions configures the Fal.ai-style client.
type FalOptions struct {
	BaseURL      string
	Endpoint     string
	APIKey       string
	HTTPClient   *http.Client
	MaxBodyBytes int64 // 0 means no cap on the outbound payload
	MIMESource   MIMESource
}

// FalClient calls a Fal.ai-style generative endpoint with the uploaded photo
// embedded in the JSON body as a base64 data URL.
type FalClient struct {
	httpClient *http.Client
	baseURL    string
	endpoint   string
	token      string
	maxBody    int64
	mimeSource MIMESource
}

// NewFalClient builds a client. No call timeout is applied unless the injected
// http.Client carries one; the provider enforces its own bound.
func NewFalClient(opts FalOptions) *FalClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://fal.run"
	}
	endpoint := strings.Trim(opts.Endpoint, "/")
	if endpoint == "" {
		endpoint = "fal-ai/flux/dev/image-to-image"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	source := opts.MIMESource
	if source == "" {
		source = MIMEFromExtension
	}
	return &FalClient{
		httpClient: client,
		baseURL:    base,
		endpoint:   endpoint,
		token:      strings.TrimSpace(opts.APIKey),
		maxBody:    opts.MaxBodyBytes,
		mimeSource: source,
	}
}

type falRequest struct {
	Prompt    string `json:"prompt"`
	ImageURL  string `json:"image_url"`
	NumImages int    `json:"num_images"`
}

type falResp struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// TransformImage fulfils the Transformer interface with a single upstream
// call, no retries.
func (c *FalClient) TransformImage(ctx context.Context, img SourceImage, description string) (string, error) {
	if c == nil {
		return "", errors.New("fal client not configured")
	}
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return "", fmt.Errorf("fal: read source image: %w", err)
	}
	if c.maxBody > 0 && int64(len(data)) > c.maxBody {
		return "", fmt.Errorf("fal: source image exceeds outbound cap of %d bytes", c.maxBody)
	}

	payload := falRequest{
		Prompt:    BuildTransformationPrompt(description),
		ImageURL:  DataURL(c.mimeSource.Detect(img), data),
		NumImages: 1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/" + c.endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", &ProviderError{Provider: "fal", Status: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
	}
	var out falResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("fal: decode response: %w", err)
	}
	if len(out.Images) == 0 {
		return "", ErrNoImage
	}
	url := strings.TrimSpace(out.Images[0].URL)
	if url == "" {
		return "", ErrNoImage
	}
	return url, nil
}

// DataURL renders bytes as a data:<mime>;base64,<payload> string.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

var _ Transformer = (*FalClient)(nil)
