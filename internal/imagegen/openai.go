package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OpenAIOptions configures the image-edit client.
type OpenAIOptions struct {
	BaseURL      string
	APIKey       string
	HTTPClient   *http.Client
	Timeout      time.Duration
	MaxBodyBytes int64 // 0 means no cap on the outbound payload
	MIMESource   MIMESource
}

// OpenAIClient calls the OpenAI-style /images/edits endpoint with a multipart
// form carrying the uploaded photo and the transformation prompt.
type OpenAIClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxBody    int64
	mimeSource MIMESource
}

// NewOpenAIClient builds a client with a 120 second call timeout unless a
// custom http.Client is injected.
func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	source := opts.MIMESource
	if source == "" {
		source = MIMEFromExtension
	}
	return &OpenAIClient{
		httpClient: client,
		baseURL:    base,
		token:      strings.TrimSpace(opts.APIKey),
		maxBody:    opts.MaxBodyBytes,
		mimeSource: source,
	}
}

type openAIResp struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// TransformImage fulfils the Transformer interface with a single upstream
// call, no retries.
func (c *OpenAIClient) TransformImage(ctx context.Context, img SourceImage, description string) (string, error) {
	if c == nil {
		return "", errors.New("openai client not configured")
	}
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return "", fmt.Errorf("openai: read source image: %w", err)
	}
	if c.maxBody > 0 && int64(len(data)) > c.maxBody {
		return "", fmt.Errorf("openai: source image exceeds outbound cap of %d bytes", c.maxBody)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	filename := img.OriginalName
	if filename == "" {
		filename = filepath.Base(img.Path)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", c.mimeSource.Detect(img))
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("openai: build multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("openai: build multipart: %w", err)
	}
	fields := map[string]string{
		"prompt":          BuildTransformationPrompt(description),
		"n":               "1",
		"size":            "1024x1024",
		"response_format": "url",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("openai: build multipart: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("openai: build multipart: %w", err)
	}

	endpoint := c.baseURL + "/images/edits"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var out openAIResp
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", &ProviderError{Provider: "openai", Status: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
		}
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		detail := ""
		if out.Error != nil {
			detail = out.Error.Message
		}
		return "", &ProviderError{Provider: "openai", Status: resp.StatusCode, Detail: detail}
	}
	if len(out.Data) == 0 {
		return "", ErrNoImage
	}
	url := strings.TrimSpace(out.Data[0].URL)
	if url == "" {
		return "", ErrNoImage
	}
	return url, nil
}

var _ Transformer = (*OpenAIClient)(nil)
