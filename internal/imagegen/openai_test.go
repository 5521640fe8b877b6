package imagegen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeSourceImage(t *testing.T, name string, data []byte) SourceImage {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write source image: %v", err)
	}
	return SourceImage{Path: path, OriginalName: name, Size: int64(len(data))}
}

func TestOpenAIClientTransformImage(t *testing.T) {
	pngBytes := []byte{0x89, 0x50, 0x4e, 0x47}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/edits" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("n"); got != "1" {
			t.Fatalf("n mismatch: %s", got)
		}
		if got := r.FormValue("size"); got != "1024x1024" {
			t.Fatalf("size mismatch: %s", got)
		}
		if got := r.FormValue("response_format"); got != "url" {
			t.Fatalf("response_format mismatch: %s", got)
		}
		if prompt := r.FormValue("prompt"); !strings.Contains(prompt, "lean and muscular") {
			t.Fatalf("prompt missing description: %q", prompt)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image field missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "photo.png" {
			t.Fatalf("filename mismatch: %s", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Fatalf("content type mismatch: %s", ct)
		}
		sent, _ := io.ReadAll(file)
		if string(sent) != string(pngBytes) {
			t.Fatalf("image bytes mismatch: %v", sent)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": "https://example.com/out.png"}},
		})
	}))
	defer ts.Close()

	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: ts.URL})
	img := writeSourceImage(t, "photo.png", pngBytes)
	got, err := client.TransformImage(context.Background(), img, "lean and muscular")
	if err != nil {
		t.Fatalf("TransformImage error: %v", err)
	}
	if got != "https://example.com/out.png" {
		t.Fatalf("unexpected url: %s", got)
	}
}

func TestOpenAIClientEmptyDataIsErrNoImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer ts.Close()

	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: ts.URL})
	img := writeSourceImage(t, "photo.jpg", []byte("jpeg"))
	_, err := client.TransformImage(context.Background(), img, "toned")
	if err != ErrNoImage {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestOpenAIClientProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "invalid image", "type": "invalid_request_error"},
		})
	}))
	defer ts.Close()

	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: ts.URL})
	img := writeSourceImage(t, "photo.jpg", []byte("jpeg"))
	_, err := client.TransformImage(context.Background(), img, "toned")
	provErr, ok := err.(*ProviderError)
	if !ok {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if provErr.Status != http.StatusBadRequest || provErr.Detail != "invalid image" {
		t.Fatalf("unexpected provider error: %+v", provErr)
	}
}

func TestOpenAIClientTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: ts.URL, Timeout: 20 * time.Millisecond})
	img := writeSourceImage(t, "photo.jpg", []byte("jpeg"))
	_, err := client.TransformImage(context.Background(), img, "toned")
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestOpenAIClientOutboundCap(t *testing.T) {
	client := NewOpenAIClient(OpenAIOptions{APIKey: "test-key", BaseURL: "http://unused", MaxBodyBytes: 2})
	img := writeSourceImage(t, "photo.jpg", []byte("bigger than two"))
	if _, err := client.TransformImage(context.Background(), img, "toned"); err == nil {
		t.Fatalf("expected error when payload exceeds outbound cap")
	}
}
