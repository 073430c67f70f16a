package transport

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/goalscanpro/goalscan/internal/logger"
)

var httpClient *http.Client

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// GetHTTPClient returns the shared HTTP client used for all outbound
// collaborator calls (statistics pages, AI endpoint)
func GetHTTPClient() *http.Client {
	if httpClient != nil {
		return httpClient
	}
	httpClient = &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}
	return httpClient
}

// GetHtml fetches a URL with browser-like headers and transparently
// decodes gzip, deflate and brotli response bodies
func GetHtml(ctx context.Context, htmlUrl string) ([]byte, error) {
	client := GetHTTPClient()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, htmlUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Headers that make the request look like a browser; several
	// statistics sites refuse the default Go user agent
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Referer", "http://www.google.com/")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch html: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request returned error status %d", resp.StatusCode)
	}

	var reader io.ReadCloser = resp.Body
	switch encoding := resp.Header.Get("Content-Encoding"); encoding {
	case "gzip":
		reader, err = NewGzipReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()
	case "deflate":
		reader = NewDeflateReader(resp.Body)
		defer reader.Close()
	case "br":
		reader = NewBrotliReader(resp.Body)
		defer reader.Close()
	default:
		if encoding != "" {
			logger.Warn("Unknown content encoding:", encoding)
		}
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return data, nil
}

// PostJSON sends a JSON body and decodes a JSON response into out
func PostJSON(ctx context.Context, url string, headers map[string]string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := GetHTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request returned error status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// NewGzipReader creates a gzip reader from the provided io.ReadCloser
func NewGzipReader(r io.ReadCloser) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// NewDeflateReader creates a deflate reader from the provided io.ReadCloser
func NewDeflateReader(r io.ReadCloser) io.ReadCloser {
	return flate.NewReader(r)
}

// NewBrotliReader creates a brotli reader from the provided io.ReadCloser
func NewBrotliReader(r io.ReadCloser) io.ReadCloser {
	return io.NopCloser(brotli.NewReader(r))
}
