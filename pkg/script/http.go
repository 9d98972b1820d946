package script

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPSource fetches scripts over HTTP/HTTPS.
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource creates an HTTP source with a default client.
func NewHTTPSource() *HTTPSource {
	return &HTTPSource{
		client: &http.Client{},
	}
}

// NewHTTPSourceWithClient creates an HTTP source with a custom client,
// useful for testing.
func NewHTTPSourceWithClient(client *http.Client) *HTTPSource {
	return &HTTPSource{client: client}
}

// Fetch downloads a script over HTTP/HTTPS.
func (hs *HTTPSource) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	scheme, _, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("HTTP source only supports http:// and https:// URIs, got %s://", scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := hs.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download script: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("script request failed with status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Exists checks script presence with a HEAD request.
func (hs *HTTPSource) Exists(ctx context.Context, uri string) (bool, error) {
	scheme, _, err := ParseURI(uri)
	if err != nil {
		return false, err
	}

	if scheme != "http" && scheme != "https" {
		return false, fmt.Errorf("HTTP source only supports http:// and https:// URIs, got %s://", scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, uri, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := hs.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check script: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
