// Package transport provides the fetching collaborator's callback
// abstraction (§6.3): a function from a URL to the bytes at that URL,
// used only by the `fetch` CLI subcommand to download schemas
// transitively. The core pipeline takes no dependency on this package.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the bytes at url, raising on failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is the default Fetcher, backed by net/http.
type HTTPFetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewHTTPFetcher returns an HTTPFetcher with a sane default timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: http.DefaultClient, Timeout: 30 * time.Second}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: building request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transport: fetching %s: status %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: reading body of %s: %w", url, err)
	}
	return body, nil
}

// Manifest tracks fetched URLs transitively to avoid refetching or
// looping on a schema's own imports/includes, used by the `fetch`
// subcommand (§6.4).
type Manifest struct {
	seen map[string][]byte
}

// NewManifest returns an empty fetch manifest.
func NewManifest() *Manifest {
	return &Manifest{seen: make(map[string][]byte)}
}

// FetchAll walks roots and every URL discoverer(url, body) reports as
// an additional dependency, fetching each exactly once. If failFast is
// false, a failed fetch is recorded and walking continues; otherwise
// the first error aborts the walk.
func (m *Manifest) FetchAll(ctx context.Context, f Fetcher, roots []string, discoverer func(url string, body []byte) []string, failFast bool) ([]string, error) {
	var errs []error
	queue := append([]string{}, roots...)
	var order []string
	for len(queue) > 0 {
		url := queue[0]
		queue = queue[1:]
		if _, ok := m.seen[url]; ok {
			continue
		}
		body, err := f.Fetch(ctx, url)
		if err != nil {
			if failFast {
				return order, err
			}
			errs = append(errs, err)
			m.seen[url] = nil
			continue
		}
		m.seen[url] = body
		order = append(order, url)
		if discoverer != nil {
			queue = append(queue, discoverer(url, body)...)
		}
	}
	if len(errs) > 0 {
		return order, fmt.Errorf("transport: %d of %d fetches failed: %w", len(errs), len(order)+len(errs), errs[0])
	}
	return order, nil
}

// Body returns the previously-fetched bytes for url, and whether it was
// fetched successfully.
func (m *Manifest) Body(url string) ([]byte, bool) {
	b, ok := m.seen[url]
	return b, ok && b != nil
}
