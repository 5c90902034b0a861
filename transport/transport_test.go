package transport

import (
	"context"
	"testing"

	"github.com/cognitoiq/xbgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherFetchesBody(t *testing.T) {
	client := testutil.FakeClient(map[string][]byte{
		"http://example.com/order.xsd": []byte("<schema/>"),
	})
	f := &HTTPFetcher{Client: client}
	body, err := f.Fetch(context.Background(), "http://example.com/order.xsd")
	require.NoError(t, err)
	assert.Equal(t, "<schema/>", string(body))
}

func TestHTTPFetcherFailsOn404(t *testing.T) {
	client := testutil.FakeClient(map[string][]byte{})
	f := &HTTPFetcher{Client: client}
	_, err := f.Fetch(context.Background(), "http://example.com/missing.xsd")
	assert.Error(t, err)
}

func TestManifestFetchAllFollowsDiscoveredImports(t *testing.T) {
	client := testutil.FakeClient(map[string][]byte{
		"http://example.com/a.xsd": []byte("imports b"),
		"http://example.com/b.xsd": []byte("leaf"),
	})
	f := &HTTPFetcher{Client: client}
	m := NewManifest()
	discover := func(url string, body []byte) []string {
		if url == "http://example.com/a.xsd" {
			return []string{"http://example.com/b.xsd"}
		}
		return nil
	}
	order, err := m.FetchAll(context.Background(), f, []string{"http://example.com/a.xsd"}, discover, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://example.com/a.xsd", "http://example.com/b.xsd"}, order)

	body, ok := m.Body("http://example.com/b.xsd")
	require.True(t, ok)
	assert.Equal(t, "leaf", string(body))
}

func TestManifestFetchAllFailFast(t *testing.T) {
	client := testutil.FakeClient(map[string][]byte{})
	f := &HTTPFetcher{Client: client}
	m := NewManifest()
	_, err := m.FetchAll(context.Background(), f, []string{"http://example.com/missing.xsd"}, nil, true)
	assert.Error(t, err)
}
