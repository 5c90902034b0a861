// Package testutil provides a fake net/http transport used to test
// transport.HTTPFetcher without touching the network.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// FakeClient returns an HTTP client that replies to requests for any
// URL present in routes with the mapped body, and 404s everything else.
func FakeClient(routes map[string][]byte) *http.Client {
	return &http.Client{Transport: mockRoundTrip{routes: routes}}
}

type mockRoundTrip struct {
	routes map[string][]byte
}

func (r mockRoundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	rsp := &http.Response{Header: make(http.Header), Request: req}
	if body, ok := r.routes[req.URL.String()]; ok {
		rsp.StatusCode = http.StatusOK
		rsp.Status = "200 OK"
		rsp.Body = io.NopCloser(bytes.NewReader(body))
	} else {
		rsp.StatusCode = http.StatusNotFound
		rsp.Status = "404 Not Found"
		rsp.Body = io.NopCloser(strings.NewReader("404 not found"))
	}
	return rsp, nil
}
