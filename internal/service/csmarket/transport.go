package csmarket

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/andybalholm/brotli"
)

// keyTransport adds the API key to requests bound for the API host and
// decompresses brotli responses. Host is a lower-case hostname and Port is
// always explicit.
type keyTransport struct {
	APIKey string
	Host   string
	Port   string
	Base   http.RoundTripper
}

// CloseIdleConnections is forwarded so http.Client.CloseIdleConnections
// reaches the pool.
func (t *keyTransport) CloseIdleConnections() {
	if c, ok := t.Base.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}

func (t *keyTransport) isAPIHost(u *url.URL) bool {
	return strings.EqualFold(u.Hostname(), t.Host) && portOf(u) == t.Port
}

// portOf returns the explicit port of u or the scheme default.
func portOf(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	if strings.EqualFold(u.Scheme, "http") {
		return "80"
	}
	return "443"
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// A RoundTripper must not modify the caller's request.
	req = req.Clone(req.Context())

	if t.APIKey != "" && t.isAPIHost(req.URL) {
		q := req.URL.Query()
		q.Set("key", t.APIKey)
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "br") {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
		resp.Header.Del("Content-Encoding")
		resp.Header.Del("Content-Length")
		resp.ContentLength = -1
		resp.Uncompressed = true
	}
	return resp, nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
