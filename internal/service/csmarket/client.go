package csmarket

import (
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAPIURL = "https://api.csmarketapi.com"

	maxRedirects = 10
)

type Config struct {
	APIURL string
	APIKey string
	// Timeout bounds a whole call. Zero leaves it to the transport.
	Timeout time.Duration
}

// Client provides access to the CSMarketAPI REST API.
type Client struct {
	http   *resty.Client
	logger *logrus.Entry
	closed atomic.Bool
}

type options struct {
	httpClient *http.Client
	logger     *logrus.Entry
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient builds the client on a copy of hc. Its transport, if any,
// becomes the base of the key-injecting transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithLogger sets the logger used for request logs.
func WithLogger(logger *logrus.Entry) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewClient opens a client. Call Close when done, or use Use.
func NewClient(cfg Config, opts ...Option) *Client {
	o := options{
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(&o)
	}

	apiURL := normalizeAPIURL(cfg.APIURL)
	host, port := "", ""
	if u, err := url.Parse(apiURL); err == nil {
		host, port = strings.ToLower(u.Hostname()), portOf(u)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		clone := *o.httpClient
		hc = &clone
	}
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
		// Each client owns its pool so Close does not touch other users.
		if t, ok := http.DefaultTransport.(*http.Transport); ok {
			base = t.Clone()
		}
	}
	hc.Transport = &keyTransport{
		APIKey: cfg.APIKey,
		Host:   host,
		Port:   port,
		Base:   base,
	}

	r := resty.NewWithClient(hc).
		SetBaseURL(apiURL).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects)).
		SetLogger(o.logger)
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:   r,
		logger: o.logger.WithField("component", "csmarket"),
	}
}

// normalizeAPIURL trims trailing slashes and assumes https when the scheme
// is missing.
func normalizeAPIURL(raw string) string {
	apiURL := strings.TrimRight(strings.TrimSpace(raw), "/")
	if apiURL == "" {
		return DefaultAPIURL
	}
	if !strings.Contains(apiURL, "://") {
		apiURL = "https://" + apiURL
	}
	return apiURL
}

// Close releases pooled connections. Later calls fail with ErrClientClosed.
// Close is idempotent.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.http.GetClient().CloseIdleConnections()
	return nil
}

// Use opens a client, passes it to fn and closes it on every exit path,
// including a panic in fn.
func Use(cfg Config, fn func(*Client) error, opts ...Option) (err error) {
	c := NewClient(cfg, opts...)
	defer func() {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(c)
}
