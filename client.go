package sidemail

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

const (
	// DefaultHost is the official Sidemail API endpoint.
	DefaultHost = "https://api.sidemail.io"
	// APIKeyEnv is the environment variable consulted when no API key is passed to [New].
	APIKeyEnv = "SIDEMAIL_API_KEY"

	apiVersion = "v1"
	modulePath = "github.com/sidemail/sidemail-go"
)

var (
	// ErrMissingAPIKey is returned when no API key is available.
	ErrMissingAPIKey = errors.New("sidemail: API key is required")
	// ErrInvalidHost is returned when the configured host is not an absolute URL.
	ErrInvalidHost = errors.New("sidemail: invalid host")
)

// Client holds configuration needed to call the Sidemail API.
// Use [New] to create a new client.
type Client struct {
	apiKey string
	host   string

	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger

	// Email groups the email endpoints.
	Email *EmailService
	// Contacts groups the contact endpoints.
	Contacts *ContactsService
}

// ClientOption configures a Client before use.
type ClientOption func(*Client)

// WithHost sets a custom API host, e.g. for a proxy or a local mock server.
func WithHost(host string) ClientOption {
	return func(c *Client) {
		c.host = host
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets a custom User-Agent header for API requests.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Sidemail API client.
// If apiKey is empty the value of the SIDEMAIL_API_KEY environment variable is used.
// The client defaults to the production endpoint and applies any provided options.
func New(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(APIKeyEnv)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey: apiKey,
		host:   DefaultHost,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	host, err := normalizeHost(c.host)
	if err != nil {
		return nil, err
	}
	c.host = host

	if c.userAgent == "" {
		c.userAgent = userAgent()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}

	c.Email = &EmailService{client: c}
	c.Contacts = &ContactsService{client: c}

	return c, nil
}

// APIKey returns the API key the client authenticates with.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Host returns the API host without a trailing slash.
func (c *Client) Host() string {
	return c.host
}

// URL returns the absolute URL of an API path, e.g. "email/send".
func (c *Client) URL(path string) string {
	return c.host + "/" + apiVersion + "/" + strings.TrimLeft(path, "/")
}

// normalizeHost validates host and strips trailing slashes.
func normalizeHost(host string) (string, error) {
	u, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidHost, host, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w %q: scheme and host required", ErrInvalidHost, host)
	}

	return strings.TrimRight(host, "/"), nil
}

// version returns the module version of the sidemail package.
// It returns "devel" if built without module version information.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}

	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			if dep.Version == "(devel)" {
				return "devel"
			}

			return dep.Version
		}
	}

	if info.Main.Path == modulePath && info.Main.Version != "(devel)" && info.Main.Version != "" {
		return info.Main.Version
	}

	return "devel"
}

// Version reports the module version compiled into the binary.
func Version() string {
	return version()
}

// userAgent returns the default User-Agent string for this package.
func userAgent() string {
	return fmt.Sprintf(
		"sidemail-go/%s (%s; %s/%s)",
		version(),
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
	)
}
