package platform

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// Platform names understood by the upstream client. Matching is by exact
// name; anything else is served by the synthetic path.
const (
	Instagram = "Instagram"
	TikTok    = "TikTok"
	LinkedIn  = "LinkedIn"
	X         = "X"
	Pinterest = "Pinterest"
	YouTube   = "YouTube"
)

const defaultTimeout = 30 * time.Second

// Client talks to the social platform APIs for metrics and scheduling.
// Platforms without a configured credential get plausible synthesized
// results instead of real calls, so the dashboard works in development
// and demo environments.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      map[string]string

	mu  sync.Mutex
	rnd *rand.Rand
}

// ClientOption is a function that configures the Client
type ClientOption func(*Client)

// WithBaseURL overrides every platform endpoint with one base URL (tests,
// proxies)
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCredential sets the access token for one platform
func WithCredential(platform, token string) ClientOption {
	return func(c *Client) {
		if token != "" {
			c.creds[platform] = token
		}
	}
}

// WithSeed makes the synthetic results deterministic (tests)
func WithSeed(seed int64) ClientOption {
	return func(c *Client) {
		c.rnd = rand.New(rand.NewSource(seed))
	}
}

// New creates a new platform client
func New(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		creds: make(map[string]string),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// credential returns the configured token for a platform, empty if none
func (c *Client) credential(platform string) string {
	return c.creds[platform]
}

// endpoint builds the API base for a platform, honoring the override
func (c *Client) endpoint(platform string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	switch platform {
	case Instagram:
		return "https://graph.instagram.com/v21.0"
	case TikTok:
		return "https://open.tiktokapis.com/v2"
	case LinkedIn:
		return "https://api.linkedin.com/v2"
	case X:
		return "https://api.twitter.com/2"
	case Pinterest:
		return "https://api.pinterest.com/v5"
	case YouTube:
		return "https://www.googleapis.com/youtube/v3"
	default:
		return ""
	}
}

// APIError represents an error returned by a platform API
type APIError struct {
	Platform string `json:"platform"`
	Message  string `json:"message"`
	Code     int    `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %s (code: %d)", e.Platform, e.Message, e.Code)
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// do executes an HTTP request and decodes the response
func (c *Client) do(req *http.Request, platform string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
			return &APIError{Platform: platform, Message: string(body), Code: resp.StatusCode}
		}
		errResp.Error.Platform = platform
		return &errResp.Error
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
