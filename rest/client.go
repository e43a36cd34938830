package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"time"

	"golang.org/x/time/rate"

	"github.com/arenborg/discordrest/discord"
)

// Version of the library, overwritten with the current tag when released.
const Version = "0.2.0"

const (
	defaultAPIVersion = 10
	defaultLocale     = "en-US"

	// Discord's documented global request allowance per bot.
	globalRateLimitPeriod   = 1 * time.Second
	globalRateLimitRequests = 50
)

// TokenType selects the Authorization header scheme.
type TokenType string

const (
	TokenTypeBot    TokenType = "Bot"
	TokenTypeBearer TokenType = "Bearer"
)

// Client sends requests to the Discord REST API.
//
// All requests of a process should go through a single client, so that
// rate-limit buckets and the global rate limit are accounted correctly.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	tokenType  TokenType
	userAgent  string
	locale     string
	useClock   bool

	limiterGlobal *rate.Limiter // proactive cap at the documented allowance
	gate          *gate         // reactive global 429 signal
	locks         *lockTable

	// test seams
	sleep func(ctx context.Context, d time.Duration) error
	after func(d time.Duration, f func())
}

// Option configures a client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAPIVersion selects the Discord API version, default 10.
func WithAPIVersion(v int) Option {
	return func(c *Client) {
		c.baseURL = fmt.Sprintf("https://discord.com/api/v%d", v)
	}
}

// WithLocale sets the locale Discord uses for API error messages.
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = locale
	}
}

// WithTokenType selects the Authorization scheme, default [TokenTypeBot].
func WithTokenType(t TokenType) Option {
	return func(c *Client) {
		c.tokenType = t
	}
}

// WithProxy routes all requests through the given proxy URL.
// Credentials can be embedded in the URL userinfo.
func WithProxy(proxyURL *url.URL) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{
			Timeout:   c.httpClient.Timeout,
			Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
		}
	}
}

// WithSyncedClock makes bucket reset times be computed from the absolute
// X-Ratelimit-Reset epoch instead of the relative Reset-After duration.
// Only useful when the local clock is NTP-synchronized.
func WithSyncedClock() Option {
	return func(c *Client) {
		c.useClock = true
	}
}

// NewClient returns a client authenticating with the given token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    fmt.Sprintf("https://discord.com/api/v%d", defaultAPIVersion),
		token:      token,
		tokenType:  TokenTypeBot,
		locale:     defaultLocale,
		userAgent: fmt.Sprintf(
			"DiscordBot (https://github.com/arenborg/discordrest, %s) %s",
			Version, runtime.Version(),
		),
		limiterGlobal: rate.NewLimiter(
			rate.Every(globalRateLimitPeriod/globalRateLimitRequests),
			globalRateLimitRequests,
		),
		gate:  newGate(),
		locks: newLockTable(),
		sleep: sleepContext,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login verifies the token by fetching the current user.
// A rejected token is reported as [ErrLoginFailure].
func (c *Client) Login(ctx context.Context) (*discord.User, error) {
	data, err := c.Request(ctx, NewRoute(http.MethodGet, "/users/@me", nil))
	if err != nil {
		var unauthorized *UnauthorizedError
		if errors.As(err, &unauthorized) {
			return nil, fmt.Errorf("%w: %w", ErrLoginFailure, err)
		}
		return nil, err
	}
	var u discord.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
