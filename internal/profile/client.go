// Package profile looks up public GitHub profile statistics.
package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/masmgr/folio/internal/fetch"
)

// Stats is the stats panel content.
type Stats struct {
	Login       string `json:"login"`
	PublicRepos int    `json:"public_repos"`
	PublicGists int    `json:"public_gists"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// Cache stores looked-up stats between runs.
type Cache interface {
	GetCached(key string, ttl time.Duration, now time.Time, v any) (bool, error)
	PutCached(key string, v any, now time.Time) error
}

// Client wraps the GitHub API client with rate limiting and an optional cache.
type Client struct {
	client      *github.Client
	rateLimiter *rate.Limiter
	cache       Cache
	cacheTTL    time.Duration
	logger      *logrus.Logger
	now         func() time.Time
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the transport used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		base := c.client.BaseURL
		c.client = github.NewClient(hc)
		c.client.BaseURL = base
		return nil
	}
}

// WithBaseURL points the client at another API root, e.g. a GitHub Enterprise host.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", raw, err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// WithCache enables caching for ttl. A non-positive ttl disables it.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) error {
		if ttl > 0 {
			c.cache = cache
			c.cacheTTL = ttl
		}
		return nil
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// NewClient creates a profile client. An empty token makes unauthenticated calls.
func NewClient(token string, opts ...Option) (*Client, error) {
	c := &Client{
		client:      github.NewClient(nil),
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		logger:      logrus.StandardLogger(),
		now:         time.Now,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if token != "" {
		c.client = c.client.WithAuthToken(token)
	}
	return c, nil
}

func cacheKey(username string) string {
	return "github-user:" + strings.ToLower(username)
}

// Fetch returns the public stats for username. Failures are *fetch.FetchError.
// There is no retry.
func (c *Client) Fetch(ctx context.Context, username string) (*Stats, error) {
	endpoint := c.client.BaseURL.String() + "users/" + url.PathEscape(username)
	if username == "" {
		return nil, &fetch.FetchError{URL: endpoint, Err: fmt.Errorf("username is required")}
	}

	if c.cache != nil {
		var cached Stats
		ok, err := c.cache.GetCached(cacheKey(username), c.cacheTTL, c.now(), &cached)
		if err != nil {
			c.logger.WithError(err).Warn("Profile cache read failed")
		}
		if ok {
			c.logger.WithField("username", username).Debug("Profile stats served from cache")
			return &cached, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &fetch.FetchError{URL: endpoint, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	user, resp, err := c.client.Users.Get(ctx, username)
	if err != nil {
		fe := &fetch.FetchError{URL: endpoint, Err: err}
		if resp != nil {
			fe.Status = resp.StatusCode
		}
		return nil, fe
	}

	stats := &Stats{
		Login:       user.GetLogin(),
		PublicRepos: user.GetPublicRepos(),
		PublicGists: user.GetPublicGists(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}
	c.logger.WithFields(logrus.Fields{
		"username":     username,
		"public_repos": stats.PublicRepos,
		"followers":    stats.Followers,
	}).Debug("Fetched profile stats")

	if c.cache != nil {
		if err := c.cache.PutCached(cacheKey(username), stats, c.now()); err != nil {
			c.logger.WithError(err).Warn("Profile cache write failed")
		}
	}
	return stats, nil
}
