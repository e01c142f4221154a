package robots

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// Checker evaluates a site's robots.txt policy once, before crawling.
type Checker struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// New creates a Checker using the given HTTP client and user agent.
func New(client *http.Client, userAgent string, logger *zap.Logger) *Checker {
	return &Checker{client: client, userAgent: userAgent, logger: logger}
}

// Allowed reports whether the configured user agent may fetch rawURL
// according to the origin's robots.txt. A URL without a scheme or
// hostname and any transport failure while reading the policy are both
// logged and treated as a denial. A missing robots.txt (4xx status)
// allows everything, per standard robots semantics; group precedence
// is handled by the robotstxt library.
func (c *Checker) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		c.logger.Error("not a valid absolute url", zap.String("url", rawURL))
		return false
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		c.logger.Error("building robots.txt request failed",
			zap.String("url", robotsURL), zap.Error(err))
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("reading robots.txt failed",
			zap.String("url", robotsURL), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.logger.Error("parsing robots.txt failed",
			zap.String("url", robotsURL), zap.Error(err))
		return false
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return data.FindGroup(c.userAgent).Test(path)
}
