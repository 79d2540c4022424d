// internal/app/platform/gitlab/client.go

// Package gitlab is the REST client for the external GitLab-compatible
// platform that hosts groups, users, and memberships as first-class
// resources.
//
// Admin-scoped calls authenticate with the service's admin token via an
// oauth2 static token source; "who am I" uses the caller's own token. The
// client adds no retries and no caching; cancellation comes from the
// caller's context plus a client-level cap.
package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/modelcove/groupsync/internal/domain/apperr"
)

const apiPrefix = "/api/v4"

// Client talks to one external platform instance.
type Client struct {
	baseURL string
	admin   *http.Client // admin token attached by oauth2 transport
	raw     *http.Client // no credentials; per-request token calls
	log     *zap.Logger
}

// New builds a client for the platform at baseURL using adminToken for
// admin-scoped operations.
func New(baseURL, adminToken string, log *zap.Logger) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("invalid platform base URL %q: %w", baseURL, err)
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: adminToken, TokenType: "Bearer"})
	admin := oauth2.NewClient(context.Background(), src)
	admin.Timeout = 30 * time.Second

	return &Client{
		baseURL: baseURL,
		admin:   admin,
		raw:     &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}, nil
}

// do issues one JSON request. token overrides the admin credentials when
// non-empty (used for "who am I"). out may be nil for responses without a
// useful body. notFound is the taxonomy error a 404 maps to.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, token string, notFound error) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.admin
	if token != "" {
		hc = c.raw
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("platform %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a little of the body for the log, then map to the taxonomy.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if c.log != nil {
			c.log.Warn("platform call failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", snippet))
		}
		return mapStatus(resp.StatusCode, notFound)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func mapStatus(status int, notFound error) error {
	switch status {
	case http.StatusBadRequest:
		return apperr.ErrBadParameters
	case http.StatusUnauthorized:
		return apperr.ErrIncorrectCredentials
	case http.StatusForbidden:
		return apperr.ErrAccessDenied
	case http.StatusNotFound:
		if notFound != nil {
			return notFound
		}
		return apperr.ErrGroupNotFound
	case http.StatusConflict:
		return apperr.ErrConflict
	}
	return fmt.Errorf("platform returned status %d", status)
}
