package apisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sabaq/sabaq/core"
)

// Client talks to the course backend. Every authenticated request
// carries the session's bearer token; a 401 anywhere terminates the
// session and surfaces core.ErrUnauthorized for the caller to redirect
// to login. Nothing is retried automatically.
type Client struct {
	base   string
	httpc  *http.Client
	logger core.Logger

	mu      sync.RWMutex
	session *core.Session
}

func NewClient(conf core.APIConfig, logger core.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(conf.BaseURL, "/"),
		httpc:  &http.Client{Timeout: conf.Timeout},
		logger: logger,
	}
}

func (c *Client) SetSession(s *core.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

func (c *Client) Session() *core.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// apiError is the error envelope the backend uses; older endpoints use
// "error", the auth endpoints use "message".
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e apiError) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if s := c.Session(); s != nil {
		req.Header.Set("Authorization", s.Authorization())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return core.NewUnreachableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// credential missing or expired: the session is over
		c.SetSession(nil)
		return core.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.text() != "" {
			return core.NewRejectedError(apiErr.text())
		}
		return core.NewRejectedError(fmt.Sprintf("%s %s: %s", method, path, http.StatusText(resp.StatusCode)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}
