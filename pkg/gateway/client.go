// Package gateway is the HTTP client of the search backend: search, upload and assistant calls,
// all sent as multipart forms.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTP client configuration constants
const (
	defaultHTTPTimeout  = 600 * time.Second
	maxIdleConns        = 100
	maxIdleConnsPerHost = 100
	idleConnTimeout     = 90 * time.Second
	maxErrorBodySize    = 4096
)

/**************************************************************************************************
** Client talks to the search backend. In dry-run mode no request leaves the process: payloads
** are summarized in the logs and stub responses are returned.
**************************************************************************************************/
type Client struct {
	client *http.Client
	apiURL string
	dryRun bool
	logger *logrus.Logger
}

/**************************************************************************************************
** NewClient creates a backend client.
**
** @param apiURL - Base URL of the backend, e.g. http://localhost:8000
** @param timeout - Per-request timeout (600s when zero or negative)
** @param dryRun - Whether to answer with stubs instead of calling the backend
** @param logger - Logger instance for output
** @return *Client - Configured client, or nil when the URL or the logger is invalid
**************************************************************************************************/
func NewClient(apiURL string, timeout time.Duration, dryRun bool, logger *logrus.Logger) *Client {
	if apiURL == "" || logger == nil {
		return nil
	}

	parsedURL, err := url.Parse(apiURL)
	if err != nil || parsedURL.Host == "" {
		return nil
	}
	baseURL := fmt.Sprintf("%s://%s%s", parsedURL.Scheme, parsedURL.Host, strings.TrimRight(parsedURL.Path, "/"))

	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     idleConnTimeout,
		},
	}

	return &Client{
		client: client,
		apiURL: baseURL,
		dryRun: dryRun,
		logger: logger,
	}
}

// DryRun reports whether the client answers with stubs.
func (c *Client) DryRun() bool { return c.dryRun }

/**************************************************************************************************
** doRequest posts a multipart form and decodes the JSON answer. There is no retry: a failed
** call is reported once to the caller.
**
** @param ctx - Context of the call
** @param path - Endpoint path, e.g. /search
** @param form - Encoded multipart body
** @param result - Pointer to store response data
** @return error - *GatewayError on transport failure, non-2xx status or undecodable body
**************************************************************************************************/
func (c *Client) doRequest(ctx context.Context, path string, form *multipartForm, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, form.body)
	if err != nil {
		return &GatewayError{Op: path, Err: fmt.Errorf("error creating request: %w", err)}
	}
	req.Header.Set("Content-Type", form.contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &GatewayError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &GatewayError{Op: path, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return &GatewayError{Op: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("error decoding response: %w", err)}
		}
	}
	return nil
}
