// Package assets is a read-only client for the Jira Assets (Insight) REST API.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/lovincyrus/jira-assets/internal/credentials"
	"github.com/lovincyrus/jira-assets/internal/logging"
)

const (
	// APIPath is appended to the configured Jira URL.
	APIPath = "/rest/insight/1.0"

	contentTypeJSON  = "application/json"
	defaultUserAgent = "jira-assets-cli/dev"

	pathSchemaList = "/objectschema/list"
	pathIQLObjects = "/iql/objects"

	maxErrorBody = 64 << 10
)

// CredentialSource supplies the connection credentials. *credentials.Store
// satisfies it.
type CredentialSource interface {
	Get() (credentials.Credentials, error)
	HasRequired() (bool, error)
}

// Client calls the Jira Assets API. It reads its credentials on the first
// operation and reuses them for the rest of the process.
type Client struct {
	source     CredentialSource
	httpClient *http.Client
	userAgent  string
	logger     *clog.Logger

	mu       sync.Mutex
	endpoint *endpoint
}

type endpoint struct {
	baseURL  string
	email    string
	apiToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *clog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Client bound to src. No I/O happens until the first call.
func New(src CredentialSource, opts ...Option) *Client {
	c := &Client{
		source:     src,
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
		logger:     logging.L,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ready builds the endpoint from the credential source on first use.
func (c *Client) ready() (*endpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.endpoint != nil {
		return c.endpoint, nil
	}

	ok, err := c.source.HasRequired()
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if !ok {
		return nil, ErrMissingConfig
	}
	creds, err := c.source.Get()
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	c.endpoint = &endpoint{
		baseURL:  strings.TrimRight(creds.JiraURL, "/") + APIPath,
		email:    creds.Email,
		apiToken: creds.APIToken,
	}
	c.logger.Debug("client ready", "base", c.endpoint.baseURL, "email", creds.Email)
	return c.endpoint, nil
}

// get performs a GET against path and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	ep, err := c.ready()
	if err != nil {
		return err
	}

	fullURL := ep.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &RemoteError{Message: "build request", Err: err}
	}
	req.SetBasicAuth(ep.email, ep.apiToken)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "path", path, "err", err)
		return &RemoteError{Err: err}
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", http.MethodGet, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteErrorFrom(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &RemoteError{StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

// remoteErrorFrom turns a non-2xx response into a RemoteError, keeping the
// first message Jira put in the body.
func remoteErrorFrom(resp *http.Response) *RemoteError {
	re := &RemoteError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status code %d", resp.StatusCode),
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
		Message       string            `json:"message"`
	}
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &payload) != nil {
		return re
	}
	switch {
	case len(payload.ErrorMessages) > 0 && payload.ErrorMessages[0] != "":
		re.Message += ": " + payload.ErrorMessages[0]
	case payload.Message != "":
		re.Message += ": " + payload.Message
	default:
		for _, msg := range payload.Errors {
			if msg != "" {
				re.Message += ": " + msg
				break
			}
		}
	}
	return re
}

// ListSchemas returns every object schema visible to the user.
func (c *Client) ListSchemas(ctx context.Context) ([]Schema, error) {
	var raw json.RawMessage
	if err := c.get(ctx, pathSchemaList, nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			ObjectSchemas []Schema `json:"objectschemas"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &RemoteError{Message: "decode response", Err: err}
		}
		return envelope.ObjectSchemas, nil
	}

	var schemas []Schema
	if err := json.Unmarshal(trimmed, &schemas); err != nil {
		return nil, &RemoteError{Message: "decode response", Err: err}
	}
	return schemas, nil
}

// GetSchema returns one schema by id.
func (c *Client) GetSchema(ctx context.Context, id int) (*Schema, error) {
	var s Schema
	if err := c.get(ctx, "/objectschema/"+strconv.Itoa(id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListObjects returns one page of the objects in a schema.
// page and limit fall back to 1 and 50 when not positive.
func (c *Client) ListObjects(ctx context.Context, schemaID, page, limit int) (*PageResult, error) {
	page, limit = normalizePage(page, limit)
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var result PageResult
	path := "/objectschema/" + strconv.Itoa(schemaID) + "/objects"
	if err := c.get(ctx, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchObjects runs an IQL query. The query is sent as-is; the server
// parses and validates it.
func (c *Client) SearchObjects(ctx context.Context, iql string, page, limit int) (*PageResult, error) {
	page, limit = normalizePage(page, limit)
	params := url.Values{}
	params.Set("iql", iql)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("includeAttributes", "true")
	params.Set("includeTypeAttributes", "true")

	var result PageResult
	if err := c.get(ctx, pathIQLObjects, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
