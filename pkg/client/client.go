package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/app-sre/dbpedia/pkg/namespace"
	"github.com/app-sre/dbpedia/pkg/results"
	"github.com/app-sre/dbpedia/pkg/sparql"
	"github.com/app-sre/dbpedia/pkg/version"
)

const (
	DefaultTimeout = 120 * time.Second

	connectTimeout = 10 * time.Second

	resultsFormat = "json"
	acceptHeader  = "application/sparql-results+json, application/json"
)

type Client struct {
	endpoint        string
	defaultEndpoint string
	timeout         time.Duration

	client *http.Client
	logger *zap.SugaredLogger
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithDefaultEndpoint changes the endpoint used as the fallback target.
func WithDefaultEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.defaultEndpoint = endpoint
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(options ...Option) *Client {
	c := &Client{
		endpoint:        namespace.DefaultEndpoint,
		defaultEndpoint: namespace.DefaultEndpoint,
		timeout:         DefaultTimeout,
		logger:          zap.NewNop().Sugar(),
	}

	c.client = &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) DefaultEndpoint() string {
	return c.defaultEndpoint
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Query renders the query Execute would send, without sending it.
func (c *Client) Query(subjects, predicates []string, options ...sparql.Option) string {
	return sparql.Build(subjects, predicates, options...)
}

// Execute sends the query built from subjects, predicates and filter options
// to the configured endpoint. When that fails with a transport error and the
// configured endpoint is not the default one, the query is sent once more to
// the default endpoint and its outcome is returned as is. Nothing is retried
// once ctx is done.
func (c *Client) Execute(ctx context.Context, subjects, predicates []string, options ...sparql.Option) (*results.Table, error) {
	query := sparql.Build(subjects, predicates, options...)

	body, err := c.get(ctx, c.endpoint, query)

	var transport *TransportError
	if errors.As(err, &transport) {
		if ctx.Err() != nil {
			// Cancelled by the caller, the default endpoint would fail the same way.
			return nil, err
		}

		c.logger.Errorw("Call to endpoint failed with an expected error",
			"endpoint", c.endpoint,
			"subjects", subjects,
			"predicates", predicates,
			"query", query,
			"error", err,
		)
		if c.endpoint == c.defaultEndpoint {
			return nil, err
		}

		c.logger.Infof("Retrying query using default endpoint: %s", c.defaultEndpoint)
		body, err = c.get(ctx, c.defaultEndpoint, query)
	}
	if err != nil {
		return nil, err
	}

	return results.Decode(bytes.NewReader(body))
}

// GetObjects returns the object bound in every result row.
func (c *Client) GetObjects(ctx context.Context, subjects, predicates []string, options ...sparql.Option) ([]string, error) {
	table, err := c.Execute(ctx, subjects, predicates, options...)
	if err != nil {
		return nil, err
	}
	return results.Objects(table)
}

// GetSubjectObjectTuples returns the subject and object bound in every result
// row.
func (c *Client) GetSubjectObjectTuples(ctx context.Context, subjects, predicates []string, options ...sparql.Option) ([]results.Pair, error) {
	table, err := c.Execute(ctx, subjects, predicates, options...)
	if err != nil {
		return nil, err
	}
	return results.SubjectObjectTuples(table)
}

// Ping checks that the configured endpoint answers HTTP requests.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("unable to create request to endpoint: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return &TransportError{Endpoint: c.endpoint, Err: &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, query string) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("unable to parse endpoint: %w", err)
	}
	params := u.Query()
	params.Set("format", resultsFormat)
	params.Set("query", query)
	u.RawQuery = params.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request to endpoint: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("unable to read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{Endpoint: endpoint, Err: &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}}
	}

	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", fmt.Sprintf("dbpedia/%s", version.Version()))
}
