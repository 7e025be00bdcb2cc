package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"

	"triviabrowse/internal/domain"
	"triviabrowse/internal/logging/events"
)

const (
	maxBodyBytes     = 4 << 20
	defaultUserAgent = "triviabrowse"
)

// Operation names used in errors and traces
const (
	OpFetchPage       = "fetchPage"
	OpFetchByCategory = "fetchByCategory"
	OpSearch          = "search"
	OpDeleteQuestion  = "deleteQuestion"
	OpCreateQuestion  = "createQuestion"
)

// RequestError describes a failed call. Every RequestError matches
// domain.ErrRequestFailed under errors.Is.
type RequestError struct {
	Op        string
	Status    int
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == domain.ErrRequestFailed }

// Client talks to the trivia service over HTTP/JSON. It keeps no state
// between calls apart from cookies.
type Client struct {
	baseURL   string
	http      *http.Client
	token     string
	userAgent string

	timeout    time.Duration
	hasTimeout bool
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient bases the client on a copy of hc. A cookie jar is added
// to the copy when hc has none; hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.http = &cp
		}
	}
}

// WithTimeout bounds every request. Zero disables the bound. It wins over
// the timeout of a client given to WithHTTPClient in any order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// WithToken sends an Authorization bearer header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
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

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout {
		c.http.Timeout = c.timeout
	}
	if c.http.Jar == nil {
		if jar, err := cookiejar.New(nil); err == nil {
			c.http.Jar = jar
		}
	}
	return c
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchPage returns one page of all questions together with the category map.
func (c *Client) FetchPage(ctx context.Context, page int) (domain.QuestionPage, error) {
	var body listWire
	if err := c.do(ctx, OpFetchPage, http.MethodGet, fmt.Sprintf("/questions/%d", page), nil, &body); err != nil {
		return domain.QuestionPage{}, err
	}
	return body.toPage(true), nil
}

// FetchByCategory returns every question in one category.
func (c *Client) FetchByCategory(ctx context.Context, categoryID int) (domain.QuestionPage, error) {
	var body listWire
	if err := c.do(ctx, OpFetchByCategory, http.MethodGet, fmt.Sprintf("/categories/%d/questions", categoryID), nil, &body); err != nil {
		return domain.QuestionPage{}, err
	}
	return body.toPage(false), nil
}

// Search runs a server-side search. The term is sent untouched, empty included.
func (c *Client) Search(ctx context.Context, term string) (domain.QuestionPage, error) {
	var body listWire
	if err := c.do(ctx, OpSearch, http.MethodPost, "/questions/search", searchRequest{SearchTerm: term}, &body); err != nil {
		return domain.QuestionPage{}, err
	}
	return body.toPage(false), nil
}

// DeleteQuestion removes a question by id.
func (c *Client) DeleteQuestion(ctx context.Context, id int) error {
	var ack ackWire
	return c.do(ctx, OpDeleteQuestion, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil, &ack)
}

// CreateQuestion adds a question.
func (c *Client) CreateQuestion(ctx context.Context, q domain.NewQuestion) error {
	var ack ackWire
	req := createRequest{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
	return c.do(ctx, OpCreateQuestion, http.MethodPost, "/add", req, &ack)
}

func (c *Client) do(ctx context.Context, op, method, path string, payload, out interface{}) error {
	requestID := uuid.NewString()
	fail := func(status int, err error) error {
		rerr := &RequestError{Op: op, Status: status, RequestID: requestID, Err: err}
		events.Client.Failure(op, requestID, rerr)
		return rerr
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fail(0, fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fail(0, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	events.Client.Request(op, method, url, requestID)
	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}
	events.Client.Response(op, requestID, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, statusError(resp.StatusCode, data))
	}

	switch v := out.(type) {
	case *ackWire:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, v); err != nil {
			return fail(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
		}
		if v.Success != nil && !*v.Success {
			return fail(resp.StatusCode, fmt.Errorf("service reported failure: %s", v.Message))
		}
	case *listWire:
		if err := json.Unmarshal(data, v); err != nil {
			return fail(resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
		}
		if err := v.validate(); err != nil {
			return fail(resp.StatusCode, err)
		}
	}
	return nil
}

func statusError(status int, body []byte) error {
	var e errorWire
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return fmt.Errorf("%s", e.Message)
	}
	return fmt.Errorf("%s", http.StatusText(status))
}
