package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

const (
	tasksPath         = "/tasks"
	maxErrorBodyBytes = 64 << 10
	maxMessageWidth   = 200

	// RequestIDHeader carries a per-call identifier for tracing on the gateway.
	RequestIDHeader = "X-Request-ID"
)

// TokenSource supplies the session token attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TaskClient defines the remote task operations.
type TaskClient interface {
	ListTasks(ctx context.Context) ([]*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// HTTPClient implements TaskClient over the task REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	requestID  func() string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithRequestID replaces the request identifier generator.
func WithRequestID(gen func() string) Option {
	return func(c *HTTPClient) {
		c.requestID = gen
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewInvalidInputError("api base url", baseURL, "must be an absolute http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.NewInvalidInputError("api base url", baseURL, "scheme must be http or https")
	}
	if tokens == nil {
		return nil, errors.NewInvalidInputError("token source", nil, "is required")
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokens:     tokens,
		requestID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTasks fetches the full task collection.
func (c *HTTPClient) ListTasks(ctx context.Context) ([]*Task, error) {
	var tasks []*Task
	if err := c.do(ctx, call{op: "list tasks", method: http.MethodGet, path: tasksPath}, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	return tasks, nil
}

// GetTask fetches a single task.
func (c *HTTPClient) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.do(ctx, call{op: "get task", method: http.MethodGet, path: taskPath(id), id: id}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task; the service assigns its ID.
func (c *HTTPClient) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, call{op: "create task", method: http.MethodPost, path: tasksPath, body: req}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces the editable fields of a task.
func (c *HTTPClient) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, call{op: "update task", method: http.MethodPut, path: taskPath(id), id: id, body: req}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task. A 404 is returned to the caller, not swallowed.
func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, call{op: "delete task", method: http.MethodDelete, path: taskPath(id), id: id}, nil)
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}

type call struct {
	op     string
	method string
	path   string
	id     string
	body   interface{}
}

func (c *HTTPClient) do(ctx context.Context, cl call, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return errors.NewInvalidInputError("request body", cl.body, err.Error())
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return errors.NewNetworkError(cl.op, err)
	}
	reqID := c.requestID()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug("request failed", "op", cl.op, "request_id", reqID, "error", err)
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return errors.NewTimeoutError(cl.op, c.httpClient.Timeout)
		}
		return errors.NewNetworkError(cl.op, err)
	}
	defer resp.Body.Close()

	logging.Debug("request completed",
		"op", cl.op,
		"method", cl.method,
		"path", cl.path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if err != nil {
			return errors.NewNetworkError(cl.op, err)
		}
		return checkStatus(cl, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	// Success bodies are decoded as streamed; the list has no size cap.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		if !malformed(err) {
			return errors.NewNetworkError(cl.op, err)
		}
		rejection := errors.NewServerRejectionError(cl.op, resp.StatusCode, "malformed response body")
		rejection.Cause = err
		return rejection
	}
	return nil
}

func malformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return stderrors.As(err, &syntaxErr) || stderrors.As(err, &typeErr) || stderrors.Is(err, io.ErrUnexpectedEOF)
}

// checkStatus maps a response status to the error taxonomy. Bodies are not
// interpreted; their text is only carried as the message.
func checkStatus(cl call, status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.NewSessionExpiredError(cl.op, status)
	case status == http.StatusNotFound:
		id := cl.id
		if id == "" {
			id = cl.path
		}
		return errors.NewNotFoundError("task", id)
	default:
		return errors.NewServerRejectionError(cl.op, status, bodyMessage(body))
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return stderrors.As(err, &t) && t.Timeout()
}

func bodyMessage(body []byte) string {
	return runewidth.Truncate(strings.TrimSpace(string(body)), maxMessageWidth, "...")
}
