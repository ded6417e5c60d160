// Package transport sends the tool's HTTP requests behind a small interface
// so the login and couple calls can run against a fake in tests.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Request is one outgoing call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

// Response is what came back: status, the cookies the server set, and the raw body.
type Response struct {
	StatusCode int
	Cookies    []*http.Cookie
	Body       []byte
}

// Cookie returns the value of the named cookie, if the server set it.
func (r *Response) Cookie(name string) (string, bool) {
	for _, c := range r.Cookies {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Doer performs a single request.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Error is returned for network failures and non-2xx responses.
// StatusCode is 0 when no response arrived.
type Error struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Detail is what gets logged: the error body when there is one, else the message.
func (e *Error) Detail() string {
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		return body
	}
	return e.Error()
}

// HTTPClient is the net/http implementation of Doer.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient wraps c, or http.DefaultClient when c is nil.
func NewHTTPClient(c *http.Client) *HTTPClient {
	if c == nil {
		c = http.DefaultClient
	}
	return &HTTPClient{client: c}
}

// Do sends req. Any non-2xx status comes back as *Error carrying the body.
func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, &Error{Method: req.Method, URL: req.URL, Err: errors.Wrap(err, "create request")}
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &Error{Method: req.Method, URL: req.URL, Err: errors.Wrap(err, "send request")}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Error{Method: req.Method, URL: req.URL, Err: errors.Wrap(err, "read response")}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &Error{
			Method:     req.Method,
			URL:        req.URL,
			StatusCode: httpResp.StatusCode,
			Body:       data,
			Err:        errors.Errorf("status %s", httpResp.Status),
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Cookies:    httpResp.Cookies(),
		Body:       data,
	}, nil
}
