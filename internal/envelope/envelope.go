// Package envelope runs serverless-style events through the HTTP router.
//
// An Event describes one request as a JSON document and a Response carries
// the status, headers and body the router produced. CORS, validation and
// error mapping behave exactly as they do over HTTP.
package envelope

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

type Event struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Headers               map[string]string `json:"headers"`
}

type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Adapter invokes an http.Handler, normally the echo router, with events.
type Adapter struct {
	handler http.Handler
}

func NewAdapter(handler http.Handler) *Adapter {
	return &Adapter{handler: handler}
}

// Invoke serves event and returns the envelope. Errors are only returned
// for events that cannot be turned into a request; failures inside the
// router come back as error envelopes.
func (a *Adapter) Invoke(ctx context.Context, event Event) (*Response, error) {
	req, err := event.request(ctx)
	if err != nil {
		return nil, err
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	result := rec.Result()
	defer result.Body.Close()

	headers := make(map[string]string, len(result.Header))
	for name, values := range result.Header {
		headers[name] = strings.Join(values, ", ")
	}

	return &Response{
		StatusCode: result.StatusCode,
		Headers:    headers,
		Body:       rec.Body.String(),
	}, nil
}

func (e Event) request(ctx context.Context) (*http.Request, error) {
	method := strings.ToUpper(e.HTTPMethod)
	if method == "" {
		method = http.MethodGet
	}

	path := e.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	query := url.Values{}
	for k, v := range e.QueryStringParameters {
		query.Set(k, v)
	}
	target := &url.URL{Path: path, RawQuery: query.Encode()}

	body := e.Body
	if e.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(e.Body)
		if err != nil {
			return nil, errors.Wrap(err, "decode base64 body")
		}
		body = string(decoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s request", method, path)
	}
	for k, v := range e.Headers {
		req.Header.Set(k, v)
	}
	if body != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "127.0.0.1:0"

	return req, nil
}
