// Package greeter implements the Lambda functions that answer with a greeting
// for the request path.
package greeter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrMissingPath is returned when the event has no path.
var ErrMissingPath = errors.New("missing field: path")

// Event is the raw invocation payload. Numbers are kept as json.Number so
// the logged event keeps integers beyond float64 precision.
type Event map[string]any

func (e *Event) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*e = m
	return nil
}

// Response is what the API Gateway proxy integration expects back.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

type greetingBody struct {
	Hello string `json:"hello"`
}

func Greeting(path string) string {
	return "Hello World from Python! Handler at " + path
}

type Handler struct {
	log *zap.Logger
}

func NewHandler(log *zap.Logger) *Handler {
	return &Handler{log: log}
}

// Handle logs the event and greets its path. The only failure is a missing
// path, which is returned as is so the runtime reports it.
func (h *Handler) Handle(_ context.Context, event Event) (Response, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return Response{}, fmt.Errorf("encoding event: %w", err)
	}
	h.log.Info("request: " + string(raw))

	v, ok := event["path"]
	if !ok {
		return Response{}, ErrMissingPath
	}
	body, err := json.Marshal(greetingBody{Hello: Greeting(formatPath(v))})
	if err != nil {
		return Response{}, fmt.Errorf("encoding body: %w", err)
	}
	return Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

// formatPath renders a path value the way a Python f-string would for the
// scalar JSON types.
func formatPath(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case nil:
		return "None"
	case bool:
		if p {
			return "True"
		}
		return "False"
	case json.Number:
		return p.String()
	default:
		return fmt.Sprint(p)
	}
}
