// Package client talks to a running shortsgen server on behalf of the terminal view.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/donovanhide/eventsource"

	"github.com/shortsgen/backend/internal/models"
)

// ErrStreamEnded indicates the server closed the progress stream without a terminal event.
var ErrStreamEnded = errors.New("progress stream ended without a result")

// APIError is a non-200 response carrying the server's error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the generate and status endpoints using a copied session cookie.
type Client struct {
	baseURL string
	cookie  *http.Cookie
	http    *http.Client
}

// New constructs a client. httpClient may be nil. The client sets no overall timeout because
// the progress stream lasts for the whole run.
func New(baseURL, cookieName, cookieValue string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	var cookie *http.Cookie
	if cookieValue != "" {
		cookie = &http.Cookie{Name: cookieName, Value: cookieValue}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cookie:  cookie,
		http:    httpClient,
	}
}

// Status reports whether the server considers the session authenticated.
func (c *Client) Status(ctx context.Context) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/status", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, readAPIError(resp)
	}

	var body struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode status: %w", err)
	}
	return body.Authenticated, nil
}

// Generate submits topic and invokes onEvent for every progress event in order. It returns the
// terminal event, or an error when the request is rejected, the run reports an error, or the
// stream ends early.
func (c *Client) Generate(ctx context.Context, topic string, onEvent func(models.Event)) (models.Event, error) {
	payload, err := json.Marshal(models.GenerationRequest{Topic: topic})
	if err != nil {
		return models.Event{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/generate", bytes.NewReader(payload))
	if err != nil {
		return models.Event{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to start generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Event{}, readAPIError(resp)
	}

	dec := eventsource.NewDecoder(resp.Body)
	for {
		raw, err := dec.Decode()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return models.Event{}, ErrStreamEnded
			}
			return models.Event{}, fmt.Errorf("read progress stream: %w", err)
		}

		var ev models.Event
		if err := json.Unmarshal([]byte(raw.Data()), &ev); err != nil {
			return models.Event{}, fmt.Errorf("decode progress event: %w", err)
		}

		if onEvent != nil {
			onEvent(ev)
		}

		switch {
		case ev.Error != "":
			return ev, errors.New(ev.Error)
		case ev.Terminal():
			return ev, nil
		}
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	return req, nil
}

func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var parsed struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		msg = parsed.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
