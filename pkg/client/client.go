// Package client talks to the powpowerman daemon HTTP API.
package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Client is a struct for communicating with the powpowerman daemon.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient is a constructor for creating a new Client. addr is the
// daemon listen address, e.g. "127.0.0.1:9536".
func NewClient(addr string) *Client {
	return &Client{
		baseURL: "http://" + addr,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send is a method for sending a request to the daemon.
func (c *Client) Send(method string, path string, data string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"data":   data,
		"addr":   c.baseURL,
	}).Debug("sending request")

	req, err := http.NewRequest(method, c.baseURL+path, strings.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if data != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return "", ErrDaemonNotRunning
		}
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.Errorf("failed to close response body: %v", err)
		}
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	body := string(b)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		switch resp.StatusCode {
		case http.StatusForbidden:
			return "", fmt.Errorf("%w: %s", ErrPermissionDenied, body)
		case http.StatusNotFound:
			return "", fmt.Errorf("%w: %s", ErrNotFound, body)
		case http.StatusUnprocessableEntity:
			return "", fmt.Errorf("%w: %s", ErrValueRejected, body)
		}
		return "", fmt.Errorf("got %d: %s", resp.StatusCode, body)
	}

	return body, nil
}

// Get is a method for sending a GET request to the daemon.
func (c *Client) Get(path string) (string, error) {
	return c.Send("GET", path, "")
}

// Put is a method for sending a PUT request to the daemon.
func (c *Client) Put(path string, data string) (string, error) {
	return c.Send("PUT", path, data)
}
