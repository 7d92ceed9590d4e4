package lametric

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	devicePort        = 8080
	notificationsPath = "/api/v2/device/notifications"
	tokenHeader       = "X-Access-Token"

	requestTimeout = 2 * time.Second

	// device replies are tiny; anything larger is garbage
	maxResponseBytes = 16 * 1024
)

// HTTPError is a non-2xx response from the device.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("device returned HTTP %d: %s", e.StatusCode, e.Body)
}

// QueuedNotification is one entry of the device's notification queue.
type QueuedNotification struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Created string            `json:"created"`
	Model   NotificationModel `json:"model"`
}

// Client issues requests against a LaMetric device's local HTTP API.
// The device address and key are passed per call so edited settings
// take effect without rebuilding the client.
type Client struct {
	httpClient *http.Client

	// overrides the device address in tests
	baseURL string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) url(ip string) string {
	if c.baseURL != "" {
		return c.baseURL + notificationsPath
	}
	return fmt.Sprintf("http://%s:%d%s", ip, devicePort, notificationsPath)
}

func (c *Client) do(req *http.Request, key string) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set(tokenHeader, key)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "unable to reach device")
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// Send posts a notification and returns the device-assigned id, which
// may be empty on firmwares that reply without a body.
func (c *Client) Send(ctx context.Context, ip, key string, n *Notification) (string, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return "", errors.Wrap(err, "unable to encode notification")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(ip), bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "unable to build request")
	}
	body, err := c.do(req, key)
	if err != nil {
		return "", err
	}
	var result struct {
		Success struct {
			ID string `json:"id"`
		} `json:"success"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		// some firmwares reply with an empty body
		return "", nil
	}
	return result.Success.ID, nil
}

// Dismiss removes a previously posted notification from the device's
// queue.
func (c *Client) Dismiss(ctx context.Context, ip, key, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url(ip)+"/"+id, nil)
	if err != nil {
		return errors.Wrap(err, "unable to build request")
	}
	_, err = c.do(req, key)
	return err
}

// Queued returns the notifications currently queued on the device.
func (c *Client) Queued(ctx context.Context, ip, key string) ([]QueuedNotification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(ip), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build request")
	}
	body, err := c.do(req, key)
	if err != nil {
		return nil, err
	}
	var queued []QueuedNotification
	if err := json.Unmarshal(body, &queued); err != nil {
		return nil, errors.Wrap(err, "unable to parse notification queue")
	}
	return queued, nil
}
