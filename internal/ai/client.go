package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the external generation service. All calls are plain JSON
// POSTs; the service's response body is passed through to the caller
// untouched.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(1).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry once on upstream 5xx only. Client errors and transport
			// failures propagate immediately.
			return err == nil && r.StatusCode() >= 500
		})
	return &Client{http: c}
}

// GenerateTasks asks the service for a task list for the described event.
func (c *Client) GenerateTasks(ctx context.Context, eventInfo map[string]interface{}) (map[string]interface{}, error) {
	return c.post(ctx, "/generate-tasks", eventInfo)
}

// GenerateSchedule asks the service for a schedule for the described event.
func (c *Client) GenerateSchedule(ctx context.Context, eventInfo map[string]interface{}) (map[string]interface{}, error) {
	return c.post(ctx, "/generate-schedule", eventInfo)
}

// GenerateTaskName asks the service to title a task from its description.
func (c *Client) GenerateTaskName(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	return c.post(ctx, "/generate-task-name", payload)
}

func (c *Client) post(ctx context.Context, path string, body map[string]interface{}) (map[string]interface{}, error) {
	var result map[string]interface{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("ai service request to %s failed: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ai service returned %d for %s: %s", resp.StatusCode(), path, resp.String())
	}
	return result, nil
}
