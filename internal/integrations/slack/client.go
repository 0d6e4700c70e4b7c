package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"

	"es-update-notifier/internal/domain"
)

// APIError is a chat.postMessage response with ok=false. Code is the Slack
// error string, e.g. "invalid_auth" or "channel_not_found".
type APIError struct {
	Code string
	Err  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack: post message failed: %s", e.Code)
}

func (e *APIError) ErrorCode() string {
	return e.Code
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client posts update notifications to Slack.
type Client struct {
	apiURL     string
	httpClient *http.Client
	api        *slackapi.Client
}

type Option func(*Client)

// WithAPIURL points the client at a different Slack Web API base URL.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		c.apiURL = strings.TrimSpace(apiURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a Client authenticated with a bot token.
func New(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("slack: token must not be empty")
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	apiOpts := []slackapi.Option{}
	if c.httpClient != nil {
		apiOpts = append(apiOpts, slackapi.OptionHTTPClient(c.httpClient))
	}
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slackapi.OptionAPIURL(strings.TrimRight(c.apiURL, "/")+"/"))
	}
	c.api = slackapi.New(token, apiOpts...)
	return c, nil
}

// Send posts one notification to its channel.
func (c *Client) Send(ctx context.Context, n domain.Notification) error {
	if c.api == nil {
		return errors.New("slack: client not initialized")
	}
	channel := strings.TrimSpace(n.Channel)
	if channel == "" {
		return errors.New("slack: channel must not be empty")
	}

	_, _, err := c.api.PostMessageContext(ctx, channel, slackapi.MsgOptionBlocks(Blocks(n)...))
	if err != nil {
		var resp slackapi.SlackErrorResponse
		if errors.As(err, &resp) {
			return &APIError{Code: resp.Err, Err: err}
		}
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}
