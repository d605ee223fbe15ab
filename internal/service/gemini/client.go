package gemini

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"QuantAI/internal/domain/models"
	domsvc "QuantAI/internal/domain/service"
	xhttp "QuantAI/pkg/http"
	applogger "QuantAI/pkg/logger"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-3-flash-preview"
)

// Client implements SignalBackend over the Gemini generateContent REST API.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	policy  *Policy
	http    *xhttp.Client
	l       *applogger.Logger

	// system instructions never change for a loaded policy
	system string
}

// Option configures Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithModel(m string) Option {
	return func(c *Client) {
		if m != "" {
			c.model = m
		}
	}
}

// WithHTTPTimeout bounds a single HTTP exchange.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = xhttp.NewClient(xhttp.WithTimeout(d))
		}
	}
}

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.l = l }
}

// New creates a Gemini backend. The system instructions are rendered once here.
func New(apiKey string, policy *Policy, opts ...Option) (*Client, error) {
	if policy == nil {
		return nil, fmt.Errorf("gemini: policy is required")
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		policy:  policy,
		http:    xhttp.NewClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	system, err := policy.SystemInstruction()
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c.system = system
	return c, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// BuildRequest assembles the request body for one form.
func (c *Client) BuildRequest(in models.UserInput) (*GenerateContentRequest, error) {
	prompt, err := c.policy.Prompt(in)
	if err != nil {
		return nil, err
	}
	return &GenerateContentRequest{
		SystemInstruction: &Content{Parts: []Part{{Text: c.system}}},
		Contents:          []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   ResponseSchema(),
		},
	}, nil
}

// Generate sends the form and returns the model's raw text.
func (c *Client) Generate(ctx context.Context, in models.UserInput) (string, error) {
	body, err := c.BuildRequest(in)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if c.l != nil {
		c.l.Debug("gemini.generate request",
			applogger.String("model", c.model),
			applogger.String("symbol", in.Symbol),
			applogger.String("policy", c.policy.Version()),
			applogger.String("prompt", body.Contents[0].Parts[0].Text),
		)
	}

	var resp GenerateContentResponse
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.endpoint(),
		Headers: map[string]string{
			"Content-Type":   "application/json",
			"x-goog-api-key": c.apiKey,
		},
		Body: body,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", domsvc.ErrEmptyResponse
	}
	return text, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

var _ domsvc.SignalBackend = (*Client)(nil)
