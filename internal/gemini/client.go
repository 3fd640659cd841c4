// Package gemini adapts the Google Gen AI SDK to insight.Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini api key is required")

// Config configures the client.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string
}

// Client generates text with a Gemini model.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a client for the Gemini API backend.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Client{client: client, model: cfg.Model, timeout: cfg.Timeout, logger: logger}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one request and returns the response text. It does not retry.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if c.logger != nil {
		c.logger.Debug("gemini response", "model", c.model, "duration", time.Since(start))
	}
	return resp.Text(), nil
}
