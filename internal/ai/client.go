// Package ai is the boundary to the external cleaning/charting service: an
// OpenAI-compatible chat-completions API treated as a fallible asynchronous
// black box. The client retries transient failures with capped exponential
// backoff; the callers decide what a response means.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	httpClient       *http.Client
	apiKey           string
	baseURL          string
	model            string
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerateRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type Choice struct {
	Message Message `json:"message"`
}

type GenerateResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
}

// ClientOptions bundles the tunables read from configuration.
type ClientOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	HTTPTimeout time.Duration
	RetryMax    int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// NewClient builds a client with sane fallbacks for any zero option.
func NewClient(opts ClientOptions) *Client {
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = 60 * time.Second
	}
	if opts.RetryMax <= 0 {
		opts.RetryMax = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 4 * time.Second
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	return &Client{
		httpClient:       &http.Client{Timeout: opts.HTTPTimeout},
		apiKey:           opts.APIKey,
		baseURL:          opts.BaseURL,
		model:            opts.Model,
		retryMaxAttempts: opts.RetryMax,
		retryBaseDelay:   opts.BaseDelay,
		retryMaxDelay:    opts.MaxDelay,
	}
}

// Generate calls /chat/completions and returns the parsed response.
// Retries network timeouts, 429s and 5xx responses up to the configured
// attempt count, honoring Retry-After when the provider sends one.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("AI service API key is missing")
	}
	if req.Model == "" {
		req.Model = c.model
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.baseURL + "/chat/completions"

	backoff := c.retryBaseDelay
	var lastErr error
	for attempt := 1; attempt <= c.retryMaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if isRetryableNetErr(err) && attempt < c.retryMaxAttempts {
				lastErr = err
				time.Sleep(c.nextDelay(backoff))
				backoff *= 2
				continue
			}
			return nil, fmt.Errorf("http request: %w", err)
		}

		out, retry, err := c.consume(resp)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !retry || attempt >= c.retryMaxAttempts {
			break
		}
		sleep := c.nextDelay(backoff)
		var rle *RateLimitError
		if errors.As(err, &rle) && rle.RetryAfter > 0 {
			sleep = rle.RetryAfter
		}
		time.Sleep(sleep)
		backoff *= 2
	}
	return nil, lastErr
}

// nextDelay applies jitter and the configured cap to a backoff value. Every
// retry sleep goes through here, whatever triggered the retry.
func (c *Client) nextDelay(backoff time.Duration) time.Duration {
	sleep := withJitter(backoff)
	if c.retryMaxDelay > 0 && sleep > c.retryMaxDelay {
		sleep = c.retryMaxDelay
	}
	return sleep
}

// consume reads one HTTP response, returning (result, retryable, error).
func (c *Client) consume(resp *http.Response) (*GenerateResponse, bool, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		var raw map[string]interface{}
		_ = json.Unmarshal(body, &raw)
		apiErr := &APIError{StatusCode: resp.StatusCode, Raw: raw}
		if v, ok := raw["error"].(map[string]interface{}); ok {
			if msg, ok := v["message"].(string); ok {
				apiErr.Message = msg
			}
			if code, ok := v["code"].(string); ok {
				apiErr.Code = code
			}
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests ||
			(resp.StatusCode >= 500 && resp.StatusCode <= 599)
		return nil, retryable, classifyAPIError(apiErr, resp)
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	return &out, false, nil
}

// content returns the first choice's text, or an error when the service
// answered with an empty response.
func content(resp *GenerateResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("AI service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
