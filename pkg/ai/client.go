package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rpg-engine/shared/models"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

// fallbackEncoding is used for token accounting when the model is unknown
// to tiktoken (e.g. OpenRouter model slugs).
const fallbackEncoding = "cl100k_base"

// Client wraps an OpenAI-compatible chat completion endpoint with bounded
// retries. It is safe for concurrent use.
type Client struct {
	client         *openai.Client
	modelName      string
	timeout        time.Duration
	maxAttempts    int
	baseRetryDelay time.Duration
	maxTokens      int
	encoder        *tiktoken.Tiktoken
}

// Config holds the settings for the chat client.
type Config struct {
	APIKey         string
	BaseURL        string
	ModelName      string
	Timeout        time.Duration
	MaxAttempts    int
	BaseRetryDelay time.Duration
	MaxTokens      int
}

// New creates a chat client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not set")
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseRetryDelay <= 0 {
		cfg.BaseRetryDelay = time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1400
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	encoder, err := tiktoken.EncodingForModel(cfg.ModelName)
	if err != nil {
		log.Warn().Str("model", cfg.ModelName).Msg("No tiktoken encoding for model, falling back to cl100k_base")
		encoder, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load tiktoken encoding: %w", err)
		}
	}

	return &Client{
		client:         openai.NewClientWithConfig(clientConfig),
		modelName:      cfg.ModelName,
		timeout:        cfg.Timeout,
		maxAttempts:    cfg.MaxAttempts,
		baseRetryDelay: cfg.BaseRetryDelay,
		maxTokens:      cfg.MaxTokens,
		encoder:        encoder,
	}, nil
}

// Chat sends the conversation to the model and returns the raw reply text.
// Transport errors and empty replies are retried up to MaxAttempts with a
// linearly growing delay; the reply content itself is never validated here.
func (c *Client) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.modelName,
		Messages:    toOpenAIMessages(messages),
		Temperature: 1,
		MaxTokens:   c.maxTokens,
		TopP:        1,
	}

	promptTokens := c.countTokens(messages)

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		start := time.Now()
		resp, err := c.client.CreateChatCompletion(ctx, req)
		duration := time.Since(start)

		if err != nil {
			lastErr = err
			chatRequestsTotal.WithLabelValues(c.modelName, statusError).Inc()
			log.Error().Err(err).Int("attempt", attempt).Msg("Chat completion request failed")
			if attempt < c.maxAttempts {
				select {
				case <-time.After(time.Duration(attempt) * c.baseRetryDelay):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
			continue
		}

		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			lastErr = errors.New("empty response from API")
			chatRequestsTotal.WithLabelValues(c.modelName, statusError).Inc()
			log.Warn().Int("attempt", attempt).Msg("Empty chat completion response")
			if attempt < c.maxAttempts {
				select {
				case <-time.After(time.Duration(attempt) * c.baseRetryDelay):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
			continue
		}

		content := resp.Choices[0].Message.Content
		chatRequestsTotal.WithLabelValues(c.modelName, statusSuccess).Inc()
		chatRequestDuration.WithLabelValues(c.modelName).Observe(duration.Seconds())
		chatTokensTotal.WithLabelValues(c.modelName, "prompt").Add(float64(promptTokens))
		chatTokensTotal.WithLabelValues(c.modelName, "completion").Add(float64(len(c.encoder.Encode(content, nil, nil))))

		log.Debug().
			Str("model", c.modelName).
			Int("attempt", attempt).
			Int("prompt_tokens", promptTokens).
			Dur("duration", duration).
			Msg("Chat completion succeeded")

		return content, nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) countTokens(messages []models.ChatMessage) int {
	total := 0
	for _, m := range messages {
		total += len(c.encoder.Encode(m.Content, nil, nil))
	}
	return total
}

func toOpenAIMessages(messages []models.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
