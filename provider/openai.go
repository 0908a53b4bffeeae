package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/lab-tutor-gateway/tutor"
	"github.com/go-resty/resty/v2"
)

const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient calls the OpenAI chat completions endpoint. It never retries;
// the only deadline is the HTTP client timeout.
type OpenAIClient struct {
	http  *resty.Client
	model string
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	MaxTokens   int                     `json:"max_tokens"`
	Temperature float64                 `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

type openAIErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey)

	return &OpenAIClient{http: client, model: model}
}

func (c *OpenAIClient) Name() string { return "openai" }

func (c *OpenAIClient) Complete(ctx context.Context, req tutor.CompletionRequest) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		body := chatCompletionRequest{
			Model:       c.model,
			Messages:    make([]chatCompletionMessage, 0, len(req.Messages)),
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		}
		for _, m := range req.Messages {
			body.Messages = append(body.Messages, chatCompletionMessage{Role: string(m.Role), Content: m.Content})
		}

		var result chatCompletionResponse
		var apiErr openAIErrorResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(&result).
			SetError(&apiErr).
			Post("/chat/completions")
		if err != nil {
			return "", fmt.Errorf("openai request: %w", err)
		}

		if resp.IsError() {
			if apiErr.Error.Message != "" {
				return "", fmt.Errorf("openai status %d: %s", resp.StatusCode(), apiErr.Error.Message)
			}
			return "", fmt.Errorf("openai status %d", resp.StatusCode())
		}

		if len(result.Choices) == 0 {
			return "", errors.New("openai response has no choices")
		}
		return result.Choices[0].Message.Content, nil
	})
}
