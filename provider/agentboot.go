package provider

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/agent-boot/llm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/lab-tutor-gateway/tutor"
)

// AgentBootClient adapts an agent-boot LLM client to tutor.CompletionService.
// System turns travel as the system prompt option, since agent-boot clients put
// messages on the wire verbatim. Streamed chunks are concatenated into a single
// answer.
type AgentBootClient struct {
	client llm.LLMClient
	name   string
}

func NewAgentBootClient(name string, client llm.LLMClient) *AgentBootClient {
	return &AgentBootClient{client: client, name: name}
}

// NewAnthropicClient reads ANTHROPIC_API_KEY from the environment.
func NewAnthropicClient(model string) *AgentBootClient {
	return NewAgentBootClient("anthropic", llm.NewAnthropicClient(model))
}

func (c *AgentBootClient) Name() string { return c.name }

func (c *AgentBootClient) Complete(ctx context.Context, req tutor.CompletionRequest) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		var system []string
		messages := make([]llm.Message, 0, len(req.Messages))
		for _, m := range req.Messages {
			if m.Role == tutor.RoleSystem {
				system = append(system, m.Content)
				continue
			}
			messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Content})
		}

		opts := []llm.LLMOption{
			llm.WithMaxTokens(req.MaxTokens),
			llm.WithTemperature(req.Temperature),
		}
		if len(system) > 0 {
			opts = append(opts, llm.WithSystemPrompt(strings.Join(system, "\n\n")))
		}

		var answer strings.Builder
		err := c.client.GenerateInference(ctx, messages,
			func(chunk string) error {
				answer.WriteString(chunk)
				return nil
			},
			opts...,
		)
		if err != nil {
			return "", err
		}
		return answer.String(), nil
	})
}
