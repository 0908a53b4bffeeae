package tutor

import (
	"context"

	"github.com/SaiNageswarS/go-collection-boot/async"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged turn sent to the completion service.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is the full prompt contract handed to a provider.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionService generates a single answer for a prompt. Implementations
// resolve the returned channel exactly once with the completion text or the
// provider error.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) <-chan async.Result[string]
	Name() string
}
