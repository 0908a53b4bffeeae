package tutor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/lab-tutor-gateway/catalog"
	"github.com/SaiNageswarS/lab-tutor-gateway/metrics"
	"github.com/SaiNageswarS/lab-tutor-gateway/model"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// completion parameters, fixed for every admitted question.
const (
	MaxResponseTokens = 400
	Temperature       = 0.7
)

const (
	// RedirectMessage is returned for every question that is not admitted.
	RedirectMessage = "I can only help with questions related to the current lab. Please ask about the lab content, concepts, exercises, or implementation details."

	// LabContentSource is the single citation attached to tutoring answers.
	LabContentSource = "Lab content"
)

// Outcome is the terminal state of a chat request.
type Outcome string

const (
	OutcomeRejected  Outcome = "rejected"
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

var errEmptyCompletion = errors.New("completion returned no text")

// LabSource is the catalog view the orchestrator needs.
type LabSource interface {
	Lookup(skill, labID string) (model.LabContent, bool)
}

// Orchestrator runs a chat request through lookup, scope gate, context
// assembly, prompt construction and a single completion call.
type Orchestrator struct {
	labs       LabSource
	gate       *ScopeGate
	completion CompletionService
	metrics    metrics.ChatMetrics
}

func NewOrchestrator(labs LabSource, gate *ScopeGate, completion CompletionService, m metrics.ChatMetrics) *Orchestrator {
	if m == nil {
		m = metrics.Noop{}
	}
	return &Orchestrator{
		labs:       labs,
		gate:       gate,
		completion: completion,
		metrics:    m,
	}
}

// ProvideOrchestrator wires the orchestrator with the default vocabulary.
func ProvideOrchestrator(labs *catalog.Catalog, completion CompletionService, m *metrics.Prom) *Orchestrator {
	return NewOrchestrator(labs, NewScopeGate(DefaultVocabulary), completion, m)
}

// Chat answers a learner question. Rejections are normal responses with
// Relevant=false; any failure after admission is returned as a single
// status error and never as a partial response.
//
// The completion call is detached from ctx cancellation: a caller that goes
// away does not abort the in-flight request.
func (o *Orchestrator) Chat(ctx context.Context, req model.ChatRequest) (resp *model.ChatResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Chat pipeline panicked", zap.Any("panic", r), zap.String("skill", req.Skill), zap.String("labId", req.LabID))
			o.metrics.IncChatOutcome(string(OutcomeFailed))
			resp, err = nil, status.Errorf(codes.Internal, "chat pipeline: %v", r)
		}
	}()

	if req.Question == "" {
		return o.reject(req, "empty question"), nil
	}

	lab, found := o.labs.Lookup(req.Skill, req.LabID)
	if !found {
		return o.reject(req, "lab not in catalog"), nil
	}

	if !o.gate.IsAdmissible(req.Question, &lab) {
		return o.reject(req, "out of scope"), nil
	}

	completionReq := CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: BuildSystemPrompt(AssembleContext(lab))},
			{Role: RoleUser, Content: req.Question},
		},
		MaxTokens:   MaxResponseTokens,
		Temperature: Temperature,
	}

	started := time.Now()
	answer, err := async.Await(o.completion.Complete(context.WithoutCancel(ctx), completionReq))
	o.metrics.ObserveCompletion(o.completion.Name(), time.Since(started).Seconds())

	if err == nil && strings.TrimSpace(answer) == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		logger.Error("Completion failed",
			zap.String("provider", o.completion.Name()),
			zap.String("skill", req.Skill),
			zap.String("labId", req.LabID),
			zap.Error(err))
		o.metrics.IncChatOutcome(string(OutcomeFailed))
		return nil, status.Errorf(codes.Unavailable, "completion: %v", err)
	}

	logger.Info("Question answered", zap.String("skill", req.Skill), zap.String("labId", req.LabID))
	o.metrics.IncChatOutcome(string(OutcomeCompleted))

	return &model.ChatResponse{
		Response: answer,
		Relevant: true,
		Sources:  []string{LabContentSource},
	}, nil
}

func (o *Orchestrator) reject(req model.ChatRequest, reason string) *model.ChatResponse {
	logger.Info("Question rejected",
		zap.String("reason", reason),
		zap.String("skill", req.Skill),
		zap.String("labId", req.LabID))
	o.metrics.IncChatOutcome(string(OutcomeRejected))

	return &model.ChatResponse{
		Response: RedirectMessage,
		Relevant: false,
	}
}
