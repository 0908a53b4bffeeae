package mcp

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/lab-tutor-gateway/catalog"
	"github.com/SaiNageswarS/lab-tutor-gateway/model"
	"github.com/SaiNageswarS/lab-tutor-gateway/tutor"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Implementation identifies the tutor to MCP clients.
var Implementation = &sdkmcp.Implementation{Name: "codesafari-lab-tutor", Version: "v1.0.0"}

type AskInput struct {
	Question string `json:"question" jsonschema:"the learner's question"`
	Skill    string `json:"skill" jsonschema:"skill track, e.g. python or javascript"`
	LabID    string `json:"lab_id" jsonschema:"lab identifier within the skill, e.g. python-basics"`
}

// AskOutput mirrors model.ChatResponse; sources is omitted for rejected
// questions instead of being null.
type AskOutput struct {
	Response string   `json:"response"`
	Relevant bool     `json:"relevant"`
	Sources  []string `json:"sources,omitempty"`
}

type LabInput struct {
	Skill string `json:"skill" jsonschema:"skill track, e.g. python or javascript"`
	LabID string `json:"lab_id" jsonschema:"lab identifier within the skill"`
}

// TutorServer exposes the lab tutor and catalog as MCP tools. It is
// registered with the server builder as an MCP configurator.
type TutorServer struct {
	orchestrator *tutor.Orchestrator
	catalog      *catalog.Catalog
}

func NewTutorServer(orchestrator *tutor.Orchestrator, labs *catalog.Catalog) *TutorServer {
	return &TutorServer{
		orchestrator: orchestrator,
		catalog:      labs,
	}
}

// ConfigureMCP adds the ask_lab_tutor and get_lab tools to s.
func (t *TutorServer) ConfigureMCP(s *sdkmcp.Server) {
	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "ask_lab_tutor",
		Description: "Ask the coding tutor a question about a specific lab. Off-topic questions come back with relevant=false.",
	}, t.askTutor)

	sdkmcp.AddTool(s, &sdkmcp.Tool{
		Name:        "get_lab",
		Description: "Fetch the title, reading, exercises and project brief of a lab.",
	}, t.getLab)
}

func (t *TutorServer) askTutor(ctx context.Context, _ *sdkmcp.CallToolRequest, in AskInput) (*sdkmcp.CallToolResult, AskOutput, error) {
	resp, err := t.orchestrator.Chat(ctx, model.ChatRequest{
		Question: in.Question,
		Skill:    in.Skill,
		LabID:    in.LabID,
	})
	if err != nil {
		logger.Error("MCP chat failed", zap.String("skill", in.Skill), zap.String("labId", in.LabID), zap.Error(err))
		return nil, AskOutput{}, status.Error(codes.Unavailable, "error processing request")
	}
	return nil, AskOutput{Response: resp.Response, Relevant: resp.Relevant, Sources: resp.Sources}, nil
}

func (t *TutorServer) getLab(ctx context.Context, _ *sdkmcp.CallToolRequest, in LabInput) (*sdkmcp.CallToolResult, model.LabContent, error) {
	if in.Skill == "" || in.LabID == "" {
		return nil, model.LabContent{}, status.Error(codes.InvalidArgument, "skill and lab_id are required")
	}

	lab, err := t.catalog.Lab(in.Skill, in.LabID)
	if err != nil {
		return nil, model.LabContent{}, err
	}
	return nil, lab, nil
}
