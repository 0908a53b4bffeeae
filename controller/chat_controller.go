package controller

import (
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/lab-tutor-gateway/middleware"
	"github.com/SaiNageswarS/lab-tutor-gateway/model"
	"github.com/SaiNageswarS/lab-tutor-gateway/tutor"
	"go.uber.org/zap"
)

// ChatController handles learner questions for the lab tutor.
type ChatController struct {
	orchestrator *tutor.Orchestrator
	pipeline     *middleware.Pipeline
}

func ProvideChatController(orchestrator *tutor.Orchestrator, pipeline *middleware.Pipeline) *ChatController {
	return &ChatController{
		orchestrator: orchestrator,
		pipeline:     pipeline,
	}
}

// HandleChat answers with either a tutoring response, the redirect message
// (relevant=false), or a 500 when the completion service failed.
func (c *ChatController) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode request", zap.Error(err))
		writeDetail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := c.orchestrator.Chat(r.Context(), req)
	if err != nil {
		logger.Error("Failed to process chat", zap.String("skill", req.Skill), zap.String("labId", req.LabID), zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Error processing request")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (c *ChatController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/chat",
			Method:  http.MethodPost,
			Handler: c.pipeline.Wrap("/chat", c.HandleChat),
		},
	}
}
