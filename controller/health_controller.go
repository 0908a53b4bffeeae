package controller

import (
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/lab-tutor-gateway/middleware"
)

// healthPattern matches the root path only.
const healthPattern = "/{$}"

type HealthController struct {
	pipeline *middleware.Pipeline
}

func ProvideHealthController(pipeline *middleware.Pipeline) *HealthController {
	return &HealthController{pipeline: pipeline}
}

func (hc *HealthController) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "CodeSafari 101 API is running!"})
}

func (hc *HealthController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: healthPattern,
			Method:  http.MethodGet,
			Handler: hc.pipeline.Wrap("/", hc.HandleHealth),
		},
	}
}
