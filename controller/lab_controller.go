package controller

import (
	"net/http"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/lab-tutor-gateway/catalog"
	"github.com/SaiNageswarS/lab-tutor-gateway/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const labDetailPattern = "/labs/{skill}/{lab_id}"

// LabController serves the read-only lab catalog.
type LabController struct {
	catalog  *catalog.Catalog
	pipeline *middleware.Pipeline
}

func ProvideLabController(labs *catalog.Catalog, pipeline *middleware.Pipeline) *LabController {
	return &LabController{
		catalog:  labs,
		pipeline: pipeline,
	}
}

// ListLabs returns every lab grouped by skill.
func (lc *LabController) ListLabs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lc.catalog.All())
}

// ListSkills returns lab ids and titles per skill, without reading text.
func (lc *LabController) ListSkills(w http.ResponseWriter, r *http.Request) {
	summaries, err := lc.catalog.Summaries(r.Context())
	if err != nil {
		logger.Error("Failed to summarize catalog", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to list skills")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetLab returns a single lab or 404.
func (lc *LabController) GetLab(w http.ResponseWriter, r *http.Request) {
	skill, labID, ok := labPathParams(r)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Lab not found")
		return
	}

	lab, err := lc.catalog.Lab(skill, labID)
	if status.Code(err) == codes.NotFound {
		writeDetail(w, http.StatusNotFound, "Lab not found")
		return
	}
	if err != nil {
		logger.Error("Failed to look up lab", zap.String("skill", skill), zap.String("labId", labID), zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to load lab")
		return
	}

	writeJSON(w, http.StatusOK, lab)
}

// labPathParams reads {skill} and {lab_id}, falling back to splitting the
// path when the router does not expose path values.
func labPathParams(r *http.Request) (skill, labID string, ok bool) {
	skill, labID = r.PathValue("skill"), r.PathValue("lab_id")
	if skill != "" && labID != "" {
		return skill, labID, true
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/labs/"), "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (lc *LabController) Routes() []server.Route {
	return []server.Route{
		{
			Pattern: "/labs",
			Method:  http.MethodGet,
			Handler: lc.pipeline.Wrap("/labs", lc.ListLabs),
		},
		{
			Pattern: labDetailPattern,
			Method:  http.MethodGet,
			Handler: lc.pipeline.Wrap(labDetailPattern, lc.GetLab),
		},
		{
			Pattern: "/skills",
			Method:  http.MethodGet,
			Handler: lc.pipeline.Wrap("/skills", lc.ListSkills),
		},
	}
}
