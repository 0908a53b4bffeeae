package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/lab-tutor-gateway/catalog"
	"github.com/SaiNageswarS/lab-tutor-gateway/metrics"
	"github.com/SaiNageswarS/lab-tutor-gateway/middleware"
	"github.com/SaiNageswarS/lab-tutor-gateway/model"
	"github.com/SaiNageswarS/lab-tutor-gateway/tutor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompletion struct {
	answer string
	err    error
	calls  int
}

func (s *stubCompletion) Complete(context.Context, tutor.CompletionRequest) <-chan async.Result[string] {
	s.calls++
	return async.Go(func() (string, error) { return s.answer, s.err })
}

func (s *stubCompletion) Name() string { return "stub" }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	labs, err := catalog.Load()
	require.NoError(t, err)
	return labs
}

func newChatController(t *testing.T, completion *stubCompletion) *ChatController {
	t.Helper()
	orchestrator := tutor.NewOrchestrator(testCatalog(t), tutor.NewScopeGate(tutor.DefaultVocabulary), completion, metrics.Noop{})
	return ProvideChatController(orchestrator, middleware.NewPipeline(nil))
}

func postChat(t *testing.T, c *ChatController, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c.HandleChat(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))
	return rec
}

func TestHandleChat_Relevant(t *testing.T) {
	completion := &stubCompletion{answer: "What does append do to the list?"}
	c := newChatController(t, completion)

	rec := postChat(t, c, `{"question":"What is a list?","skill":"python","lab_id":"python-basics"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Relevant)
	assert.Equal(t, "What does append do to the list?", resp.Response)
	assert.Equal(t, []string{"Lab content"}, resp.Sources)
	assert.Equal(t, 1, completion.calls)
}

func TestHandleChat_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"off-topic", `{"question":"Who won the World Cup?","skill":"python","lab_id":"python-basics"}`},
		{"unknown skill", `{"question":"What is a list?","skill":"ruby","lab_id":"anything"}`},
		{"missing fields", `{"question":"What is a list?"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completion := &stubCompletion{answer: "unused"}
			c := newChatController(t, completion)

			rec := postChat(t, c, tt.body)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"response":"`+tutor.RedirectMessage+`","relevant":false,"sources":null}`, rec.Body.String())
			assert.Zero(t, completion.calls)
		})
	}
}

func TestHandleChat_UpstreamFailure(t *testing.T) {
	c := newChatController(t, &stubCompletion{err: errors.New("invalid api key sk-secret")})

	rec := postChat(t, c, `{"question":"How do I sort a dict?","skill":"python","lab_id":"python-basics"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Error processing request"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "sk-secret")
}

func TestHandleChat_InvalidPayload(t *testing.T) {
	completion := &stubCompletion{}
	c := newChatController(t, completion)

	rec := postChat(t, c, `{"question":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Invalid request payload"}`, rec.Body.String())
	assert.Zero(t, completion.calls)
}

func TestListLabs(t *testing.T) {
	lc := ProvideLabController(testCatalog(t), middleware.NewPipeline(nil))

	rec := httptest.NewRecorder()
	lc.ListLabs(rec, httptest.NewRequest(http.MethodGet, "/labs", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Len(t, got["python"], 3)
	assert.Len(t, got["javascript"], 3)
	assert.Equal(t, "Graph Algorithms & BFS/DFS", got["python"]["python-algorithms"].Title)

	var raw map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw["python"]["python-basics"], "lab_description")
}

func TestGetLab(t *testing.T) {
	lc := ProvideLabController(testCatalog(t), middleware.NewPipeline(nil))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTitle  string
	}{
		{"found", "/labs/javascript/js-algorithms", http.StatusOK, "Data Structures in JavaScript"},
		{"trailing slash", "/labs/python/python-advanced/", http.StatusOK, "Object-Oriented Design Patterns"},
		{"unknown skill", "/labs/ruby/anything", http.StatusNotFound, ""},
		{"unknown lab", "/labs/python/python-expert", http.StatusNotFound, ""},
		{"missing lab id", "/labs/python", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			lc.GetLab(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.JSONEq(t, `{"detail":"Lab not found"}`, rec.Body.String())
				return
			}

			var lab model.LabContent
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lab))
			assert.Equal(t, tt.wantTitle, lab.Title)
			assert.NotEmpty(t, lab.Exercises)
		})
	}
}

func TestGetLab_PathValues(t *testing.T) {
	lc := ProvideLabController(testCatalog(t), middleware.NewPipeline(nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+labDetailPattern, lc.GetLab)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/labs/python/python-basics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Python Fundamentals")
}

func TestListSkills(t *testing.T) {
	lc := ProvideLabController(testCatalog(t), middleware.NewPipeline(nil))

	rec := httptest.NewRecorder()
	lc.ListSkills(rec, httptest.NewRequest(http.MethodGet, "/skills", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.SkillSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "javascript", got[0].Skill)
	assert.Equal(t, model.LabSummary{ID: "js-algorithms", Title: "Data Structures in JavaScript"}, got[0].Labs[0])
	assert.NotContains(t, rec.Body.String(), "reading")
}

func TestHealth(t *testing.T) {
	hc := ProvideHealthController(middleware.NewPipeline(nil))

	rec := httptest.NewRecorder()
	hc.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"CodeSafari 101 API is running!"}`, rec.Body.String())
}

func TestRoutes(t *testing.T) {
	pipeline := middleware.NewPipeline(nil)
	labs := testCatalog(t)
	orchestrator := tutor.NewOrchestrator(labs, tutor.NewScopeGate(tutor.DefaultVocabulary), &stubCompletion{}, nil)

	var routes []server.Route
	routes = append(routes, ProvideHealthController(pipeline).Routes()...)
	routes = append(routes, ProvideLabController(labs, pipeline).Routes()...)
	routes = append(routes, ProvideChatController(orchestrator, pipeline).Routes()...)

	got := map[string]string{}
	for _, r := range routes {
		_, dup := got[r.Pattern]
		require.False(t, dup, "pattern %s registered twice", r.Pattern)
		got[r.Pattern] = r.Method
	}

	assert.Equal(t, map[string]string{
		healthPattern:    http.MethodGet,
		"/labs":          http.MethodGet,
		labDetailPattern: http.MethodGet,
		"/skills":        http.MethodGet,
		"/chat":          http.MethodPost,
	}, got)
}

func TestRoutes_OnServeMux(t *testing.T) {
	pipeline := middleware.NewPipeline(nil)
	labs := testCatalog(t)
	orchestrator := tutor.NewOrchestrator(labs, tutor.NewScopeGate(tutor.DefaultVocabulary), &stubCompletion{answer: "hint"}, nil)

	mux := http.NewServeMux()
	require.NotPanics(t, func() {
		for _, ctrl := range []server.RestController{
			ProvideHealthController(pipeline),
			ProvideLabController(labs, pipeline),
			ProvideChatController(orchestrator, pipeline),
		} {
			for _, r := range ctrl.Routes() {
				mux.Handle(r.Pattern, r.Handler)
			}
		}
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root", "/", http.StatusOK, "CodeSafari 101 API is running!"},
		{"unknown path", "/anything", http.StatusNotFound, ""},
		{"lab detail", "/labs/python/python-basics", http.StatusOK, "Python Fundamentals"},
		{"lab list", "/labs", http.StatusOK, "python-algorithms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusNotFound {
				assert.NotContains(t, rec.Body.String(), "CodeSafari")
			}
		})
	}
}
