package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entrevista-ai/internal/config"
	"entrevista-ai/internal/interview"
	"entrevista-ai/internal/metrics"
)

type stubEvaluator struct{}

func (stubEvaluator) GenerateQuestions(ctx context.Context, area, experienceLevel string, count int) []string {
	return []string{"P1?", "P2?", "P3?"}
}

func (stubEvaluator) EvaluateAnswer(ctx context.Context, question, answerText, area string) interview.Feedback {
	return interview.Feedback{
		Score:        75,
		Strengths:    []string{"Clareza"},
		Improvements: []string{"Exemplos"},
		Overall:      "Resposta avaliada",
	}
}

func (stubEvaluator) GenerateFollowUp(ctx context.Context, previousQuestion, candidateAnswer, area string) (string, error) {
	return "Pode detalhar?", nil
}

func newTestApp() *fiber.App {
	cfg := &config.Config{
		Interview: config.InterviewSettings{QuickQuestionCount: 3, CompleteQuestionCount: 10},
		Speech:    config.SpeechSettings{Locale: "pt-BR"},
		Session:   config.SessionSettings{CleanupIntervalMinutes: 60, InactiveTTLHours: 24},
	}
	server := config.ServerConfig{
		ReadTimeout:   5 * time.Second,
		WriteTimeout:  5 * time.Second,
		MaxUploadSize: 1024 * 1024,
		UploadPath:    "uploads",
	}
	handler := NewHandler(cfg, server, stubEvaluator{}, metrics.NewMetrics(), nil, true)
	return New(server, handler)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions", fiber.Map{
		"mode":             "quick",
		"area":             "Desenvolvedor Backend",
		"experience_level": "Pleno",
		"candidate_name":   "Ana",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	id, ok := body["session_id"].(string)
	require.True(t, ok)
	return id
}

func TestCreateSession(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions", fiber.Map{
		"mode":             "quick",
		"area":             "Desenvolvedor Backend",
		"experience_level": "Pleno",
		"candidate_name":   "Ana",
	})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "active", body["state"])
	assert.Equal(t, true, body["offline_mode"])

	question, ok := body["question"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "P1?", question["text"])
}

func TestCreateSession_IncompleteConfig(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions", fiber.Map{
		"mode": "quick",
		"area": "Desenvolvedor Backend",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "obrigatórios")
}

func TestCreateSession_UnknownMode(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/sessions", fiber.Map{
		"mode":             "marathon",
		"area":             "QA",
		"experience_level": "Pleno",
		"candidate_name":   "Ana",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetSession(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/sessions/"+id, nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	status, ok := body["status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "active", status["state"])
	assert.Equal(t, float64(3), status["target_questions"])
}

func TestGetSession_NotFound(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/sessions/inexistente", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "não encontrada")
}

func TestSubmitAnswer(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/answers", fiber.Map{
		"answer": "Minha resposta elaborada sobre o projeto",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	feedback, ok := body["feedback"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(75), feedback["score"])
}

func TestSubmitAnswer_Empty(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/answers", fiber.Map{
		"answer": "   ",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "vazia")
}

func TestSubmitAnswer_TwiceIsConflict(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/answers", fiber.Map{
		"answer": "Primeira resposta",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/answers", fiber.Map{
		"answer": "Segunda resposta",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdvance_WithoutAnswerIsConflict(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/advance", nil)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAdvance_ReturnsNextQuestion(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/answers", fiber.Map{
		"answer": "Resposta um",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/advance", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["completed"])
	question, ok := body["question"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "P2?", question["text"])
}

func TestSummary_BeforeCompletionIsConflict(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/sessions/"+id+"/summary", nil)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestPushTranscript_WithoutActiveCapture(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/transcript", fiber.Map{
		"text":  "fragmento perdido",
		"final": true,
	})

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "captura")
}

func TestRecordingLifecycle(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/recording/start", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["recording"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/transcript", fiber.Map{
		"text":  "minha resposta falada",
		"final": true,
	})
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+id+"/recording/stop", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["recording"])
}

func TestDeleteSession(t *testing.T) {
	app := newTestApp()
	id := createSession(t, app)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp()
	createSession(t, app)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/metrics", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["sessions_started"])
	assert.Equal(t, float64(1), body["questions_asked"])
}
