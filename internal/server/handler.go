package server

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"entrevista-ai/internal/config"
	"entrevista-ai/internal/interview"
	"entrevista-ai/internal/jobdesc"
	"entrevista-ai/internal/metrics"
	"entrevista-ai/internal/session"
	"entrevista-ai/internal/speech"
	"entrevista-ai/internal/storage"
)

// sessionEntry guarda a sessão e o relay de captura associado a ela
type sessionEntry struct {
	sess  *session.Session
	relay *speech.Relay
}

// Handler expõe a máquina de sessão pela API HTTP e mantém o mapa de
// sessões ativas
type Handler struct {
	cfg           *config.Config
	server        config.ServerConfig
	evaluator     session.Evaluator
	metrics       *metrics.Metrics
	speaker       speech.Speaker
	offlineMode   bool
	validate      *validator.Validate
	sessions      map[string]*sessionEntry
	sessionsMutex sync.RWMutex
}

// NewHandler cria o handler e inicia a limpeza periódica de sessões
func NewHandler(cfg *config.Config, server config.ServerConfig, eval session.Evaluator, m *metrics.Metrics, speaker speech.Speaker, offlineMode bool) *Handler {
	h := &Handler{
		cfg:         cfg,
		server:      server,
		evaluator:   eval,
		metrics:     m,
		speaker:     speaker,
		offlineMode: offlineMode,
		validate:    validator.New(),
		sessions:    make(map[string]*sessionEntry),
	}
	h.startSessionCleanup()
	return h
}

func (h *Handler) startSessionCleanup() {
	interval := time.Duration(h.cfg.Session.CleanupIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			h.cleanupInactiveSessions()
		}
	}()
}

func (h *Handler) cleanupInactiveSessions() {
	h.sessionsMutex.Lock()
	defer h.sessionsMutex.Unlock()

	cutoff := time.Now().Add(-time.Duration(h.cfg.Session.InactiveTTLHours) * time.Hour)
	for id, entry := range h.sessions {
		if entry.sess.LastActivity().Before(cutoff) {
			entry.sess.Teardown()
			delete(h.sessions, id)
		}
	}
}

// HandleCreateSession trata POST /sessions: valida a configuração, carrega
// as perguntas iniciais e ativa a sessão. O carregamento nunca falha para
// fora — em falha remota a sessão começa com o banco fixo de perguntas.
func (h *Handler) HandleCreateSession(c *fiber.Ctx) error {
	var cfg interview.Config
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "corpo da requisição inválido",
		})
	}

	if err := h.validate.Struct(cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "configuração da entrevista incompleta: mode, area, experience_level e candidate_name são obrigatórios",
		})
	}

	relay := speech.NewRelay(nil)
	sess := session.New(
		cfg,
		h.cfg.TargetQuestions(cfg.Mode),
		h.evaluator,
		relay,
		h.speaker,
		h.cfg.Speech.Locale,
		h.metrics,
	)

	first := sess.Begin(c.UserContext())

	h.sessionsMutex.Lock()
	h.sessions[sess.ID] = &sessionEntry{sess: sess, relay: relay}
	h.sessionsMutex.Unlock()

	log.Printf("✅ Sessão %s iniciada (%s, %s)", sess.ID, cfg.Area, cfg.Mode)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id":   sess.ID,
		"state":        sess.State(),
		"question":     first,
		"offline_mode": h.offlineMode,
	})
}

// HandleGetSession trata GET /sessions/:id
func (h *Handler) HandleGetSession(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	response := fiber.Map{
		"status":       entry.sess.Status(),
		"offline_mode": h.offlineMode,
	}
	if question, ok := entry.sess.CurrentQuestion(); ok {
		response["question"] = question
	}
	return c.JSON(response)
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// HandleSubmitAnswer trata POST /sessions/:id/answers
func (h *Handler) HandleSubmitAnswer(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "corpo da requisição inválido",
		})
	}

	feedback, err := entry.sess.SubmitAnswer(c.UserContext(), req.Answer)
	if err != nil {
		return sessionErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"feedback": feedback,
	})
}

// HandleAdvance trata POST /sessions/:id/advance: avança para a próxima
// pergunta ou conclui a sessão
func (h *Handler) HandleAdvance(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	question, err := entry.sess.Advance(c.UserContext())
	if err != nil {
		return sessionErrorResponse(c, err)
	}

	if question == nil {
		summary, err := entry.sess.Summary()
		if err != nil {
			return sessionErrorResponse(c, err)
		}
		h.exportRecord(entry.sess, summary)
		return c.JSON(fiber.Map{
			"completed": true,
			"summary":   summary,
		})
	}

	return c.JSON(fiber.Map{
		"completed": false,
		"question":  question,
	})
}

// HandleSummary trata GET /sessions/:id/summary
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	summary, err := entry.sess.Summary()
	if err != nil {
		return sessionErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"summary": summary,
		"answers": entry.sess.Answers(),
	})
}

// HandleDeleteSession trata DELETE /sessions/:id (retorno à configuração):
// descarta todo o estado da sessão
func (h *Handler) HandleDeleteSession(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	entry.sess.Teardown()

	h.sessionsMutex.Lock()
	delete(h.sessions, entry.sess.ID)
	h.sessionsMutex.Unlock()

	log.Printf("🗑️ Sessão %s descartada", entry.sess.ID)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleStartRecording trata POST /sessions/:id/recording/start
func (h *Handler) HandleStartRecording(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	if err := entry.sess.StartRecording(c.UserContext()); err != nil {
		var captureErr *speech.CaptureError
		if errors.As(err, &captureErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": captureErr.UserMessage(),
				"cause": captureErr.Cause,
			})
		}
		return sessionErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{"recording": true})
}

// HandleStopRecording trata POST /sessions/:id/recording/stop; seguro
// chamar sem captura ativa
func (h *Handler) HandleStopRecording(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	entry.sess.StopRecording()
	return c.JSON(fiber.Map{"recording": false})
}

// HandlePushTranscript trata POST /sessions/:id/transcript: o cliente faz
// o reconhecimento de fala e repassa os fragmentos
func (h *Handler) HandlePushTranscript(c *fiber.Ctx) error {
	entry, err := h.getSession(c)
	if err != nil {
		return err
	}

	var fragment speech.Fragment
	if err := c.BodyParser(&fragment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "corpo da requisição inválido",
		})
	}

	if !entry.relay.Push(fragment) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "não há captura de voz ativa nesta sessão",
		})
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// HandleUploadJobDescription trata POST /job-description: recebe um PDF e
// devolve o texto extraído para preencher job_description
func (h *Handler) HandleUploadJobDescription(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "envie o PDF no campo 'file'",
		})
	}

	if file.Size > h.server.MaxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("arquivo muito grande (máximo %d bytes)", h.server.MaxUploadSize),
		})
	}

	if err := os.MkdirAll(h.server.UploadPath, 0755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "erro ao preparar o diretório de upload",
		})
	}

	path := filepath.Join(h.server.UploadPath, uuid.New().String()+".pdf")
	if err := c.SaveFile(file, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "erro ao salvar o arquivo",
		})
	}
	defer os.Remove(path)

	text, err := jobdesc.ExtractText(path)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("não foi possível extrair o texto: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"job_description": text,
	})
}

// HandleMetrics trata GET /metrics
func (h *Handler) HandleMetrics(c *fiber.Ctx) error {
	snapshot := h.metrics.GetSnapshot()
	return c.JSON(fiber.Map{
		"sessions_started":    snapshot.SessionsStarted,
		"sessions_completed":  snapshot.SessionsCompleted,
		"questions_asked":     snapshot.QuestionsAsked,
		"answers_evaluated":   snapshot.AnswersEvaluated,
		"api_calls_total":     snapshot.APICallsTotal,
		"api_calls_succeeded": snapshot.APICallsSucceeded,
		"fallbacks_used":      snapshot.FallbacksUsed,
	})
}

// getSession resolve a sessão do parâmetro :id
func (h *Handler) getSession(c *fiber.Ctx) (*sessionEntry, error) {
	id := c.Params("id")

	h.sessionsMutex.RLock()
	entry, exists := h.sessions[id]
	h.sessionsMutex.RUnlock()

	if !exists {
		// O customErrorHandler converte em resposta JSON
		return nil, fiber.NewError(fiber.StatusNotFound, "sessão não encontrada")
	}
	return entry, nil
}

// exportRecord grava o artefato de exportação da entrevista concluída
func (h *Handler) exportRecord(sess *session.Session, summary interview.Summary) {
	record := &storage.Record{
		Summary:   summary,
		Questions: sess.Questions(),
		Answers:   sess.Answers(),
	}
	if err := storage.SaveRecord(record); err != nil {
		log.Printf("⚠️ Erro ao exportar o resultado da sessão %s: %v", sess.ID, err)
		return
	}
	log.Printf("💾 Resultado da sessão %s exportado", sess.ID)
}

// sessionErrorResponse converte os erros da máquina de sessão em respostas
// HTTP com mensagem para o usuário
func sessionErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, session.ErrProcessing),
		errors.Is(err, session.ErrAlreadyAnswered),
		errors.Is(err, session.ErrNotActive),
		errors.Is(err, session.ErrNotCompleted),
		errors.Is(err, session.ErrPendingAnswer):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
