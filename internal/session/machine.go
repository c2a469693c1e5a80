// Package session implementa a máquina de estados da entrevista:
// loading-questions -> active (em ciclo por pergunta) -> completed.
// A sessão é a única dona de questions/answers; tudo é apenas acrescentado,
// nunca alterado depois de criado.
package session

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"entrevista-ai/internal/interview"
	"entrevista-ai/internal/metrics"
	"entrevista-ai/internal/speech"
)

const maxAnswerLength = 4000

// Evaluator é o contrato do serviço de avaliação consumido pela sessão
type Evaluator interface {
	GenerateQuestions(ctx context.Context, area, experienceLevel string, count int) []string
	EvaluateAnswer(ctx context.Context, question, answerText, area string) interview.Feedback
	GenerateFollowUp(ctx context.Context, previousQuestion, candidateAnswer, area string) (string, error)
}

// Session é uma sessão de entrevista em andamento
type Session struct {
	ID     string
	Config interview.Config

	mu            sync.Mutex
	state         State
	questions     []interview.Question
	answers       []interview.Answer
	currentIndex  int
	target        int
	processing    bool
	recording     bool
	currentAnswer string
	lastInterim   string
	startedAt     time.Time
	lastActivity  time.Time

	evaluator  Evaluator
	recognizer speech.Recognizer
	speaker    speech.Speaker
	locale     string
	metrics    *metrics.Metrics
}

// New cria uma sessão no estado loading-questions. target é fixado pelo
// modo e não muda durante a sessão.
func New(cfg interview.Config, target int, eval Evaluator, recognizer speech.Recognizer, speaker speech.Speaker, locale string, m *metrics.Metrics) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.New().String(),
		Config:       cfg,
		state:        StateLoadingQuestions,
		target:       target,
		evaluator:    eval,
		recognizer:   recognizer,
		speaker:      speaker,
		locale:       locale,
		metrics:      m,
		startedAt:    now,
		lastActivity: now,
	}
}

// Begin carrega as perguntas iniciais e ativa a sessão. O carregamento
// nunca falha para fora: qualquer problema já degradou para o banco fixo
// dentro do serviço de avaliação.
func (s *Session) Begin(ctx context.Context) interview.Question {
	s.metrics.IncrementSessionsStarted()

	texts := s.evaluator.GenerateQuestions(ctx, s.Config.Area, s.Config.ExperienceLevel, s.target)
	if len(texts) == 0 {
		// O serviço degrada para o banco fixo, mas a sessão não depende disso
		texts = []string{fmt.Sprintf("Fale um pouco sobre você e sua trajetória na área de %s.", s.Config.Area)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, text := range texts {
		category := interview.CategoryGeneral
		if i == 0 {
			category = interview.CategoryIntro
		}
		s.questions = append(s.questions, interview.Question{
			ID:       i + 1,
			Text:     text,
			Category: category,
		})
	}

	s.state = StateActive
	s.currentIndex = 0
	s.lastActivity = time.Now()
	s.metrics.IncrementQuestionsAsked()

	first := s.questions[0]
	s.speak(first.Text)
	return first
}

// SubmitAnswer envia a resposta da pergunta atual para avaliação e registra
// o Answer com feedback. O texto pendente fica congelado enquanto a
// avaliação está em andamento.
func (s *Session) SubmitAnswer(ctx context.Context, text string) (interview.Feedback, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return interview.Feedback{}, ErrNotActive
	}
	if s.processing {
		s.mu.Unlock()
		return interview.Feedback{}, ErrProcessing
	}
	if len(s.answers) > s.currentIndex {
		s.mu.Unlock()
		return interview.Feedback{}, ErrAlreadyAnswered
	}

	answerText := strings.TrimSpace(text)
	if answerText == "" {
		// Sem texto explícito, vale a transcrição acumulada da captura
		answerText = strings.TrimSpace(s.currentAnswer)
	}
	if err := validateAnswer(answerText); err != nil {
		s.mu.Unlock()
		return interview.Feedback{}, err
	}

	question := s.questions[s.currentIndex]
	s.processing = true
	s.lastActivity = time.Now()
	s.mu.Unlock()

	// Chamada de rede fora do lock; o flag processing impede reentrância
	feedback := s.evaluator.EvaluateAnswer(ctx, question.Text, answerText, s.Config.Area)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers = append(s.answers, interview.Answer{
		QuestionID: question.ID,
		Text:       answerText,
		Feedback:   feedback,
	})
	s.currentAnswer = ""
	s.lastInterim = ""
	s.processing = false
	s.lastActivity = time.Now()
	return feedback, nil
}

// Advance decide a origem da próxima pergunta:
//  1. próxima pergunta pré-existente, se houver e o orçamento permitir;
//  2. follow-up gerado sob demanda, se o orçamento permitir mas não houver
//     pergunta pronta — falha de transporte aqui encerra a sessão;
//  3. encerramento da sessão.
//
// Devolve a próxima pergunta ou nil quando a sessão foi concluída.
func (s *Session) Advance(ctx context.Context) (*interview.Question, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return nil, ErrNotActive
	}
	if s.processing {
		s.mu.Unlock()
		return nil, ErrProcessing
	}
	if len(s.answers) <= s.currentIndex {
		s.mu.Unlock()
		return nil, ErrPendingAnswer
	}

	next := s.currentIndex + 1

	// Regra 1: pergunta pré-existente dentro do orçamento
	if next < s.target && next < len(s.questions) {
		s.currentIndex = next
		s.lastActivity = time.Now()
		s.metrics.IncrementQuestionsAsked()
		question := s.questions[next]
		s.speak(question.Text)
		s.mu.Unlock()
		return &question, nil
	}

	// Regra 3: orçamento esgotado
	if next >= s.target {
		s.completeLocked()
		s.mu.Unlock()
		return nil, nil
	}

	// Regra 2: orçamento disponível sem pergunta pronta -> follow-up
	last := s.answers[len(s.answers)-1]
	previousQuestion := s.questions[s.currentIndex].Text
	s.processing = true
	s.mu.Unlock()

	followUp, err := s.evaluator.GenerateFollowUp(ctx, previousQuestion, last.Text, s.Config.Area)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false

	if err != nil {
		// Única falha que muda a forma da sessão: encerramento antecipado
		s.completeLocked()
		return nil, nil
	}

	question := interview.Question{
		ID:       len(s.questions) + 1,
		Text:     followUp,
		Category: interview.CategoryFollowUp,
	}
	s.questions = append(s.questions, question)
	s.currentIndex = next
	s.lastActivity = time.Now()
	s.metrics.IncrementQuestionsAsked()
	s.speak(question.Text)
	return &question, nil
}

// completeLocked encerra a sessão; chamar com o lock adquirido
func (s *Session) completeLocked() {
	s.state = StateCompleted
	s.lastActivity = time.Now()
	s.metrics.IncrementSessionsCompleted()
	if s.recognizer != nil {
		// Teardown da captura; Stop é idempotente
		s.recognizer.Stop()
	}
	s.recording = false
}

// Summary devolve o resumo da sessão concluída
func (s *Session) Summary() (interview.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return interview.Summary{}, ErrNotCompleted
	}

	return interview.Summary{
		SessionID:       s.ID,
		CandidateName:   s.Config.CandidateName,
		Area:            s.Config.Area,
		ExperienceLevel: s.Config.ExperienceLevel,
		AnsweredCount:   len(s.answers),
		AverageScore:    averageScore(s.answers),
		Timestamp:       s.startedAt.Format(time.RFC3339),
	}, nil
}

// averageScore é a média aritmética dos scores, arredondada; 0 sem respostas
func averageScore(answers []interview.Answer) int {
	if len(answers) == 0 {
		return 0
	}
	sum := 0
	for _, answer := range answers {
		sum += answer.Feedback.Score
	}
	return int(math.Round(float64(sum) / float64(len(answers))))
}

// StartRecording sonda o microfone, inicia a captura e consome os
// fragmentos em segundo plano até o encerramento da captura.
func (s *Session) StartRecording(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return ErrNotActive
	}
	if s.recognizer == nil {
		s.mu.Unlock()
		return ErrNoRecognizer
	}
	s.mu.Unlock()

	if err := s.recognizer.Start(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.recording = true
	s.lastActivity = time.Now()
	fragments := s.recognizer.Fragments()
	s.mu.Unlock()

	go func() {
		// Fragmentos finais são aplicados na ordem de emissão
		for fragment := range fragments {
			s.applyFragment(fragment)
		}
		s.mu.Lock()
		s.recording = false
		s.mu.Unlock()
	}()

	return nil
}

// StopRecording encerra a captura; seguro chamar sem captura ativa
func (s *Session) StopRecording() {
	if s.recognizer != nil {
		s.recognizer.Stop()
	}
}

// applyFragment acrescenta fragmentos finais à resposta pendente. Com uma
// submissão em processamento o texto está congelado e o fragmento é
// descartado; fragmentos parciais só atualizam a exibição.
func (s *Session) applyFragment(fragment speech.Fragment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fragment.Final {
		s.lastInterim = fragment.Text
		return
	}
	if s.processing || s.state != StateActive {
		return
	}

	text := strings.TrimSpace(fragment.Text)
	if text == "" {
		return
	}
	if s.currentAnswer != "" {
		s.currentAnswer += " "
	}
	s.currentAnswer += text
	s.lastInterim = ""
}

// CurrentQuestion devolve a pergunta atual; false quando não há (sessão
// carregando ou concluída)
func (s *Session) CurrentQuestion() (interview.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive || s.currentIndex >= len(s.questions) {
		return interview.Question{}, false
	}
	return s.questions[s.currentIndex], true
}

// Answers devolve uma cópia do histórico de respostas
func (s *Session) Answers() []interview.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]interview.Answer(nil), s.answers...)
}

// Questions devolve uma cópia da sequência de perguntas
func (s *Session) Questions() []interview.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]interview.Question(nil), s.questions...)
}

// State devolve o estado atual
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status devolve a visão somente leitura da sessão
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Status{
		SessionID:       s.ID,
		State:           s.state,
		CurrentIndex:    s.currentIndex,
		QuestionCount:   len(s.questions),
		AnsweredCount:   len(s.answers),
		TargetQuestions: s.target,
		Processing:      s.processing,
		Recording:       s.recording,
		PendingAnswer:   s.currentAnswer,
		LastInterim:     s.lastInterim,
	}
}

// LastActivity informa o instante da última interação (limpeza de sessões)
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Teardown descarta a sessão, encerrando a captura pendente
func (s *Session) Teardown() {
	s.StopRecording()
}

// speak reproduz a pergunta; fire-and-forget, chamar com o lock adquirido
func (s *Session) speak(text string) {
	if s.speaker != nil {
		s.speaker.Speak(text, s.locale)
	}
}

// validateAnswer aplica as regras locais de entrada do usuário
func validateAnswer(text string) error {
	if text == "" {
		return ErrEmptyAnswer
	}
	if len(text) > maxAnswerLength {
		return fmt.Errorf("resposta muito longa (máximo %d caracteres)", maxAnswerLength)
	}
	// Rejeita sequências dominadas por um único caractere repetido
	if len(text) > 10 && strings.Count(text, text[:1]) > len(text)*8/10 {
		return fmt.Errorf("a resposta contém caracteres repetidos demais")
	}
	return nil
}
