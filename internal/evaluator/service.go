// Package evaluator orquestra as idas e voltas ao serviço de linguagem:
// geração de perguntas, avaliação de respostas e geração de follow-ups.
// Toda falha degrada para um fallback local; nada aqui derruba a sessão.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log"

	"entrevista-ai/internal/api"
	"entrevista-ai/internal/heuristic"
	"entrevista-ai/internal/interview"
	"entrevista-ai/internal/metrics"
	"entrevista-ai/internal/parser"
	"entrevista-ai/internal/prompts"
)

// Follow-up genérico usado quando a geração remota não produz pergunta
const genericFollowUp = "Você pode dar um exemplo específico de uma situação em que aplicou essa experiência?"

// ChatCompleter é o contrato mínimo exigido do cliente remoto
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, messages []api.Message) (string, error)
}

// Service encapsula o pipeline prompt -> chamada remota -> parse -> fallback
type Service struct {
	client  ChatCompleter
	metrics *metrics.Metrics
}

// New cria o serviço de avaliação
func New(client ChatCompleter, m *metrics.Metrics) *Service {
	return &Service{
		client:  client,
		metrics: m,
	}
}

// GenerateQuestions devolve até count perguntas para a área informada.
// Em qualquer falha (transporte, parse) devolve o banco fixo de perguntas.
// Nunca retorna erro ao chamador.
func (s *Service) GenerateQuestions(ctx context.Context, area, experienceLevel string, count int) []string {
	messages := prompts.BuildQuestionGenerationPrompt(area, experienceLevel, count)

	raw, err := s.client.ChatCompletion(ctx, messages)
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		s.logDegrade("geração de perguntas", err)
		s.metrics.IncrementFallbacksUsed()
		return FallbackQuestions(area)
	}

	questions := parser.ParseQuestionList(raw)
	if len(questions) == 0 {
		log.Println("⚠️ Geração de perguntas sem lista aproveitável, usando banco fixo")
		s.metrics.IncrementFallbacksUsed()
		return FallbackQuestions(area)
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	return questions
}

// EvaluateAnswer avalia uma resposta e sempre devolve um Feedback válido.
// Em falha remota o score vem do avaliador heurístico e o comentário geral
// nomeia a classe da falha, sem vazar detalhes internos.
func (s *Service) EvaluateAnswer(ctx context.Context, question, answerText, area string) interview.Feedback {
	messages := prompts.BuildEvaluationPrompt(question, answerText, area)

	raw, err := s.client.ChatCompletion(ctx, messages)
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		s.logDegrade("avaliação de resposta", err)
		s.metrics.IncrementFallbacksUsed()
		return s.fallbackFeedback(answerText, err)
	}

	s.metrics.IncrementAnswersEvaluated()
	return parser.ParseFeedback(raw, heuristic.Score(answerText))
}

// GenerateFollowUp devolve uma pergunta de aprofundamento. Chave ausente ou
// saída inaproveitável degradam para o follow-up genérico; apenas falha de
// transporte é devolvida como erro, e o único consumidor (a máquina de
// sessão) a converte em encerramento antecipado.
func (s *Service) GenerateFollowUp(ctx context.Context, previousQuestion, candidateAnswer, area string) (string, error) {
	messages := prompts.BuildFollowUpPrompt(previousQuestion, candidateAnswer, area)

	raw, err := s.client.ChatCompletion(ctx, messages)
	s.metrics.IncrementAPICall(err == nil)
	if err != nil {
		if errors.Is(err, api.ErrNotConfigured) {
			s.metrics.IncrementFallbacksUsed()
			return genericFollowUp, nil
		}
		return "", fmt.Errorf("falha de transporte na geração de follow-up: %w", err)
	}

	question := parser.ParseSingleQuestion(raw)
	if question == "" {
		s.metrics.IncrementFallbacksUsed()
		return genericFollowUp, nil
	}
	return question, nil
}

// fallbackFeedback monta um Feedback local a partir do score heurístico
func (s *Service) fallbackFeedback(answerText string, cause error) interview.Feedback {
	score := heuristic.Score(answerText)

	var strengths, improvements []string
	switch {
	case score > 70:
		strengths = []string{"Resposta bem desenvolvida", "Boa presença de exemplos concretos"}
		improvements = []string{"Continue aprofundando os detalhes técnicos"}
	case score > 60:
		strengths = []string{"Resposta clara e objetiva"}
		improvements = []string{"Acrescente exemplos concretos da sua experiência"}
	default:
		strengths = []string{"Resposta registrada"}
		improvements = []string{"Desenvolva mais a resposta", "Inclua exemplos práticos"}
	}

	overall := "Avaliação local: serviço de avaliação indisponível no momento."
	if errors.Is(cause, api.ErrNotConfigured) {
		overall = "Avaliação local (modo offline): serviço de avaliação não configurado."
	}

	return interview.Feedback{
		Score:        score,
		Strengths:    strengths,
		Improvements: improvements,
		Overall:      overall,
	}
}

func (s *Service) logDegrade(operation string, err error) {
	if errors.Is(err, api.ErrNotConfigured) {
		log.Printf("⚠️ %s em modo offline: %v", operation, err)
		return
	}
	log.Printf("❌ Falha remota em %s: %v", operation, err)
}
