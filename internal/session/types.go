package session

import "errors"

// State representa o estado da sessão de entrevista
type State string

const (
	StateLoadingQuestions State = "loading-questions"
	StateActive           State = "active"
	StateCompleted        State = "completed"
)

// Erros de validação e de ciclo de vida; todos recuperáveis pelo chamador
var (
	ErrNotActive       = errors.New("a sessão não está ativa")
	ErrNotCompleted    = errors.New("a sessão ainda não foi concluída")
	ErrEmptyAnswer     = errors.New("a resposta não pode ser vazia")
	ErrProcessing      = errors.New("já existe uma submissão em processamento")
	ErrAlreadyAnswered = errors.New("a pergunta atual já foi respondida")
	ErrPendingAnswer   = errors.New("responda a pergunta atual antes de avançar")
	ErrNoRecognizer    = errors.New("captura de voz não disponível nesta sessão")
)

// Status é a visão somente leitura da sessão exposta pela API
type Status struct {
	SessionID       string `json:"session_id"`
	State           State  `json:"state"`
	CurrentIndex    int    `json:"current_index"`
	QuestionCount   int    `json:"question_count"`
	AnsweredCount   int    `json:"answered_count"`
	TargetQuestions int    `json:"target_questions"`
	Processing      bool   `json:"processing"`
	Recording       bool   `json:"recording"`
	PendingAnswer   string `json:"pending_answer"`
	LastInterim     string `json:"last_interim,omitempty"`
}
