package interview

// Mode define o tamanho da entrevista
type Mode string

const (
	ModeQuick    Mode = "quick"
	ModeComplete Mode = "complete"
)

// IsValid verifica se o modo é conhecido
func (m Mode) IsValid() bool {
	return m == ModeQuick || m == ModeComplete
}

// Config representa a configuração imutável de uma sessão de entrevista
type Config struct {
	Mode            Mode   `json:"mode" validate:"required,oneof=quick complete"`
	Area            string `json:"area" validate:"required"`
	ExperienceLevel string `json:"experience_level" validate:"required"`
	CandidateName   string `json:"candidate_name" validate:"required"`
	JobDescription  string `json:"job_description,omitempty"`
}

// Question representa uma pergunta da entrevista
type Question struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Categorias de pergunta usadas na sessão
const (
	CategoryIntro    = "Apresentação"
	CategoryGeneral  = "Geral"
	CategoryFollowUp = "Follow-up"
)

// Answer representa uma resposta registrada (imutável após criação)
type Answer struct {
	QuestionID int      `json:"question_id"`
	Text       string   `json:"text"`
	Feedback   Feedback `json:"feedback"`
}

// Feedback representa a avaliação estruturada de uma resposta
type Feedback struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Overall      string   `json:"overall"`
}

// IsValid verifica o invariante básico do feedback
func (f Feedback) IsValid() bool {
	return f.Score >= 0 && f.Score <= 100 &&
		len(f.Strengths) > 0 && len(f.Improvements) > 0 && f.Overall != ""
}

// Summary representa o resumo exposto ao final da sessão
type Summary struct {
	SessionID       string `json:"session_id"`
	CandidateName   string `json:"candidate_name"`
	Area            string `json:"area"`
	ExperienceLevel string `json:"experience_level"`
	AnsweredCount   int    `json:"answered_count"`
	AverageScore    int    `json:"average_score"`
	Timestamp       string `json:"timestamp"`
}
