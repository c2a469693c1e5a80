package config

import "entrevista-ai/internal/interview"

// Config representa a configuração da entrevista carregada do YAML
type Config struct {
	Interview InterviewSettings `yaml:"interview_config"`
	Speech    SpeechSettings    `yaml:"speech"`
	Session   SessionSettings   `yaml:"session"`
}

// InterviewSettings contém os orçamentos de perguntas por modo
type InterviewSettings struct {
	QuickQuestionCount    int `yaml:"quick_question_count"`
	CompleteQuestionCount int `yaml:"complete_question_count"`
}

// SpeechSettings contém as preferências de voz
type SpeechSettings struct {
	Locale string `yaml:"locale"`
}

// SessionSettings contém a política de limpeza de sessões inativas
type SessionSettings struct {
	CleanupIntervalMinutes int `yaml:"cleanup_interval_minutes"`
	InactiveTTLHours       int `yaml:"inactive_ttl_hours"`
}

// TargetQuestions devolve o orçamento de perguntas fixado pelo modo
func (c *Config) TargetQuestions(mode interview.Mode) int {
	if mode == interview.ModeComplete {
		return c.Interview.CompleteQuestionCount
	}
	return c.Interview.QuickQuestionCount
}
