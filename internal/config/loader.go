package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load carrega a configuração da entrevista de um arquivo YAML
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o arquivo %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("erro ao interpretar o YAML: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("erro de validação da configuração: %w", err)
	}

	return &config, nil
}

// validateConfig verifica a consistência da configuração
func validateConfig(config *Config) error {
	if config.Interview.QuickQuestionCount <= 0 {
		return fmt.Errorf("quick_question_count deve ser maior que 0")
	}

	if config.Interview.CompleteQuestionCount < config.Interview.QuickQuestionCount {
		return fmt.Errorf("complete_question_count (%d) não pode ser menor que quick_question_count (%d)",
			config.Interview.CompleteQuestionCount, config.Interview.QuickQuestionCount)
	}

	if config.Speech.Locale == "" {
		return fmt.Errorf("speech.locale é obrigatório")
	}

	if config.Session.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("cleanup_interval_minutes deve ser maior que 0")
	}

	if config.Session.InactiveTTLHours <= 0 {
		return fmt.Errorf("inactive_ttl_hours deve ser maior que 0")
	}

	return nil
}
