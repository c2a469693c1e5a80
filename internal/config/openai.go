package config

import (
	"fmt"
	"os"
)

// OpenAIConfig contém as credenciais e parâmetros do serviço de linguagem.
// A ausência da chave não é fatal: o sistema opera em modo offline usando
// apenas os caminhos de fallback.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// LoadOpenAIConfig carrega a configuração do serviço de linguagem do
// ambiente
func LoadOpenAIConfig() *OpenAIConfig {
	return &OpenAIConfig{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		BaseURL:     os.Getenv("OPENAI_BASE_URL"),
		Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1000),
		Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
	}
}

// IsConfigured informa se há chave de API disponível
func (c *OpenAIConfig) IsConfigured() bool {
	return c.APIKey != ""
}

// Validate verifica os parâmetros numéricos; a chave pode estar ausente
func (c *OpenAIConfig) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS deve ser positivo")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE deve estar entre 0 e 2")
	}

	return nil
}
