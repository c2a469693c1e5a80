// Package storage exporta o resultado de entrevistas concluídas em JSON.
// É um artefato de exportação: o estado das sessões vive apenas em memória.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entrevista-ai/internal/interview"
)

const resultsDir = "results"

// Record é o resultado exportado de uma entrevista concluída
type Record struct {
	Summary   interview.Summary    `json:"summary"`
	Questions []interview.Question `json:"questions"`
	Answers   []interview.Answer   `json:"answers"`
}

// SaveRecord grava o resultado em results/entrevista_<id>.json
func SaveRecord(record *Record) error {
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return fmt.Errorf("erro ao criar o diretório %s: %w", resultsDir, err)
	}

	filename := fmt.Sprintf("entrevista_%s.json", record.Summary.SessionID)
	path := filepath.Join(resultsDir, filename)

	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao serializar o resultado: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("erro ao gravar o arquivo %s: %w", path, err)
	}

	return nil
}

// LoadRecord carrega o resultado de uma entrevista pelo ID da sessão
func LoadRecord(sessionID string) (*Record, error) {
	filename := fmt.Sprintf("entrevista_%s.json", sessionID)
	path := filepath.Join(resultsDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o arquivo %s: %w", path, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("erro ao desserializar o JSON: %w", err)
	}

	return &record, nil
}

// ListRecords devolve os IDs das entrevistas exportadas
func ListRecords() ([]string, error) {
	if _, err := os.Stat(resultsDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o diretório %s: %w", resultsDir, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		if strings.HasPrefix(name, "entrevista_") {
			ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, "entrevista_"), ".json"))
		}
	}

	return ids, nil
}
