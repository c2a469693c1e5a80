// Package parser extrai resultados estruturados do texto livre devolvido
// pelo modelo. Falhas de estrutura nunca sobem daqui: cada modo degrada
// para um valor padrão bem definido.
package parser

import (
	"encoding/json"
	"math"
	"strings"

	"entrevista-ai/internal/interview"
)

// Valores padrão usados quando um campo do feedback vem ausente ou inválido
var (
	defaultStrengths    = []string{"Resposta registrada e considerada na avaliação"}
	defaultImprovements = []string{"Procure detalhar mais os seus exemplos"}
	defaultOverall      = "Resposta avaliada. Continue elaborando seus pontos com exemplos concretos."
)

const minOverallLength = 10

// StripFences remove blocos de markdown do texto do modelo
func StripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ParseFeedback extrai um Feedback completo do texto bruto. fallbackScore
// (normalmente o score heurístico da resposta) é usado quando `score` vem
// ausente ou fora de [0,100]. O retorno é sempre um Feedback válido.
func ParseFeedback(raw string, fallbackScore int) interview.Feedback {
	fb := interview.Feedback{
		Score:        clampScore(fallbackScore),
		Strengths:    defaultStrengths,
		Improvements: defaultImprovements,
		Overall:      defaultOverall,
	}

	clean := StripFences(raw)
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end <= start {
		return fb
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(clean[start:end+1]), &data); err != nil {
		return fb
	}

	// Cada campo é validado de forma independente
	if score, ok := numberField(data, "score"); ok && score >= 0 && score <= 100 {
		fb.Score = int(math.Round(score))
	}
	if list, ok := stringList(data["strengths"]); ok {
		fb.Strengths = list
	}
	if list, ok := stringList(data["improvements"]); ok {
		fb.Improvements = list
	}
	if overall, ok := data["overall"].(string); ok {
		if trimmed := strings.TrimSpace(overall); len(trimmed) >= minOverallLength {
			fb.Overall = trimmed
		}
	}

	return fb
}

// ParseQuestionList extrai uma lista de perguntas do texto bruto. Entrada
// vazia, inválida ou sem lista resulta em sequência de tamanho zero; o
// chamador é responsável por recorrer ao banco fixo de perguntas.
func ParseQuestionList(raw string) []string {
	clean := StripFences(raw)
	start := strings.Index(clean, "[")
	end := strings.LastIndex(clean, "]")
	if start == -1 || end <= start {
		return nil
	}

	var items []any
	if err := json.Unmarshal([]byte(clean[start:end+1]), &items); err != nil {
		return nil
	}

	var questions []string
	for _, item := range items {
		if text, ok := item.(string); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				questions = append(questions, trimmed)
			}
		}
	}
	return questions
}

// ParseSingleQuestion trata o texto inteiro como a pergunta, removendo um
// único par de aspas nas extremidades quando presente
func ParseSingleQuestion(raw string) string {
	question := StripFences(raw)
	if len(question) >= 2 {
		first := question[0]
		last := question[len(question)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			question = strings.TrimSpace(question[1 : len(question)-1])
		}
	}
	return question
}

func numberField(data map[string]any, key string) (float64, bool) {
	value, ok := data[key].(float64)
	return value, ok
}

// stringList aceita apenas listas não vazias de strings não vazias
func stringList(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}

	var list []string
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			return nil, false
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return nil, false
	}
	return list, true
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
