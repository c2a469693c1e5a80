// Package heuristic implementa o avaliador determinístico usado quando o
// serviço remoto está indisponível ou devolve saída inaproveitável.
package heuristic

import "strings"

const (
	emptyScore = 20
	baseScore  = 40
	minScore   = 25
	maxScore   = 85
)

// Palavras que indicam exemplos concretos ou experiência prática
var experienceKeywords = []string{
	"exemplo", "experiência", "experiencia", "projeto", "desenvolvi",
	"implementei", "usei", "utilizei", "criei", "trabalhei",
	"example", "experience", "project", "built", "implemented", "used",
}

// Palavras que indicam vocabulário técnico
var technicalKeywords = []string{
	"tecnologia", "framework", "linguagem", "ferramenta", "metodologia",
	"processo", "arquitetura", "banco de dados",
	"technology", "language", "tool", "methodology", "process",
}

// Score calcula uma pontuação determinística para o texto da resposta.
// Mesmo texto sempre produz a mesma pontuação.
func Score(answerText string) int {
	trimmed := strings.TrimSpace(answerText)
	if trimmed == "" {
		return emptyScore
	}

	score := baseScore
	words := len(strings.Fields(trimmed))
	lower := strings.ToLower(trimmed)

	// Bônus de extensão: apenas a maior faixa atingida conta
	switch {
	case words > 100:
		score += 15
	case words > 50:
		score += 10
	case words > 20:
		score += 5
	}

	if containsAny(lower, experienceKeywords) {
		score += 15
	}

	if containsAny(lower, technicalKeywords) {
		score += 10
	}

	if wellStructured(trimmed, words) {
		score += 10
	}

	return clamp(score, minScore, maxScore)
}

// wellStructured considera a resposta organizada quando há ao menos um
// terminador de frase e mais de 20 palavras
func wellStructured(text string, words int) bool {
	return strings.ContainsAny(text, ".!?") && words > 20
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
