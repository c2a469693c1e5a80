// Package prompts monta as instruções enviadas ao serviço de linguagem.
// Funções puras: a saída depende apenas dos argumentos.
package prompts

import (
	"fmt"
	"strings"

	"entrevista-ai/internal/api"
)

// BuildEvaluationPrompt monta o prompt de avaliação de uma resposta. O
// contrato de retorno exigido é um único objeto JSON com score, strengths,
// improvements e overall.
func BuildEvaluationPrompt(question, answer, area string) []api.Message {
	var system strings.Builder

	system.WriteString("Você é um entrevistador técnico experiente avaliando candidatos para a área de ")
	system.WriteString(area)
	system.WriteString(".\n\n")
	system.WriteString("RUBRICA DE PONTUAÇÃO (score de 0 a 100):\n")
	system.WriteString("- 0-29: resposta irrelevante ou sem relação com a pergunta\n")
	system.WriteString("- 30-39: resposta muito fraca, vaga e sem conteúdo\n")
	system.WriteString("- 40-49: resposta fraca, toca no tema mas sem profundidade\n")
	system.WriteString("- 50-59: resposta mediana, correta porém superficial\n")
	system.WriteString("- 60-69: resposta razoável, com algum detalhe relevante\n")
	system.WriteString("- 70-79: resposta boa, clara e com exemplos\n")
	system.WriteString("- 80-89: resposta muito boa, estruturada e aprofundada\n")
	system.WriteString("- 90-100: resposta excepcional, completa e com domínio evidente\n\n")
	system.WriteString("FORMATO DA RESPOSTA:\n")
	system.WriteString("Retorne um único objeto JSON com as chaves:\n")
	system.WriteString(`- "score": inteiro de 0 a 100 segundo a rubrica` + "\n")
	system.WriteString(`- "strengths": array de strings curtas com os pontos fortes` + "\n")
	system.WriteString(`- "improvements": array de strings curtas com pontos a melhorar` + "\n")
	system.WriteString(`- "overall": string com o comentário geral` + "\n\n")
	system.WriteString("IMPORTANTE: retorne APENAS o JSON, sem texto adicional, sem markdown.")

	user := fmt.Sprintf("PERGUNTA:\n%s\n\nRESPOSTA DO CANDIDATO:\n%s", question, answer)

	return []api.Message{
		{Role: api.RoleSystem, Content: system.String()},
		{Role: api.RoleUser, Content: user},
	}
}

// BuildQuestionGenerationPrompt monta o prompt de geração do lote inicial
// de perguntas. O contrato de retorno é um array JSON com exatamente count
// strings.
func BuildQuestionGenerationPrompt(area, experienceLevel string, count int) []api.Message {
	var system strings.Builder

	system.WriteString("Você é um recrutador experiente preparando uma entrevista simulada.\n\n")
	system.WriteString("REGRAS:\n")
	system.WriteString(fmt.Sprintf("- Gere exatamente %d perguntas de entrevista\n", count))
	system.WriteString("- Varie entre perguntas técnicas, comportamentais e situacionais\n")
	system.WriteString("- A primeira pergunta deve ser uma apresentação pessoal do candidato\n")
	system.WriteString("- Perguntas em português, diretas, uma frase cada\n\n")
	system.WriteString("FORMATO DA RESPOSTA:\n")
	system.WriteString(fmt.Sprintf("Retorne APENAS um array JSON com %d strings, sem texto adicional, sem markdown.\n", count))
	system.WriteString(`Exemplo: ["pergunta 1", "pergunta 2"]`)

	user := fmt.Sprintf("Área: %s\nNível de experiência: %s", area, experienceLevel)

	return []api.Message{
		{Role: api.RoleSystem, Content: system.String()},
		{Role: api.RoleUser, Content: user},
	}
}

// BuildFollowUpPrompt monta o prompt de geração de uma pergunta de
// aprofundamento a partir do último par pergunta/resposta. O contrato de
// retorno é uma única string, sem array e sem JSON.
func BuildFollowUpPrompt(previousQuestion, candidateAnswer, area string) []api.Message {
	var system strings.Builder

	system.WriteString("Você é um entrevistador técnico da área de ")
	system.WriteString(area)
	system.WriteString(" conduzindo uma entrevista em andamento.\n\n")
	system.WriteString("Gere UMA pergunta de follow-up que aprofunde a resposta dada pelo candidato.\n\n")
	system.WriteString("FORMATO DA RESPOSTA:\n")
	system.WriteString("Retorne apenas o texto da pergunta. Sem array, sem JSON, sem aspas, sem comentários.")

	user := fmt.Sprintf("PERGUNTA ANTERIOR:\n%s\n\nRESPOSTA DO CANDIDATO:\n%s",
		previousQuestion, candidateAnswer)

	return []api.Message{
		{Role: api.RoleSystem, Content: system.String()},
		{Role: api.RoleUser, Content: user},
	}
}
