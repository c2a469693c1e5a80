package evaluator

import "fmt"

// Banco fixo de perguntas usado quando a geração remota falha. Áreas
// conhecidas têm listas próprias; qualquer outra área cai na lista genérica
// parametrizada pelo nome da área.
var fallbackQuestionBank = map[string][]string{
	"Desenvolvedor Frontend": {
		"Fale um pouco sobre você e sua trajetória como desenvolvedor frontend.",
		"Como você organiza o estado de uma aplicação web complexa?",
		"Conte sobre uma situação em que precisou otimizar a performance de uma interface.",
		"Como você garante acessibilidade nas interfaces que desenvolve?",
		"Descreva um desafio técnico recente com CSS ou layout responsivo e como o resolveu.",
	},
	"Desenvolvedor Backend": {
		"Fale um pouco sobre você e sua trajetória como desenvolvedor backend.",
		"Como você projeta uma API para que ela evolua sem quebrar os clientes existentes?",
		"Conte sobre uma situação em que precisou diagnosticar um problema de performance em produção.",
		"Como você lida com consistência de dados em operações distribuídas?",
		"Descreva uma decisão de arquitetura que você defendeu e o resultado dela.",
	},
}

// FallbackQuestions devolve a lista fixa da área ou a lista genérica
func FallbackQuestions(area string) []string {
	if questions, ok := fallbackQuestionBank[area]; ok {
		return append([]string(nil), questions...)
	}
	return genericQuestions(area)
}

func genericQuestions(area string) []string {
	return []string{
		fmt.Sprintf("Fale um pouco sobre você e sua trajetória na área de %s.", area),
		fmt.Sprintf("Quais são os principais desafios técnicos que você enfrenta em %s?", area),
		"Conte sobre um projeto do qual você se orgulha e qual foi o seu papel nele.",
		"Descreva uma situação difícil de trabalho em equipe e como você a conduziu.",
		fmt.Sprintf("Como você se mantém atualizado na área de %s?", area),
	}
}
