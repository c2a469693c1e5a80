// Package jobdesc extrai o texto de descrições de vaga enviadas em PDF,
// usado para preencher o campo opcional job_description da entrevista.
package jobdesc

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxExtractedLength = 8000

// ExtractText extrai o texto de um PDF no caminho informado. Páginas com
// falha de extração são ignoradas; o resultado é truncado para manter o
// prompt dentro de um tamanho razoável.
func ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("erro ao abrir o PDF: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	extracted := strings.TrimSpace(builder.String())
	if extracted == "" {
		return "", fmt.Errorf("o PDF não contém texto extraível")
	}

	if len(extracted) > maxExtractedLength {
		extracted = extracted[:maxExtractedLength]
	}

	return extracted, nil
}
