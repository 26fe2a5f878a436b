package advisor

import (
	"fmt"
	"strings"

	"github.com/calderasa/tablequal/schema"
)

// criterionDescriptions explains each criterion to the model in the prompt.
var criterionDescriptions = map[schema.Criterion]string{
	schema.Completeness: "Proporção de valores preenchidos (não nulos) nas colunas",
	schema.Uniqueness:   "Presença de registros duplicados (linhas repetidas)",
	schema.Consistency:  "Verifica se os valores batem com o tipo de dado declarado (ex: número sendo string)",
	schema.Accuracy:     "Detecta valores extremos (outliers) em colunas numéricas",
	schema.Integrity:    "Avalia se os dados seguem regras de formato e semântica (ex: CPFs, datas, flags binárias, capitalização)",
}

// buildPrompt renders the user prompt: response format rules, the scores,
// the subset of criteria eligible for analysis, and their diagnostics.
func buildPrompt(report *schema.QualityReport, weak []schema.CriterionResult) string {
	var b strings.Builder

	b.WriteString("FORMATO DA RESPOSTA (OBRIGATÓRIO):\n")
	b.WriteString("A resposta deve conter exatamente estas seções, nesta ordem:\n\n")
	fmt.Fprintf(&b, "[%s]\n[%s]\n[%s]\n\n", sectionProblem, sectionRecommendations, sectionMitigation)
	b.WriteString("Se a seção não tiver conteúdo, escreva: \"Nenhum problema identificado para esta seção\"\n\n")

	b.WriteString("REGRAS OBRIGATÓRIAS:\n")
	b.WriteString("- NUNCA analise critérios que não estejam na lista de critérios analisáveis abaixo\n")
	b.WriteString("- Utilize apenas o diagnóstico por critério para indicar as colunas afetadas\n\n")

	b.WriteString("Scores de qualidade (1-5) para esta base:\n")
	for _, c := range schema.AllCriteria {
		if res, ok := report.Result(c); ok {
			fmt.Fprintf(&b, "- %s: %d/5\n", c, res.Score)
		}
	}

	b.WriteString("\nCritérios que PODEM ser analisados:\n")
	for _, res := range weak {
		fmt.Fprintf(&b, "- %s: %d/5 — %s\n", res.Criterion, res.Score, criterionDescriptions[res.Criterion])
	}

	b.WriteString("\nDiagnóstico por critério (colunas ou achados com problemas detectados):\n")
	for _, res := range weak {
		diag := "nenhum detalhe registrado"
		if len(res.Diagnostic) > 0 {
			diag = strings.Join(res.Diagnostic, "; ")
		}
		fmt.Fprintf(&b, "- %s: %s\n", res.Criterion, diag)
	}

	fmt.Fprintf(&b, "\nContexto da base de dados: %d linhas e %d colunas.\n\n", report.Rows, report.ColumnCount)

	fmt.Fprintf(&b, "[%s]\n", sectionProblem)
	b.WriteString("1. A partir do diagnóstico, identifique o domínio provável da base de dados.\n")
	b.WriteString("2. Para cada critério analisável, explique qual problema foi identificado, as colunas afetadas e como isso pode distorcer análises no domínio identificado, com um exemplo prático.\n\n")

	fmt.Fprintf(&b, "[%s]\n", sectionRecommendations)
	b.WriteString("Para cada problema: proponha uma solução técnica específica, indique o tipo de transformação necessária e classifique a complexidade (baixo, médio ou alto). Use blocos de código para soluções em SQL ou pandas.\n\n")

	fmt.Fprintf(&b, "[%s]\n", sectionMitigation)
	b.WriteString("Descreva como prevenir recorrência: validações na coleta, controles no processamento e checklist de validação final antes da exportação.\n")

	return b.String()
}
