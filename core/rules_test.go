package core

import (
	"testing"

	"github.com/calderasa/tablequal/schema"
	"github.com/stretchr/testify/assert"
)

// TestRuleApplicability exercises the keyword dispatch in isolation: one
// rule per row of the table, positive and negative name matches.
func TestRuleApplicability(t *testing.T) {
	rules := defaultIntegrityRules()
	byName := make(map[string]*integrityRule, len(rules))
	for i := range rules {
		byName[rules[i].name] = &rules[i]
	}

	tests := []struct {
		rule    string
		colName string
		colType schema.ColumnType
		want    bool
	}{
		{"positive-amount", "valor_total", schema.NumericColumn, true},
		{"positive-amount", "preco_unitario", schema.NumericColumn, true},
		{"positive-amount", "saldo", schema.NumericColumn, true},
		{"positive-amount", "idade", schema.NumericColumn, false},
		{"positive-amount", "valor", schema.TextualColumn, false},
		{"binary-domain", "flag_ativo", schema.NumericColumn, true},
		{"binary-domain", "campo_binario", schema.NumericColumn, true},
		{"binary-domain", "status", schema.NumericColumn, false},
		{"capitalization", "qualquer_texto", schema.TextualColumn, true},
		{"capitalization", "qualquer_numero", schema.NumericColumn, false},
		{"code-format", "cpf_cliente", schema.TextualColumn, true},
		{"code-format", "cnpj", schema.TextualColumn, true},
		{"code-format", "telefone_fixo", schema.TextualColumn, true},
		{"code-format", "cidade", schema.TextualColumn, true}, // substring "id"
		{"code-format", "nome", schema.TextualColumn, false},
		{"date-format", "data_nascimento", schema.TextualColumn, true},
		{"date-format", "dt_inicio", schema.TextualColumn, true},
		{"date-format", "nome", schema.TextualColumn, false},
		{"temporal-typed", "criado_em", schema.TemporalColumn, true},
		{"temporal-typed", "criado_em", schema.TextualColumn, false},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.colName, func(t *testing.T) {
			rule, ok := byName[tt.rule]
			assert.True(t, ok, "unknown rule %q", tt.rule)

			col := buildColumn(tt.colName, tt.colType, "x")
			in := &ruleInput{col: &col, lower: tt.colName}
			assert.Equal(t, tt.want, rule.appliesTo(in))
		})
	}
}

// TestCheckCodeFormatPrecedence ensures id/code naming wins over document
// naming, so "cod_cpf" is checked for uniform length, not for 11 digits.
func TestCheckCodeFormatPrecedence(t *testing.T) {
	col := buildColumn("cod_cpf", schema.TextualColumn, "123", "456", "789")
	in := &ruleInput{col: &col, lower: "cod_cpf", sample: []string{"123", "456", "789"}}

	pass, problem, err := checkCodeFormat(in)
	assert.NoError(t, err)
	assert.True(t, pass)
	assert.Empty(t, problem)
}

// TestCheckCodeFormatDocumentLengths covers each expected digit count.
func TestCheckCodeFormatDocumentLengths(t *testing.T) {
	tests := []struct {
		colName  string
		sample   []string
		wantPass bool
	}{
		{"cpf", []string{"123.456.789-09"}, true},
		{"cpf", []string{"123.456.789"}, false},
		{"cnpj_empresa", []string{"12.345.678/0001-95"}, true},
		{"cep", []string{"01310-100"}, true},
		{"cep", []string{"0131"}, false},
		{"telefone", []string{"(11) 9876-5432"}, true},
		{"phone_number", []string{"1198765432"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.colName, func(t *testing.T) {
			col := buildColumn(tt.colName, schema.TextualColumn, tt.sample...)
			in := &ruleInput{col: &col, lower: tt.colName, sample: tt.sample}

			pass, _, err := checkCodeFormat(in)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantPass, pass)
		})
	}
}

// TestCasingHelpers pins the all-lower/all-upper semantics used by the
// capitalization check.
func TestCasingHelpers(t *testing.T) {
	tests := []struct {
		input     string
		wantLower bool
		wantUpper bool
	}{
		{"ana", true, false},
		{"ANA", false, true},
		{"Ana", false, false},
		{"123-456", false, false},
		{"", false, false},
		{"são paulo", true, false},
		{"SÃO PAULO", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.wantLower, isAllLower(tt.input), "isAllLower")
			assert.Equal(t, tt.wantUpper, isAllUpper(tt.input), "isAllUpper")
		})
	}
}

// TestStripNonDigits covers digit extraction for code checks.
func TestStripNonDigits(t *testing.T) {
	assert.Equal(t, "12345678909", stripNonDigits("123.456.789-09"))
	assert.Equal(t, "1198765432", stripNonDigits("(11) 9876-5432"))
	assert.Equal(t, "", stripNonDigits("abc"))
}
