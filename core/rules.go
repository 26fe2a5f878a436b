package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/calderasa/tablequal/schema"
)

// Problem messages attached to failing integrity checks. These strings are
// surfaced verbatim in diagnostics and reports.
const (
	problemNegativeValues   = "valores negativos indevidos"
	problemNonBinaryValues  = "valores fora de 0/1 em campo binário"
	problemMixedCasing      = "capitalização inconsistente"
	problemRaggedCodeLength = "tamanhos inconsistentes em códigos/IDs"
	problemBadDateFormat    = "datas fora do padrão"
)

// dateFormatMinFraction is the minimum share of sampled values that must
// match the date pattern for a date-named textual column to pass.
const dateFormatMinFraction = 0.9

// Column-name keyword sets driving rule applicability. Matching is a
// case-insensitive substring test on the column name.
var (
	positiveKeywords = []string{"valor", "preço", "preco", "quantidade", "saldo", "value", "price", "quantity", "balance", "amount"}
	binaryKeywords   = []string{"binário", "binario", "binary", "flag"}
	codeKeywords     = []string{"id", "cod", "cd", "code"}
	dateKeywords     = []string{"data", "dt", "date", "nascimento", "inicio", "início", "fim"}
)

// documentLengths maps document-style keywords to their expected digit count
// after stripping non-digit characters.
var documentLengths = map[string]int{
	"cpf":      11,
	"cnpj":     14,
	"cep":      8,
	"telefone": 10,
	"phone":    10,
}

// ruleInput is what an integrity rule sees for one column: the column
// itself, its lowercased name, and (for textual columns) the deterministic
// value sample.
type ruleInput struct {
	col    *schema.Column
	lower  string
	sample []string
}

// integrityRule is one entry of the rule table. A rule applies to a column
// when the column's declared type matches and at least one keyword occurs in
// the column name (an empty keyword list applies to every column of the
// type). Each applicable rule counts as exactly one check.
type integrityRule struct {
	name     string
	colType  schema.ColumnType
	keywords []string
	check    func(in *ruleInput) (pass bool, problem string, err error)
}

// appliesTo reports whether the rule is applicable to the given column.
func (r *integrityRule) appliesTo(in *ruleInput) bool {
	if in.col.Type != r.colType {
		return false
	}
	if len(r.keywords) == 0 {
		return true
	}
	return containsAny(in.lower, r.keywords)
}

// defaultIntegrityRules returns the rule table evaluated by the integrity
// criterion. Expressing the checks as data keeps the keyword dispatch in one
// place and makes each rule testable on its own.
func defaultIntegrityRules() []integrityRule {
	return []integrityRule{
		{
			name:     "positive-amount",
			colType:  schema.NumericColumn,
			keywords: positiveKeywords,
			check:    checkNonNegative,
		},
		{
			name:     "binary-domain",
			colType:  schema.NumericColumn,
			keywords: binaryKeywords,
			check:    checkBinaryDomain,
		},
		{
			name:    "capitalization",
			colType: schema.TextualColumn,
			check:   checkCapitalization,
		},
		{
			name:     "code-format",
			colType:  schema.TextualColumn,
			keywords: append(codeKeywords, documentKeywords()...),
			check:    checkCodeFormat,
		},
		{
			name:     "date-format",
			colType:  schema.TextualColumn,
			keywords: dateKeywords,
			check:    checkDateFormat,
		},
		{
			name:    "temporal-typed",
			colType: schema.TemporalColumn,
			check:   checkTemporalTyped,
		},
	}
}

// documentKeywords lists the keys of documentLengths in a stable order.
func documentKeywords() []string {
	return []string{"cpf", "cnpj", "cep", "telefone", "phone"}
}

// checkNonNegative fails when a should-be-positive column has a negative
// minimum. Columns with no parseable values pass vacuously.
func checkNonNegative(in *ruleInput) (bool, string, error) {
	for _, v := range in.col.Floats() {
		if v < 0 {
			return false, problemNegativeValues, nil
		}
	}
	return true, "", nil
}

// checkBinaryDomain fails when a flag-named numeric column holds values
// outside {0,1}, including values that do not parse as numbers at all.
func checkBinaryDomain(in *ruleInput) (bool, string, error) {
	for _, raw := range in.col.NonNull() {
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil || (v != 0 && v != 1) {
			return false, problemNonBinaryValues, nil
		}
	}
	return true, "", nil
}

// checkCapitalization fails when the sample mixes all-lowercase and
// all-uppercase values, i.e. casing is inconsistent across rows.
func checkCapitalization(in *ruleInput) (bool, string, error) {
	var sawLower, sawUpper bool
	for _, v := range in.sample {
		if isAllLower(v) {
			sawLower = true
		}
		if isAllUpper(v) {
			sawUpper = true
		}
		if sawLower && sawUpper {
			return false, problemMixedCasing, nil
		}
	}
	return true, "", nil
}

// checkCodeFormat strips non-digit characters from the sampled values and
// validates their lengths. Id/code-like names require one uniform length;
// document-like names (cpf, cnpj, cep, telefone) require the known expected
// length for every value.
func checkCodeFormat(in *ruleInput) (bool, string, error) {
	stripped := make([]string, len(in.sample))
	for i, v := range in.sample {
		stripped[i] = stripNonDigits(v)
	}

	// Id/code naming takes precedence over document naming, so a column
	// like "cod_cpf" is held to length uniformity, not to 11 digits.
	if containsAny(in.lower, codeKeywords) {
		lengths := make(map[int]bool)
		for _, v := range stripped {
			lengths[len(v)] = true
		}
		if len(lengths) > 1 {
			return false, problemRaggedCodeLength, nil
		}
		return true, "", nil
	}

	for _, keyword := range documentKeywords() {
		if !strings.Contains(in.lower, keyword) {
			continue
		}
		expected := documentLengths[keyword]
		for _, v := range stripped {
			if len(v) != expected {
				return false, fmt.Sprintf("tamanho incorreto para %s", in.col.Name), nil
			}
		}
		return true, "", nil
	}

	// Keyword matched for applicability but no branch claimed the column.
	return false, "", errSkipCheck
}

// checkDateFormat fails when fewer than 90% of sampled values match the
// accepted date layouts.
func checkDateFormat(in *ruleInput) (bool, string, error) {
	if len(in.sample) == 0 {
		return false, "", errSkipCheck
	}
	valid := 0
	for _, v := range in.sample {
		if datePattern.MatchString(v) {
			valid++
		}
	}
	if float64(valid)/float64(len(in.sample)) < dateFormatMinFraction {
		return false, problemBadDateFormat, nil
	}
	return true, "", nil
}

// checkTemporalTyped passes trivially: a column already parsed as temporal
// carries no extra format obligations.
func checkTemporalTyped(_ *ruleInput) (bool, string, error) {
	return true, "", nil
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// stripNonDigits removes every non-digit rune from s.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isAllLower reports whether s has at least one cased rune and none of its
// cased runes are uppercase.
func isAllLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

// isAllUpper reports whether s has at least one cased rune and none of its
// cased runes are lowercase.
func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
