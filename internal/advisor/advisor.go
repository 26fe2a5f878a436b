// Package advisor turns a quality report into actionable remediation advice
// by prompting a chat-completion model. Only criteria at or below the
// configured score are submitted for analysis.
package advisor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/schema"
	"github.com/sashabaranov/go-openai"
)

// systemPrompt frames the model as a data-quality specialist.
const systemPrompt = "Você é um especialista que transforma problemas de qualidade de dados em insights acionáveis específicos ao domínio analisado. Seja prático e direto."

// adviceTemperature keeps responses focused rather than creative.
const adviceTemperature = 0.3

// Section tags the model is instructed to emit.
const (
	sectionProblem         = "PROBLEMA IDENTIFICADO"
	sectionRecommendations = "RECOMENDAÇÕES"
	sectionMitigation      = "MITIGAÇÃO"
)

// Advice is the parsed model response.
type Advice struct {
	Problem         string
	Recommendations string
	Mitigation      string
	Raw             string
}

// ChatClient is the subset of the OpenAI client the advisor needs.
// It exists so tests can substitute a fake.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Advisor generates advice for the weak criteria of a report.
type Advisor struct {
	client   ChatClient
	model    string
	maxScore int
}

// New builds an advisor from the validated config. The API key comes from
// config or the OPENAI_API_KEY environment variable.
func New(cfg *contract.Config) (*Advisor, error) {
	apiKey := cfg.AdviseAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured; set --advise-api-key or OPENAI_API_KEY")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.AdviseBaseURL != "" {
		clientConfig.BaseURL = cfg.AdviseBaseURL
	}

	return &Advisor{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    cfg.AdviseModel,
		maxScore: cfg.AdviseScore,
	}, nil
}

// NewWithClient builds an advisor around an existing chat client.
func NewWithClient(client ChatClient, model string, maxScore int) *Advisor {
	return &Advisor{client: client, model: model, maxScore: maxScore}
}

// Advise prompts the model about the report's weak criteria and parses the
// sectioned response. Returns an error when every criterion scores above the
// advice threshold, since there is nothing to analyze.
func (a *Advisor) Advise(ctx context.Context, report *schema.QualityReport) (*Advice, error) {
	weak := report.WeakCriteria(a.maxScore)
	if len(weak) == 0 {
		return nil, fmt.Errorf("no criterion scored %d or below; nothing to advise on", a.maxScore)
	}

	req := openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: adviceTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(report, weak)},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("advice request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("advice request returned no choices")
	}

	return parseAdvice(resp.Choices[0].Message.Content), nil
}

// parseAdvice splits the model response into its tagged sections.
func parseAdvice(content string) *Advice {
	return &Advice{
		Problem:         extractSection(content, sectionProblem),
		Recommendations: extractSection(content, sectionRecommendations),
		Mitigation:      extractSection(content, sectionMitigation),
		Raw:             content,
	}
}

// extractSection returns the content between a section tag and the next tag,
// or a placeholder when the tag is absent.
func extractSection(content, sectionTag string) string {
	startTag := "[" + sectionTag + "]"
	_, after, found := strings.Cut(content, startTag)
	if !found {
		return fmt.Sprintf("Seção %s não encontrada na resposta da IA", sectionTag)
	}

	end := len(after)
	for _, tag := range []string{sectionProblem, sectionRecommendations, sectionMitigation} {
		if tag == sectionTag {
			continue
		}
		if idx := strings.Index(after, "["+tag+"]"); idx >= 0 && idx < end {
			end = idx
		}
	}
	return strings.TrimSpace(after[:end])
}
