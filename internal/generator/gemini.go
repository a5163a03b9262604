package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/dvloznov/spendsense/internal/catalog"
	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// DefaultModelName is the Gemini model used for rationale generation.
const DefaultModelName = "gemini-2.5-flash"

// GeminiGenerator is the non-deterministic strategy: selection stays
// deterministic (delegated to the template generator, so ranking never
// changes between strategies) while rationale text is produced by Gemini.
// Any model failure falls back to the template text, so the pipeline never
// degrades below the deterministic baseline. The downstream tone guardrail
// applies to generated text exactly as it does to templates.
type GeminiGenerator struct {
	*TemplateGenerator
	model string
	log   zerolog.Logger
}

// NewGeminiGenerator creates the LLM-backed generator. An empty model name
// selects DefaultModelName.
func NewGeminiGenerator(cat *catalog.Catalog, model string, log zerolog.Logger) *GeminiGenerator {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiGenerator{
		TemplateGenerator: NewTemplateGenerator(cat, log),
		model:             model,
		log:               log,
	}
}

// PersonaRationale overrides the template strategy with model-written text.
func (g *GeminiGenerator) PersonaRationale(ctx context.Context, persona domain.PersonaType, snapshot signals.BehaviorSignals) string {
	fallback := g.TemplateGenerator.PersonaRationale(ctx, persona, snapshot)
	prompt := g.rationalePrompt(persona, snapshot, fallback,
		"Explain in 2-3 sentences why the user matches this financial persona.")

	text, err := g.generate(ctx, prompt)
	if err != nil {
		g.log.Warn().Err(err).Str("persona", string(persona)).Msg("Gemini rationale failed, using template text")
		return fallback
	}
	return text
}

// ContentRationale overrides the template strategy with model-written text.
func (g *GeminiGenerator) ContentRationale(ctx context.Context, title string, persona domain.PersonaType, snapshot signals.BehaviorSignals) string {
	fallback := g.TemplateGenerator.ContentRationale(ctx, title, persona, snapshot)
	prompt := g.rationalePrompt(persona, snapshot, fallback,
		fmt.Sprintf("Explain in one sentence why the content item %q is relevant to this user.", title))

	text, err := g.generate(ctx, prompt)
	if err != nil {
		g.log.Warn().Err(err).Str("title", title).Msg("Gemini content rationale failed, using template text")
		return fallback
	}
	return text
}

func (g *GeminiGenerator) rationalePrompt(persona domain.PersonaType, snapshot signals.BehaviorSignals, reference, task string) string {
	return "You write short explanations for a financial wellness app.\n\n" +
		"Task:\n- " + task + "\n" +
		"- Cite at least one concrete number from the data below (a currency amount, percentage, or day count).\n" +
		"- Supportive, non-judgmental tone. Never shame the user.\n" +
		"- Educational only; no financial advice, no product endorsements.\n" +
		"- Plain text only, no Markdown.\n\n" +
		fmt.Sprintf("Persona: %s\n", persona) +
		fmt.Sprintf("Credit: utilization %.1f%%, balance %s, monthly interest %s\n",
			snapshot.Credit.OverallUtilization, dollars(snapshot.Credit.TotalBalance), dollars(snapshot.Credit.MonthlyInterest)) +
		fmt.Sprintf("Income: frequency %s, median gap %d days, buffer %.1f months\n",
			snapshot.Income.Frequency, snapshot.Income.MedianGapDays, snapshot.Income.BufferMonths) +
		fmt.Sprintf("Subscriptions: %d recurring, %s/month\n",
			snapshot.Subscriptions.Count, dollars(snapshot.Subscriptions.MonthlySpend)) +
		fmt.Sprintf("Savings: inflow %s/month, growth %.1f%%\n\n",
			dollars(snapshot.Savings.MonthlyInflow), snapshot.Savings.GrowthRate) +
		"Reference wording (rewrite, do not copy verbatim):\n" + reference + "\n"
}

func (g *GeminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("generate: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("generate: empty response from model")
	}
	return text, nil
}
