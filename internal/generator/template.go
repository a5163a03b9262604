package generator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendsense/internal/catalog"
	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// TemplateGenerator is the default deterministic strategy: catalog scoring
// plus template-string rationales with literal cited values. No external
// calls, fully reproducible.
type TemplateGenerator struct {
	catalog *catalog.Catalog
	log     zerolog.Logger
}

// NewTemplateGenerator creates a template generator over an immutable
// catalog.
func NewTemplateGenerator(cat *catalog.Catalog, log zerolog.Logger) *TemplateGenerator {
	return &TemplateGenerator{catalog: cat, log: log}
}

// Education implements ContentGenerator.
func (g *TemplateGenerator) Education(persona domain.PersonaType, snapshot signals.BehaviorSignals, activeTags []string, limit int) []ScoredEducation {
	var scored []ScoredEducation
	for i, item := range g.catalog.Education {
		score := relevanceScore(item.PersonaTags, item.SignalTags, persona, activeTags)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredEducation{
			Item:         item,
			Score:        score,
			Relevance:    relevanceTier(score),
			CatalogIndex: i,
		})
	}
	sortEducation(scored)
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// Offers implements ContentGenerator. Only persona-tagged offers are
// candidates; eligibility gating happens in the guardrail chain.
func (g *TemplateGenerator) Offers(persona domain.PersonaType, snapshot signals.BehaviorSignals, activeTags []string) []ScoredOffer {
	var scored []ScoredOffer
	for i, offer := range g.catalog.Offers {
		if !hasPersonaTag(offer.PersonaTags, persona) {
			continue
		}
		score := relevanceScore(offer.PersonaTags, offer.SignalTags, persona, activeTags)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredOffer{
			Offer:        offer,
			Score:        score,
			Relevance:    relevanceTier(score),
			CatalogIndex: i,
		})
	}
	sortOffers(scored)
	return scored
}

// PersonaRationale implements ContentGenerator.
func (g *TemplateGenerator) PersonaRationale(_ context.Context, persona domain.PersonaType, snapshot signals.BehaviorSignals) string {
	switch persona {
	case domain.PersonaHighUtilization:
		text := fmt.Sprintf(
			"You've been identified as a High Utilization user because your credit card "+
				"utilization is %.1f%%, which is above the recommended 30%% threshold. "+
				"You're currently using %s of your %s total credit limit. ",
			snapshot.Credit.OverallUtilization,
			dollars(snapshot.Credit.TotalBalance),
			dollars(snapshot.Credit.TotalLimit),
		)
		if snapshot.Credit.MonthlyInterest > 0 {
			text += "You're also paying interest charges on your balances, which adds to the cost of carrying debt. "
		}
		if snapshot.Credit.Overdue {
			text += "Additionally, you have overdue payments, which can negatively impact your credit score. "
		}
		return text + "We recommend focusing on paying down high balances and keeping utilization below 30%."

	case domain.PersonaVariableIncome:
		return fmt.Sprintf(
			"You've been identified as a Variable Income user because your income arrives irregularly, "+
				"with a median gap of %d days between payments. Your average income payment is %s, "+
				"and you currently have %.1f months of cash flow buffer. We recommend building your "+
				"buffer to at least 6-12 months of expenses and using percentage-based budgeting.",
			snapshot.Income.MedianGapDays,
			dollars(snapshot.Income.AverageAmount),
			snapshot.Income.BufferMonths,
		)

	case domain.PersonaDebtConsolidator:
		return fmt.Sprintf(
			"You've been identified as a Debt Consolidator candidate because you carry balances on "+
				"%d cards at %.1f%% overall utilization while paying about %s in interest each month. "+
				"Consolidating could simplify repayment and reduce your interest cost.",
			cardsWithBalance(snapshot.Credit),
			snapshot.Credit.OverallUtilization,
			dollars(snapshot.Credit.MonthlyInterest),
		)

	case domain.PersonaSubscriptionHeavy:
		return fmt.Sprintf(
			"You've been identified as a Subscription Heavy user because you have %d active "+
				"recurring subscriptions totaling %s per month. This represents %.1f%% of your total "+
				"spending. We recommend a subscription audit to identify services you rarely use.",
			snapshot.Subscriptions.Count,
			dollars(snapshot.Subscriptions.MonthlySpend),
			snapshot.Subscriptions.PercentOfSpend,
		)

	case domain.PersonaSavingsBuilder:
		return fmt.Sprintf(
			"You've been identified as a Savings Builder because your savings are growing at %.1f%% "+
				"with an average monthly inflow of %s, and your credit utilization of %.1f%% is in a "+
				"healthy range. Keep it up, and consider automating your savings next.",
			snapshot.Savings.GrowthRate,
			dollars(snapshot.Savings.MonthlyInflow),
			snapshot.Credit.OverallUtilization,
		)

	default: // balanced
		return fmt.Sprintf(
			"You've been identified as a Balanced user, which means you're generally maintaining "+
				"healthy financial habits without critical issues requiring immediate attention. "+
				"Your credit utilization is %.1f%% and your monthly savings inflow is %s. "+
				"Consider setting specific goals to optimize savings or build wealth.",
			snapshot.Credit.OverallUtilization,
			dollars(snapshot.Savings.MonthlyInflow),
		)
	}
}

// ContentRationale implements ContentGenerator. Short, data-driven, always
// citing at least one literal value from the snapshot.
func (g *TemplateGenerator) ContentRationale(_ context.Context, title string, persona domain.PersonaType, snapshot signals.BehaviorSignals) string {
	switch persona {
	case domain.PersonaHighUtilization:
		text := fmt.Sprintf("Your credit utilization is %.1f%% with %s in balances",
			snapshot.Credit.OverallUtilization, dollars(snapshot.Credit.TotalBalance))
		if snapshot.Credit.MonthlyInterest > 0 {
			text += ", and you're paying interest charges"
		}
		return text + "."

	case domain.PersonaVariableIncome:
		return fmt.Sprintf("Your income arrives every %d days with %.1f months of buffer.",
			snapshot.Income.MedianGapDays, snapshot.Income.BufferMonths)

	case domain.PersonaDebtConsolidator:
		return fmt.Sprintf("You're managing %d cards at %.1f%% utilization with %s/month in interest.",
			cardsWithBalance(snapshot.Credit), snapshot.Credit.OverallUtilization,
			dollars(snapshot.Credit.MonthlyInterest))

	case domain.PersonaSubscriptionHeavy:
		return fmt.Sprintf("You have %d recurring subscriptions totaling %s/month.",
			snapshot.Subscriptions.Count, dollars(snapshot.Subscriptions.MonthlySpend))

	case domain.PersonaSavingsBuilder:
		return fmt.Sprintf("You're saving %s/month with %.1f%% growth.",
			dollars(snapshot.Savings.MonthlyInflow), snapshot.Savings.GrowthRate)

	default:
		return fmt.Sprintf("This matches your current profile: %.1f%% credit utilization and %s/month savings inflow.",
			snapshot.Credit.OverallUtilization, dollars(snapshot.Savings.MonthlyInflow))
	}
}

func hasPersonaTag(tags []string, persona domain.PersonaType) bool {
	for _, tag := range tags {
		if tag == string(persona) {
			return true
		}
	}
	return false
}

func cardsWithBalance(c signals.CreditSignals) int {
	n := 0
	for _, card := range c.PerCard {
		if card.Balance > 0 {
			n++
		}
	}
	return n
}

// dollars renders cents as a currency string for rationale text.
func dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
