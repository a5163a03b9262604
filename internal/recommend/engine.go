package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/spendsense/internal/catalog"
	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/generator"
	"github.com/dvloznov/spendsense/internal/guardrails"
	"github.com/dvloznov/spendsense/internal/logger"
	"github.com/dvloznov/spendsense/internal/persona"
	"github.com/dvloznov/spendsense/internal/signals"
	"github.com/dvloznov/spendsense/internal/store"
)

const (
	educationLimit = 3
	offerLimit     = 3

	overrideTypeEducation = "education"
	overrideTypeOffer     = "offer"
)

// fallbackPersonaRationale replaces a persona rationale that failed the tone
// check. Deliberately generic; the trace records what was suppressed.
const fallbackPersonaRationale = "Your recommendations are based on patterns in your recent account activity."

// Engine produces recommendations for one user and window.
type Engine interface {
	GenerateRecommendations(ctx context.Context, userID string, windowDays int) (*Result, error)
}

// StandardEngine is the production pipeline: consent gate, signal snapshot,
// persona assignment (persisted for audit), content selection, guardrails,
// assembly. Stateless between calls; safe for concurrent use when its
// collaborators are.
type StandardEngine struct {
	source     store.DataSource
	catalog    *catalog.Catalog
	generator  generator.ContentGenerator
	computer   *signals.Computer
	classifier *persona.Classifier
	log        zerolog.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

// NewStandardEngine wires the pipeline over a data source, an immutable
// catalog and a content generator strategy.
func NewStandardEngine(source store.DataSource, cat *catalog.Catalog, gen generator.ContentGenerator, log zerolog.Logger) *StandardEngine {
	return &StandardEngine{
		source:     source,
		catalog:    cat,
		generator:  gen,
		computer:   signals.NewComputer(source, log),
		classifier: persona.NewClassifier(log),
		log:        log,
		now:        time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (e *StandardEngine) SetClock(now func() time.Time) {
	e.now = now
}

// GenerateRecommendations implements Engine. Unknown users and invalid
// windows are errors; a user without consent is a terminal result, not an
// error, and nothing is computed for them.
func (e *StandardEngine) GenerateRecommendations(ctx context.Context, userID string, windowDays int) (*Result, error) {
	window, err := domain.ParseWindow(windowDays)
	if err != nil {
		return nil, fmt.Errorf("GenerateRecommendations: %w", err)
	}

	log := logger.ForRequest(e.log, userID, windowDays)

	user, err := e.source.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GenerateRecommendations: %w", err)
	}

	result := &Result{
		RequestID:   uuid.New().String(),
		UserID:      userID,
		WindowDays:  windowDays,
		GeneratedAt: e.now().UTC(),
	}

	if !guardrails.HasConsent(user) {
		log.Info().Msg("Consent not granted, skipping recommendation pipeline")
		result.ConsentRequired = true
		return result, nil
	}

	snapshot, failures, err := e.computer.Compute(ctx, userID, window)
	if err != nil {
		return nil, fmt.Errorf("GenerateRecommendations: %w", err)
	}
	for _, f := range failures {
		result.Trace = append(result.Trace, TraceEntry{
			Stage:  StageSignals,
			Detail: fmt.Sprintf("extractor %s failed, zero defaults used: %s", f.Extractor, f.Cause),
		})
	}
	activeTags := signals.ActiveTags(snapshot)

	assignment := e.classifier.Classify(userID, window, snapshot)
	if err := e.source.SavePersonaAssignment(ctx, assignment); err != nil {
		// The read path survives an audit-write failure, but it is traced.
		log.Warn().Err(err).Msg("Persona assignment not persisted")
		result.Trace = append(result.Trace, TraceEntry{
			Stage:  StagePersist,
			Detail: "persona assignment not persisted: " + err.Error(),
		})
	}

	// Overrides and accounts both guard content; failing to load either
	// fails the request rather than skipping the guardrail.
	overrides, err := e.source.ListOverrides(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GenerateRecommendations: %w", err)
	}
	decisions := guardrails.ResolveOverrides(overrides)

	accounts, err := e.source.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GenerateRecommendations: %w", err)
	}

	result.Persona = assignment.Persona
	result.Confidence = assignment.Confidence
	result.PersonaRationale = e.checkedPersonaRationale(ctx, log, result, assignment.Persona, snapshot)
	result.Education = e.assembleEducation(ctx, log, result, assignment.Persona, snapshot, activeTags, overrides, decisions)
	result.Offers = e.assembleOffers(ctx, log, result, assignment.Persona, snapshot, activeTags, accounts, overrides, decisions)

	summary := SignalsSummary(snapshot)
	result.Signals = &summary
	result.Disclaimer = guardrails.Disclaimer

	log.Info().
		Str("persona", string(assignment.Persona)).
		Int("education", len(result.Education)).
		Int("offers", len(result.Offers)).
		Int("trace", len(result.Trace)).
		Msg("Recommendations assembled")

	return result, nil
}

// checkedPersonaRationale generates the persona rationale and substitutes a
// neutral fallback when the text trips the tone blocklist.
func (e *StandardEngine) checkedPersonaRationale(ctx context.Context, log zerolog.Logger, result *Result, p domain.PersonaType, snapshot signals.BehaviorSignals) string {
	rationale := e.generator.PersonaRationale(ctx, p, snapshot)
	ok, hits := guardrails.CheckTone(rationale)
	if ok {
		return rationale
	}

	log.Warn().Strs("violations", hits).Msg("Persona rationale failed tone check, using fallback text")
	result.Trace = append(result.Trace, TraceEntry{
		Stage:  StageTone,
		Detail: fmt.Sprintf("persona rationale replaced, blocked phrases: %v", hits),
	})
	return fallbackPersonaRationale
}

func (e *StandardEngine) assembleEducation(
	ctx context.Context,
	log zerolog.Logger,
	result *Result,
	p domain.PersonaType,
	snapshot signals.BehaviorSignals,
	activeTags []string,
	overrides []domain.OperatorOverride,
	decisions map[string]guardrails.OverrideDecision,
) []Recommendation {
	var recs []Recommendation
	for _, s := range e.generator.Education(p, snapshot, activeTags, educationLimit) {
		rec, ok := e.buildEducation(ctx, log, result, s, p, snapshot, decisions)
		if ok {
			recs = append(recs, rec)
		}
	}

	// Operator-approved items are included even when scoring excluded them.
	// Override records are iterated in stored order, so inclusion order is
	// reproducible.
	var forced []Recommendation
	for _, o := range overrides {
		if o.RecommendationType != overrideTypeEducation || !guardrails.Approved(decisions, o.RecommendationID) {
			continue
		}
		if containsEducation(recs, o.RecommendationID) || containsEducation(forced, o.RecommendationID) {
			continue
		}
		item, found := e.catalog.FindEducation(o.RecommendationID)
		if !found {
			result.Trace = append(result.Trace, TraceEntry{
				Stage:  StageOverride,
				Detail: "approved education item not in catalog: " + o.RecommendationID,
			})
			continue
		}
		rationale := e.generator.ContentRationale(ctx, item.Title, p, snapshot)
		if toneOK, hits := guardrails.CheckTone(rationale); !toneOK {
			result.Trace = append(result.Trace, TraceEntry{
				Stage:  StageTone,
				Detail: fmt.Sprintf("education %s suppressed, blocked phrases: %v", item.ID, hits),
			})
			continue
		}
		forced = append(forced, Recommendation{
			ID:        item.ID,
			Type:      item.Type,
			Title:     item.Title,
			Summary:   item.Summary,
			CTA:       item.CTA,
			Source:    item.Source,
			Rationale: rationale,
			Relevance: 1,
		})
		result.Trace = append(result.Trace, TraceEntry{
			Stage:  StageOverride,
			Detail: "education " + item.ID + " included by operator approval",
		})
	}

	// Forced items always survive the cap; scored items yield from the
	// bottom of the ranking.
	if over := len(recs) + len(forced) - educationLimit; over > 0 {
		keep := len(recs) - over
		if keep < 0 {
			keep = 0
		}
		recs = recs[:keep]
	}
	return append(recs, forced...)
}

func (e *StandardEngine) buildEducation(
	ctx context.Context,
	log zerolog.Logger,
	result *Result,
	s generator.ScoredEducation,
	p domain.PersonaType,
	snapshot signals.BehaviorSignals,
	decisions map[string]guardrails.OverrideDecision,
) (Recommendation, bool) {
	if guardrails.Flagged(decisions, s.Item.ID) {
		result.Trace = append(result.Trace, TraceEntry{
			Stage:  StageOverride,
			Detail: "education " + s.Item.ID + " excluded by operator flag",
		})
		return Recommendation{}, false
	}

	rationale := e.generator.ContentRationale(ctx, s.Item.Title, p, snapshot)
	if ok, hits := guardrails.CheckTone(rationale); !ok {
		log.Warn().Str("item_id", s.Item.ID).Strs("violations", hits).Msg("Education rationale failed tone check, item suppressed")
		result.Trace = append(result.Trace, TraceEntry{
			Stage:  StageTone,
			Detail: fmt.Sprintf("education %s suppressed, blocked phrases: %v", s.Item.ID, hits),
		})
		return Recommendation{}, false
	}

	return Recommendation{
		ID:        s.Item.ID,
		Type:      s.Item.Type,
		Title:     s.Item.Title,
		Summary:   s.Item.Summary,
		CTA:       s.Item.CTA,
		Source:    s.Item.Source,
		Rationale: rationale,
		Relevance: s.Relevance,
		Score:     s.Score,
	}, true
}

func (e *StandardEngine) assembleOffers(
	ctx context.Context,
	log zerolog.Logger,
	result *Result,
	p domain.PersonaType,
	snapshot signals.BehaviorSignals,
	activeTags []string,
	accounts []domain.Account,
	overrides []domain.OperatorOverride,
	decisions map[string]guardrails.OverrideDecision,
) []OfferRecommendation {
	var recs []OfferRecommendation
	for _, s := range e.generator.Offers(p, snapshot, activeTags) {
		if len(recs) == offerLimit {
			break
		}
		offer := s.Offer

		if guardrails.Flagged(decisions, offer.ID) {
			result.Trace = append(result.Trace, TraceEntry{
				Stage:  StageOverride,
				Detail: "offer " + offer.ID + " excluded by operator flag",
			})
			continue
		}

		eligible, reason := guardrails.CheckOfferEligibility(offer, snapshot, accounts, activeTags)
		if !eligible {
			if !guardrails.Approved(decisions, offer.ID) {
				result.Trace = append(result.Trace, TraceEntry{
					Stage:  StageEligibility,
					Detail: "offer " + offer.ID + " excluded: " + reason,
				})
				continue
			}
			// Operator approval overrides eligibility, never the predatory
			// floor.
			if guardrails.IsPredatory(offer) {
				result.Trace = append(result.Trace, TraceEntry{
					Stage:  StageEligibility,
					Detail: "offer " + offer.ID + " excluded despite approval: " + reason,
				})
				continue
			}
			result.Trace = append(result.Trace, TraceEntry{
				Stage:  StageOverride,
				Detail: "offer " + offer.ID + " included by operator approval over: " + reason,
			})
		}

		rec, ok := e.buildOffer(ctx, log, result, offer, s.Relevance, s.Score, p, snapshot)
		if ok {
			recs = append(recs, rec)
		}
	}

	for _, o := range overrides {
		if len(recs) == offerLimit {
			break
		}
		if o.RecommendationType != overrideTypeOffer || !guardrails.Approved(decisions, o.RecommendationID) {
			continue
		}
		if containsOffer(recs, o.RecommendationID) {
			continue
		}
		offer, found := e.catalog.FindOffer(o.RecommendationID)
		if !found {
			result.Trace = append(result.Trace, TraceEntry{
				Stage:  StageOverride,
				Detail: "approved offer not in catalog: " + o.RecommendationID,
			})
			continue
		}
		if guardrails.IsPredatory(offer) {
			result.Trace = append(result.Trace, TraceEntry{
				Stage:  StageEligibility,
				Detail: "offer " + offer.ID + " excluded despite approval: predatory product",
			})
			continue
		}
		rec, ok := e.buildOffer(ctx, log, result, offer, 1, 0, p, snapshot)
		if ok {
			recs = append(recs, rec)
			result.Trace = append(result.Trace, TraceEntry{
				Stage:  StageOverride,
				Detail: "offer " + offer.ID + " included by operator approval",
			})
		}
	}

	return recs
}

func (e *StandardEngine) buildOffer(
	ctx context.Context,
	log zerolog.Logger,
	result *Result,
	offer catalog.PartnerOffer,
	relevance int,
	score float64,
	p domain.PersonaType,
	snapshot signals.BehaviorSignals,
) (OfferRecommendation, bool) {
	rationale := e.generator.ContentRationale(ctx, offer.Title, p, snapshot)
	if ok, hits := guardrails.CheckTone(rationale); !ok {
		log.Warn().Str("offer_id", offer.ID).Strs("violations", hits).Msg("Offer rationale failed tone check, offer suppressed")
		result.Trace = append(result.Trace, TraceEntry{
			Stage:  StageTone,
			Detail: fmt.Sprintf("offer %s suppressed, blocked phrases: %v", offer.ID, hits),
		})
		return OfferRecommendation{}, false
	}

	return OfferRecommendation{
		ID:         offer.ID,
		Title:      offer.Title,
		Provider:   offer.Provider,
		OfferType:  offer.OfferType,
		Summary:    offer.Summary,
		Benefits:   offer.Benefits,
		CTA:        offer.CTA,
		CTAURL:     offer.CTAURL,
		Disclaimer: offer.Disclaimer,
		Rationale:  rationale,
		Relevance:  relevance,
		Score:      score,
	}, true
}

func containsEducation(recs []Recommendation, id string) bool {
	for _, r := range recs {
		if r.ID == id {
			return true
		}
	}
	return false
}

func containsOffer(recs []OfferRecommendation, id string) bool {
	for _, r := range recs {
		if r.ID == id {
			return true
		}
	}
	return false
}
