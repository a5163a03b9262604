package generator

import (
	"sort"

	"github.com/dvloznov/spendsense/internal/domain"
	"github.com/dvloznov/spendsense/internal/signals"
)

// Relevance scoring constants. A persona-tag match carries the base score;
// each matching signal tag adds a bonus up to the cap; the total is clamped
// and mapped to a 1..5 tier.
const (
	personaMatchScore = 0.5
	signalTagBonus    = 0.1
	signalBonusCap    = 0.5
	scoreCeiling      = 1.0
)

// relevanceScore computes the raw match score for one catalog entry.
func relevanceScore(personaTags, signalTags []string, persona domain.PersonaType, activeTags []string) float64 {
	var score float64

	for _, tag := range personaTags {
		if tag == string(persona) {
			score += personaMatchScore
			break
		}
	}

	var bonus float64
	for _, tag := range signalTags {
		if signals.HasTag(activeTags, tag) {
			bonus += signalTagBonus
		}
	}
	if bonus > signalBonusCap {
		bonus = signalBonusCap
	}
	score += bonus

	if score > scoreCeiling {
		score = scoreCeiling
	}
	return score
}

// relevanceTier maps a raw score to the discrete 1..5 scale.
func relevanceTier(score float64) int {
	switch {
	case score < 0.2:
		return 1
	case score < 0.4:
		return 2
	case score < 0.6:
		return 3
	case score < 0.8:
		return 4
	default:
		return 5
	}
}

// sortEducation ranks by score descending; catalog-declared order breaks
// ties so identical inputs always rank identically.
func sortEducation(items []ScoredEducation) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].CatalogIndex < items[j].CatalogIndex
	})
}

func sortOffers(offers []ScoredOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].Score != offers[j].Score {
			return offers[i].Score > offers[j].Score
		}
		return offers[i].CatalogIndex < offers[j].CatalogIndex
	})
}
