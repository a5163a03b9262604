package domain

import (
	"time"
)

// PersonaType is the fixed set of behavioral personas. "balanced" is the
// always-matching default.
type PersonaType string

const (
	PersonaHighUtilization   PersonaType = "high_utilization"
	PersonaVariableIncome    PersonaType = "variable_income"
	PersonaDebtConsolidator  PersonaType = "debt_consolidator"
	PersonaSubscriptionHeavy PersonaType = "subscription_heavy"
	PersonaSavingsBuilder    PersonaType = "savings_builder"
	PersonaBalanced          PersonaType = "balanced"
)

// PersonaTypes lists all personas in priority order, most urgent first.
// The classifier walks this order; the assembler uses it for display.
var PersonaTypes = []PersonaType{
	PersonaHighUtilization,
	PersonaVariableIncome,
	PersonaDebtConsolidator,
	PersonaSubscriptionHeavy,
	PersonaSavingsBuilder,
	PersonaBalanced,
}

// Valid reports whether p is a member of the fixed persona enum.
func (p PersonaType) Valid() bool {
	for _, t := range PersonaTypes {
		if p == t {
			return true
		}
	}
	return false
}

// PersonaAssignment is a persisted persona decision for one (user, window)
// pair, kept for audit and override lookup.
type PersonaAssignment struct {
	ID         string
	UserID     string
	Window     Window
	Persona    PersonaType
	Confidence float64 // always within [0,1]
	AssignedAt time.Time
}
