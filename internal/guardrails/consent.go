package guardrails

import (
	"github.com/dvloznov/spendsense/internal/domain"
)

// HasConsent reports whether the user permits recommendation processing.
// Without consent the whole pipeline short-circuits before any signal is
// computed or exposed.
func HasConsent(user domain.User) bool {
	return user.Consent
}
