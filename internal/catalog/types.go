// Package catalog holds the static content catalog: education items and
// partner offers. The catalog is loaded once at process start and treated as
// immutable afterwards, so it is safe to share across concurrent requests.
package catalog

// EducationItem is one curated educational content entry.
type EducationItem struct {
	ID          string   `yaml:"id"`
	Type        string   `yaml:"type"` // "article", "video", "tool"
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Body        string   `yaml:"body"`
	CTA         string   `yaml:"cta"`
	Source      string   `yaml:"source"` // "template", "llm", "human"
	PersonaTags []string `yaml:"persona_tags"`
	SignalTags  []string `yaml:"signal_tags"`
}

// EligibilityRules are the declarative gates an offer carries. Every
// populated rule must pass independently; failing any one excludes the
// offer. Amounts are cents, utilization bounds are percent.
type EligibilityRules struct {
	MinMonthlyIncome   int64    `yaml:"min_monthly_income"`
	MinUtilization     *float64 `yaml:"min_credit_utilization"`
	MaxUtilization     *float64 `yaml:"max_credit_utilization"`
	ExcludedSubtypes   []string `yaml:"excluded_account_subtypes"`
	RequiredSignals    []string `yaml:"required_signals"`
	ExcludedSignals    []string `yaml:"excluded_signals"`
}

// PartnerOffer is one partner product or service entry.
type PartnerOffer struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Provider    string           `yaml:"provider"`
	OfferType   string           `yaml:"offer_type"` // product category, e.g. "savings_account"
	APR         float64          `yaml:"apr"`        // 0 when not a credit product
	Summary     string           `yaml:"summary"`
	Benefits    []string         `yaml:"benefits"`
	CTA         string           `yaml:"cta"`
	CTAURL      string           `yaml:"cta_url"`
	Disclaimer  string           `yaml:"disclaimer"`
	PersonaTags []string         `yaml:"persona_tags"`
	SignalTags  []string         `yaml:"signal_tags"`
	Eligibility EligibilityRules `yaml:"eligibility_rules"`
}

// Catalog bundles both item sets. Slice order is the catalog-declared order
// and is the deterministic tie-break during ranking.
type Catalog struct {
	Education []EducationItem `yaml:"education"`
	Offers    []PartnerOffer  `yaml:"partner_offers"`
}

// FindEducation returns the education item with the given id, if present.
func (c *Catalog) FindEducation(id string) (EducationItem, bool) {
	for _, item := range c.Education {
		if item.ID == id {
			return item, true
		}
	}
	return EducationItem{}, false
}

// FindOffer returns the partner offer with the given id, if present.
func (c *Catalog) FindOffer(id string) (PartnerOffer, bool) {
	for _, offer := range c.Offers {
		if offer.ID == id {
			return offer, true
		}
	}
	return PartnerOffer{}, false
}
