package signals

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendsense/internal/domain"
)

// DataSource is the slice of the data-access layer the aggregator needs.
// Implementations must bound the transaction set to the requested window.
type DataSource interface {
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	ListTransactions(ctx context.Context, userID string, window domain.Window) ([]domain.Transaction, error)
}

// ExtractorFailure records one extractor that errored and was defaulted to
// its zero record. Failures never abort the snapshot.
type ExtractorFailure struct {
	Extractor string
	Cause     string
}

// Computer fetches the bounded record set and runs all four extractors.
// There is no caching: every call recomputes from source records, trading
// CPU for freshness.
type Computer struct {
	source DataSource
	log    zerolog.Logger
}

// NewComputer creates a signal computer over the given data source.
func NewComputer(source DataSource, log zerolog.Logger) *Computer {
	return &Computer{source: source, log: log}
}

// Compute builds the full snapshot for one user and window. A panicking
// extractor is recovered into its zero record and reported in the returned
// failure list; fetch errors are the only hard failures.
func (c *Computer) Compute(ctx context.Context, userID string, window domain.Window) (BehaviorSignals, []ExtractorFailure, error) {
	accounts, err := c.source.ListAccounts(ctx, userID)
	if err != nil {
		return Zero(), nil, fmt.Errorf("Compute: list accounts: %w", err)
	}
	transactions, err := c.source.ListTransactions(ctx, userID, window)
	if err != nil {
		return Zero(), nil, fmt.Errorf("Compute: list transactions: %w", err)
	}

	c.log.Debug().
		Str("user_id", userID).
		Int("accounts", len(accounts)).
		Int("transactions", len(transactions)).
		Msg("Computing behavioral signals")

	out := Zero()
	var failures []ExtractorFailure

	c.runExtractor("subscriptions", &failures, func() {
		out.Subscriptions = DetectSubscriptions(transactions, window)
	})
	c.runExtractor("savings", &failures, func() {
		out.Savings = AnalyzeSavings(accounts, transactions, window)
	})
	c.runExtractor("credit", &failures, func() {
		out.Credit = AnalyzeCredit(accounts)
	})
	c.runExtractor("income", &failures, func() {
		out.Income = AnalyzeIncome(transactions, window)
	})

	return out, failures, nil
}

// runExtractor isolates one extractor so a panic degrades that signal to its
// zero value instead of aborting the pipeline.
func (c *Computer) runExtractor(name string, failures *[]ExtractorFailure, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().
				Str("extractor", name).
				Interface("cause", r).
				Msg("Signal extractor failed, using zero defaults")
			*failures = append(*failures, ExtractorFailure{
				Extractor: name,
				Cause:     fmt.Sprintf("%v", r),
			})
		}
	}()
	fn()
}
