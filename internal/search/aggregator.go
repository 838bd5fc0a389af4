// Package search implements the aggregation core: concurrent fan-out over
// the registered sources of a category, a hard wall-clock budget, merge in
// registration order, dedupe by name, and category-specific ranking.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/sources"
)

// Aggregator runs every source of a category concurrently and merges the
// survivors. One failing or hanging source never affects the others; if all
// of them fail the category is simply empty.
type Aggregator struct {
	registry *sources.Registry
	timeout  time.Duration
	logger   logger.Logger
}

// NewAggregator creates an aggregator with a per-category timeout.
func NewAggregator(registry *sources.Registry, timeout time.Duration, loggerClient logger.Logger) *Aggregator {
	return &Aggregator{
		registry: registry,
		timeout:  timeout,
		logger:   loggerClient,
	}
}

type outcome struct {
	idx    int
	offers []domain.Offer
	err    error
}

// Aggregate fetches from every source of the category at once and waits for
// all of them, but no longer than the configured timeout. Sources still
// running at the deadline count as failed; their late results are discarded.
// The returned slice is never nil and each source outcome is logged.
func (a *Aggregator) Aggregate(ctx context.Context, category sources.Category, q domain.TripQuery) []domain.Offer {
	srcs := a.registry.Sources(category)
	if len(srcs) == 0 {
		return []domain.Offer{}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// Buffered so abandoned sources can still deliver and exit.
	ch := make(chan outcome, len(srcs))
	for i, src := range srcs {
		go func(i int, src sources.Source) {
			offers, err := src.Fetch(ctx, q)
			ch <- outcome{idx: i, offers: offers, err: err}
		}(i, src)
	}

	// Results keep slot order: merging by slot preserves registration
	// order, which decides who owns a duplicate name.
	results := make([][]domain.Offer, len(srcs))
	settled := make([]bool, len(srcs))
	received := 0

collect:
	for received < len(srcs) {
		select {
		case o := <-ch:
			received++
			settled[o.idx] = true
			name := srcs[o.idx].Name()
			if o.err != nil {
				a.logger.Warn("source failed",
					logger.String("category", string(category)),
					logger.String("source", name),
					logger.Error(cause(o.err)))
				continue
			}
			a.logger.Info("source succeeded",
				logger.String("category", string(category)),
				logger.String("source", name),
				logger.Int("offers", len(o.offers)))
			results[o.idx] = o.offers
		case <-ctx.Done():
			for i, ok := range settled {
				if !ok {
					a.logger.Warn("source timed out",
						logger.String("category", string(category)),
						logger.String("source", srcs[i].Name()),
						logger.Duration("budget", a.timeout))
				}
			}
			break collect
		}
	}

	merged := make([]domain.Offer, 0)
	for _, offers := range results {
		for _, o := range offers {
			if admissible(category, o) {
				merged = append(merged, o)
			}
		}
	}

	merged = domain.DedupeByName(merged)
	switch category {
	case sources.CategoryTransportation:
		domain.SortTransportation(merged)
	default:
		domain.SortHotels(merged)
	}
	return merged
}

// admissible drops records that violate the normalization contract: a
// missing name is always invalid, and a hotel without a real price is
// unusable. Transportation keeps unpriced entries only when they carry the
// informational sentinel.
func admissible(category sources.Category, o domain.Offer) bool {
	if o.Name == "" {
		return false
	}
	if category == sources.CategoryHotels {
		return o.Price > 0
	}
	return o.Price > 0 || o.Informational()
}

// cause unwraps a source failure so the log line shows the source's own
// message once, not the full wrap chain twice.
func cause(err error) error {
	var failure *sources.Failure
	if errors.As(err, &failure) {
		return failure.Err
	}
	return err
}
