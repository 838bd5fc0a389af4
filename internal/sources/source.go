// Package sources defines the contract every external data source must
// satisfy and the registry that groups sources by category. A source turns a
// trip query into normalized offers or fails with a typed Failure; it never
// leaks transport- or parser-level errors past its boundary.
package sources

import (
	"context"

	"github.com/asifrahman/travelscout/internal/domain"
)

// Category selects which sources participate in one aggregation call.
type Category string

const (
	CategoryHotels         Category = "hotels"
	CategoryTransportation Category = "transportation"
)

// Source is one external data source. Fetch returns a possibly empty slice
// of offers conforming to the domain schema, or an error. A source whose
// site markup changed (selectors no longer match) returns an empty slice
// rather than an error: an empty result is survivable, a crash is not
// distinguishable from an outage.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error)
}
