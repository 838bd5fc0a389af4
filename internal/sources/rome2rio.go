package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/asifrahman/travelscout/internal/domain"
)

// Rome2Rio emits a single multimodal search link covering every transport
// mode for the route. It never fails and is registered last so the link
// trails the real offers.
type Rome2Rio struct{}

// NewRome2Rio creates the multimodal link source.
func NewRome2Rio() *Rome2Rio {
	return &Rome2Rio{}
}

func (r *Rome2Rio) Name() string { return "Rome2Rio" }

func (r *Rome2Rio) Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error) {
	return []domain.Offer{{
		Kind:          domain.KindMultimodal,
		Name:          fmt.Sprintf("All routes: %s → %s", q.From, q.To),
		Provider:      "Rome2Rio",
		Price:         0,
		Currency:      "BDT",
		Duration:      "Various",
		DepartureTime: "Various",
		ArrivalTime:   "Various",
		Stops:         domain.StopsInformational,
		Rating:        domain.RatingUnknown,
		Description:   fmt.Sprintf("Explore all transport options — flights, trains, buses, ferries — from %s to %s", q.From, q.To),
		BookingLink:   fmt.Sprintf("https://www.rome2rio.com/s/%s/%s", url.QueryEscape(q.From), url.QueryEscape(q.To)),
		Source:        "Rome2Rio",
	}}, nil
}
