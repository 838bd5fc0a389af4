// Package rail lists Bangladesh Railway services from the train schedule
// table. There is no scraping involved: the eticket site requires a login,
// so known schedules are served as informational, table-backed offers.
package rail

import (
	"context"
	"fmt"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/sources"
	"github.com/asifrahman/travelscout/internal/transit"
)

const (
	sourceName  = "Bangladesh Railway"
	bookingLink = "https://eticket.railway.gov.bd"
)

type Source struct {
	tables *transit.Tables
}

// New creates the rail source.
func New(tables *transit.Tables) *Source {
	return &Source{tables: tables}
}

func (s *Source) Name() string { return sourceName }

// Fetch returns the scheduled trains between two rail cities, or nothing
// when either city is off the network or the pair has no listed route.
func (s *Source) Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, sources.Fail(sourceName, err, "context done before lookup")
	}
	if !s.tables.IsRailCity(q.From) || !s.tables.IsRailCity(q.To) {
		return nil, nil
	}

	trains := s.tables.Trains(q.From, q.To)
	offers := make([]domain.Offer, 0, len(trains))
	for _, tr := range trains {
		offers = append(offers, domain.Offer{
			Kind:          domain.KindTrain,
			Name:          tr.Name,
			Provider:      sourceName,
			Price:         float64(tr.Fare),
			Currency:      "BDT",
			Duration:      tr.Duration,
			DepartureTime: tr.Departure,
			ArrivalTime:   "See website",
			TrainClass:    tr.Class,
			Rating:        domain.RatingUnknown,
			Description:   fmt.Sprintf("%s · %s · %s", tr.Class, tr.Duration, sourceName),
			BookingLink:   bookingLink,
			Source:        sourceName,
		})
	}
	return offers, nil
}
