// Package bus finds coach options on Bangladesh domestic routes. It tries a
// live Shohoz scrape first and falls back to the operator fare table when
// the scrape yields nothing.
package bus

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/sources"
	"github.com/asifrahman/travelscout/internal/transit"
)

const (
	sourceName   = "Shohoz"
	fallbackName = "TravelScout"

	// unknownRouteFare seeds fallback fares for domestic routes missing
	// from the fare table.
	unknownRouteFare = 500

	maxFallbackOptions = 5
)

var departureTimes = []string{
	"06:00 AM", "08:00 AM", "10:30 AM", "01:00 PM", "05:00 PM", "08:00 PM", "10:30 PM",
}

type Source struct {
	client *sources.Client
	tables *transit.Tables
	logger logger.Logger
}

// New creates the bus source.
func New(client *sources.Client, tables *transit.Tables, loggerClient logger.Logger) *Source {
	return &Source{client: client, tables: tables, logger: loggerClient}
}

func (s *Source) Name() string { return sourceName }

// Fetch returns coach options between two domestic cities. International
// routes have no bus network and yield an empty result.
func (s *Source) Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error) {
	if !s.tables.IsDomesticCity(q.From) || !s.tables.IsDomesticCity(q.To) {
		return nil, nil
	}

	if offers := s.scrapeShohoz(ctx, q); len(offers) > 0 {
		return offers, nil
	}

	return s.generateFromTable(q), nil
}

// scrapeShohoz parses the Shohoz trip listing. Any failure, including stale
// selectors, degrades to the fare-table fallback instead of an error.
func (s *Source) scrapeShohoz(ctx context.Context, q domain.TripQuery) []domain.Offer {
	from := strings.ToLower(strings.TrimSpace(q.From))
	to := strings.ToLower(strings.TrimSpace(q.To))
	routeURL := fmt.Sprintf("https://www.shohoz.com/bus-tickets/%s-to-%s",
		url.QueryEscape(from), url.QueryEscape(to))

	doc, err := s.client.GetDocument(ctx, routeURL+"?journeyDate="+q.CheckIn)
	if err != nil {
		s.logger.Debug("shohoz scrape failed, using fare table",
			logger.String("route", from+"-"+to),
			logger.Error(err))
		return nil
	}

	var offers []domain.Offer
	doc.Find(".trip-item, .bus-list-item, [class*='tripItem']").Each(func(_ int, trip *goquery.Selection) {
		name := sources.CleanText(trip.Find(".operator-name, .company-name, h3, h4").First().Text())
		price := sources.ParsePrice(trip.Find(".fare, .price, [class*='fare']").First().Text())
		if name == "" && price <= 0 {
			return
		}

		offer := domain.Offer{
			Kind:          domain.KindBus,
			Name:          name,
			Provider:      name,
			Price:         price,
			Currency:      "BDT",
			Duration:      "See website",
			DepartureTime: sources.CleanText(trip.Find(".departure, .dep-time").First().Text()),
			ArrivalTime:   sources.CleanText(trip.Find(".arrival, .arr-time").First().Text()),
			Rating:        domain.RatingUnknown,
			Description:   fmt.Sprintf("%s → %s Bus", q.From, q.To),
			BookingLink:   routeURL,
			Source:        sourceName,
		}
		if offer.Name == "" {
			offer.Name = "Bus Service"
			offer.Provider = sourceName
		}
		if offer.DepartureTime == "" {
			offer.DepartureTime = "See website"
		}
		if offer.ArrivalTime == "" {
			offer.ArrivalTime = "See website"
		}
		offers = append(offers, offer)
	})

	return offers
}

// generateFromTable builds options from the known operators and the base
// fare for the route, with a flat default for unlisted domestic pairs.
func (s *Source) generateFromTable(q domain.TripQuery) []domain.Offer {
	baseFare, ok := s.tables.BusFare(q.From, q.To)
	if !ok {
		baseFare = unknownRouteFare
	}
	estHours := baseFare/100 + 2

	from := strings.ToLower(strings.TrimSpace(q.From))
	to := strings.ToLower(strings.TrimSpace(q.To))
	bookingLink := fmt.Sprintf("https://www.shohoz.com/bus-tickets/%s-to-%s",
		url.QueryEscape(from), url.QueryEscape(to))

	operators := s.tables.BusOperators()
	if len(operators) > maxFallbackOptions {
		operators = operators[:maxFallbackOptions]
	}

	offers := make([]domain.Offer, 0, len(operators))
	for i, op := range operators {
		offers = append(offers, domain.Offer{
			Kind:          domain.KindBus,
			Name:          op.Name,
			Provider:      op.Name,
			Price:         math.Round(float64(baseFare) * op.Multiplier),
			Currency:      "BDT",
			Duration:      fmt.Sprintf("~%dh", estHours),
			DepartureTime: departureTimes[i%len(departureTimes)],
			ArrivalTime:   "See booking site",
			CoachType:     op.Coach,
			Rating:        domain.RatingUnknown,
			Description:   fmt.Sprintf("%s Coach · %s → %s · ~%dh", op.Coach, q.From, q.To, estHours),
			BookingLink:   bookingLink,
			Source:        fallbackName,
		})
	}
	return offers
}
