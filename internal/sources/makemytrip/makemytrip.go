// Package makemytrip scrapes hotel listings from MakeMyTrip.
package makemytrip

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/corpix/uarand"
	"github.com/gocolly/colly/v2"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/sources"
)

const (
	sourceName = "MakeMyTrip"
	baseURL    = "https://www.makemytrip.com"
)

type Source struct {
	timeout time.Duration
}

// New creates the MakeMyTrip hotel source.
func New(timeout time.Duration) *Source {
	return &Source{timeout: timeout}
}

func (s *Source) Name() string { return sourceName }

// Fetch visits the hotel listing page with a fresh collector per call;
// collectors are not reusable across queries.
func (s *Source) Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error) {
	if err := ctx.Err(); err != nil {
		return nil, sources.Fail(sourceName, err, "context done before fetch")
	}

	searchURL := fmt.Sprintf("%s/hotels/hotel-listing/?checkin=%s&city=%s",
		baseURL, q.CheckIn, url.QueryEscape(q.To))

	collector := colly.NewCollector(
		colly.UserAgent(uarand.GetRandom()),
	)
	collector.SetRequestTimeout(s.timeout)

	var offers []domain.Offer
	collector.OnHTML(".hotelCardListing", func(e *colly.HTMLElement) {
		offer := domain.Offer{
			Kind:        domain.KindHotel,
			Name:        sources.CleanText(e.ChildText(".hotelName")),
			Price:       sources.ParsePrice(e.ChildText(".price")),
			Rating:      sources.CleanText(e.ChildText(".rating")),
			Location:    sources.CleanText(e.ChildText(".areaName")),
			Description: sources.CleanText(e.ChildText(".hotelDesc")),
			ImageURL:    e.ChildAttr(".hotelImage img", "src"),
			Source:      sourceName,
		}
		if href := e.ChildAttr("a", "href"); href != "" {
			offer.BookingLink = baseURL + href
		}
		e.ForEach(".amenityList span", func(_ int, a *colly.HTMLElement) {
			if text := sources.CleanText(a.Text); text != "" {
				offer.Amenities = append(offer.Amenities, text)
			}
		})

		if offer.Name != "" && offer.Price > 0 {
			offers = append(offers, offer)
		}
	})

	if err := collector.Visit(searchURL); err != nil {
		return nil, sources.Fail(sourceName, err, "visit listing page")
	}
	collector.Wait()

	return offers, nil
}
