// Package agoda scrapes hotel cards from Agoda search result pages.
package agoda

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/sources"
)

const (
	sourceName = "Agoda"
	baseURL    = "https://www.agoda.com"
)

type Source struct {
	client *sources.Client
}

// New creates the Agoda hotel source.
func New(client *sources.Client) *Source {
	return &Source{client: client}
}

func (s *Source) Name() string { return sourceName }

// Fetch scrapes the search result page for the destination city. Selector
// misses yield an empty result, not an error: Agoda changing its markup must
// not look like an outage.
func (s *Source) Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error) {
	searchURL := fmt.Sprintf("%s/search?city=%s&checkIn=%s",
		baseURL, url.QueryEscape(q.To), q.CheckIn)

	doc, err := s.client.GetDocument(ctx, searchURL)
	if err != nil {
		return nil, sources.Fail(sourceName, err, "fetch search page")
	}

	var offers []domain.Offer
	doc.Find(".hotel-card").Each(func(_ int, card *goquery.Selection) {
		offer := domain.Offer{
			Kind:        domain.KindHotel,
			Name:        sources.CleanText(card.Find(".hotel-name").Text()),
			Price:       sources.ParsePrice(card.Find(".price").Text()),
			Rating:      sources.CleanText(card.Find(".rating").Text()),
			Location:    sources.CleanText(card.Find(".location").Text()),
			Description: sources.CleanText(card.Find(".description").Text()),
			Source:      sourceName,
		}

		if href, ok := card.Find("a").Attr("href"); ok {
			offer.BookingLink = baseURL + href
		}
		if src, ok := card.Find(".hotel-image img").Attr("src"); ok {
			offer.ImageURL = src
		}
		card.Find(".amenities span").Each(func(_ int, a *goquery.Selection) {
			if text := sources.CleanText(a.Text()); text != "" {
				offer.Amenities = append(offer.Amenities, text)
			}
		})

		// Admission predicate: a hotel without a name or a real price is
		// not a usable offer.
		if offer.Name != "" && offer.Price > 0 {
			offers = append(offers, offer)
		}
	})

	return offers, nil
}
