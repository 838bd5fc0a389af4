// Package booking scrapes Booking.com search results with a headless
// browser. Booking renders hotel cards client-side, so a plain HTTP fetch
// sees none of them.
package booking

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/corpix/uarand"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/sources"
)

const (
	sourceName   = "Booking.com"
	cardSelector = `[data-testid="property-card"]`

	// selectorWait bounds how long we wait for hotel cards after the page
	// loads. Past this we assume the markup changed and return empty.
	selectorWait = 20 * time.Second
)

type Source struct {
	navTimeout time.Duration
	retries    int
	backoff    time.Duration
	logger     logger.Logger
}

// New creates the Booking.com hotel source.
func New(navTimeout time.Duration, retries int, backoff time.Duration, loggerClient logger.Logger) *Source {
	return &Source{
		navTimeout: navTimeout,
		retries:    retries,
		backoff:    backoff,
		logger:     loggerClient,
	}
}

func (s *Source) Name() string { return sourceName }

// card mirrors the fields extracted from one property card in the page.
type card struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Rating      string   `json:"rating"`
	Location    string   `json:"location"`
	BookingLink string   `json:"bookingLink"`
	Amenities   []string `json:"amenities"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
}

// extractJS pulls every property card into a plain object array. Selectors
// are tried best-effort; missing pieces come back empty and are filtered on
// the Go side.
const extractJS = `Array.from(document.querySelectorAll('[data-testid="property-card"]')).map(function (item) {
	var text = function (sel) {
		var el = item.querySelector(sel);
		return el && el.innerText ? el.innerText.trim() : "";
	};
	var attr = function (sel, name) {
		var el = item.querySelector(sel);
		return el ? (el[name] || "") : "";
	};
	return {
		name: text('[data-testid="title"]'),
		price: text('[data-testid="price-and-discounted-price"]'),
		rating: text('.b5cd09854e'),
		location: text('[data-testid="address"]'),
		bookingLink: attr('a', 'href'),
		amenities: Array.from(item.querySelectorAll('[data-testid="facility-icons"] span'))
			.map(function (s) { return s.innerText ? s.innerText.trim() : ""; })
			.filter(function (s) { return s !== ""; }),
		imageUrl: attr('[data-testid="property-card-desktop-single-image"] img', 'src'),
		description: text('[data-testid="description"]')
	};
})`

// Fetch drives a headless browser through a Booking.com search. The browser
// allocation is scoped to this call: every return path runs the deferred
// cancels, which tears the browser down even when the caller has already
// stopped waiting.
func (s *Source) Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error) {
	searchURL := fmt.Sprintf(
		"https://www.booking.com/searchresults.html?ss=%s&checkin=%s&checkout=%s&group_adults=2&no_rooms=1&group_children=0",
		url.QueryEscape(q.To), q.CheckIn, q.CheckOut)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("disable-features", "IsolateOrigins,site-per-process"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(uarand.GetRandom()),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelNav := context.WithTimeout(browserCtx, s.navTimeout)
	defer cancelNav()

	// Navigation is the flaky step; retry it with fixed backoff.
	err := sources.Retry(browserCtx, s.retries, s.backoff, func() error {
		return chromedp.Run(browserCtx, chromedp.Navigate(searchURL))
	})
	if err != nil {
		return nil, sources.Fail(sourceName, err, "navigate to search results")
	}

	// Missing cards after a successful load means the site structure
	// changed; an empty result keeps the aggregation alive.
	waitCtx, cancelWait := context.WithTimeout(browserCtx, selectorWait)
	defer cancelWait()
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(cardSelector, chromedp.ByQuery)); err != nil {
		s.logger.Warn("hotel cards not found, selectors may be stale",
			logger.String("source", sourceName),
			logger.Error(err))
		return nil, nil
	}

	var cards []card
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(extractJS, &cards)); err != nil {
		return nil, sources.Fail(sourceName, err, "extract property cards")
	}

	offers := make([]domain.Offer, 0, len(cards))
	for _, c := range cards {
		offer := domain.Offer{
			Kind:        domain.KindHotel,
			Name:        sources.CleanText(c.Name),
			Price:       sources.ParsePrice(c.Price),
			Rating:      sources.CleanText(c.Rating),
			Location:    sources.CleanText(c.Location),
			BookingLink: c.BookingLink,
			Amenities:   c.Amenities,
			ImageURL:    c.ImageURL,
			Description: sources.CleanText(c.Description),
			Source:      sourceName,
		}
		if offer.Name != "" && offer.Price > 0 {
			offers = append(offers, offer)
		}
	}

	return offers, nil
}
