// Package places looks up tourist attractions for a destination through the
// Wikipedia and Wikivoyage search APIs. It is a single-source lookup, not
// part of the hotel/transport aggregation, but follows the same rule: any
// upstream trouble degrades to fewer results, never to a failed search.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/utils"
)

const (
	wikipediaAPI  = "https://en.wikipedia.org/w/api.php"
	wikivoyageAPI = "https://en.wikivoyage.org/w/api.php"

	userAgent = "TravelScoutBot/1.0 (travel comparison service)"

	// extractLimit truncates page extracts for card display.
	extractLimit = 300

	searchLimit = 5
)

// Client queries the wiki APIs. Endpoints are fields so tests can point the
// client at a local server.
type Client struct {
	http          *http.Client
	logger        logger.Logger
	wikipediaURL  string
	wikivoyageURL string
}

// New creates a places client with a per-request timeout.
func New(timeout time.Duration, loggerClient logger.Logger) *Client {
	return &Client{
		http:          &http.Client{Timeout: timeout},
		logger:        loggerClient,
		wikipediaURL:  wikipediaAPI,
		wikivoyageURL: wikivoyageAPI,
	}
}

type searchHit struct {
	PageID int    `json:"pageid"`
	Title  string `json:"title"`
}

type searchResponse struct {
	Query struct {
		Search []searchHit `json:"search"`
	} `json:"query"`
}

type page struct {
	PageID    int    `json:"pageid"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	FullURL   string `json:"fullurl"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
}

type detailsResponse struct {
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
}

// Search returns tourist places for a location, merging Wikipedia results
// (three query variants, run concurrently) with Wikivoyage travel guides.
// Duplicate names keep the Wikipedia entry.
func (c *Client) Search(ctx context.Context, location string) ([]domain.Place, error) {
	queries := []string{
		fmt.Sprintf("%s tourist attractions Bangladesh", location),
		fmt.Sprintf("%s landmarks places to visit", location),
		fmt.Sprintf("things to do in %s", location),
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		allHits []searchHit
	)
	for _, query := range queries {
		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			hits, err := c.search(ctx, c.wikipediaURL, query)
			if err != nil {
				c.logger.Debug("wikipedia search failed",
					logger.String("query", query),
					logger.Error(err))
				return
			}
			mu.Lock()
			allHits = append(allHits, hits...)
			mu.Unlock()
		}(query)
	}
	wg.Wait()

	// Dedupe hits by pageid before the details call.
	seen := make(map[int]struct{}, len(allHits))
	titles := make([]string, 0, len(allHits))
	for _, hit := range allHits {
		if _, ok := seen[hit.PageID]; ok {
			continue
		}
		seen[hit.PageID] = struct{}{}
		titles = append(titles, hit.Title)
	}

	var places []domain.Place
	if len(titles) > 0 {
		pages, err := c.details(ctx, c.wikipediaURL, titles)
		if err != nil {
			c.logger.Warn("wikipedia details failed", logger.Error(err))
		}
		for _, p := range pages {
			places = append(places, toPlace(p, "Wikipedia", "Tourist Attraction", "No description available"))
		}
	}

	voyage, err := c.searchWikivoyage(ctx, location)
	if err != nil {
		c.logger.Debug("wikivoyage lookup failed", logger.Error(err))
	}
	places = append(places, voyage...)

	return dedupeByName(places), nil
}

// searchWikivoyage runs the travel-wiki variant of the lookup.
func (c *Client) searchWikivoyage(ctx context.Context, location string) ([]domain.Place, error) {
	hits, err := c.search(ctx, c.wikivoyageURL, location)
	if err != nil || len(hits) == 0 {
		return nil, err
	}

	titles := make([]string, len(hits))
	for i, hit := range hits {
		titles[i] = hit.Title
	}
	pages, err := c.details(ctx, c.wikivoyageURL, titles)
	if err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(pages))
	for _, p := range pages {
		place := toPlace(p, "Wikivoyage", "Travel Guide", "Travel guide available on Wikivoyage")
		place.ReviewCount = "Wikivoyage"
		places = append(places, place)
	}
	return places, nil
}

func (c *Client) search(ctx context.Context, endpoint, query string) ([]searchHit, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
		"srlimit":  {fmt.Sprintf("%d", searchLimit)},
		"origin":   {"*"},
	}

	var resp searchResponse
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	return resp.Query.Search, nil
}

func (c *Client) details(ctx context.Context, endpoint string, titles []string) ([]page, error) {
	params := url.Values{
		"action":      {"query"},
		"titles":      {strings.Join(titles, "|")},
		"prop":        {"extracts|pageimages|info"},
		"exintro":     {"true"},
		"explaintext": {"true"},
		"pithumbsize": {"500"},
		"inprop":      {"url"},
		"format":      {"json"},
		"origin":      {"*"},
	}

	var resp detailsResponse
	if err := c.get(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}

	pages := make([]page, 0, len(resp.Query.Pages))
	for _, p := range resp.Query.Pages {
		if p.PageID > 0 {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decode response")
}

func toPlace(p page, source, category, emptyDescription string) domain.Place {
	description := emptyDescription
	if p.Extract != "" {
		description = p.Extract
		if len(description) > extractLimit {
			description = description[:extractLimit] + "..."
		}
	}

	link := p.FullURL
	if link == "" {
		host := "en.wikipedia.org"
		if source == "Wikivoyage" {
			host = "en.wikivoyage.org"
		}
		link = fmt.Sprintf("https://%s/wiki/%s", host, url.PathEscape(p.Title))
	}

	place := domain.Place{
		Name:        p.Title,
		Description: description,
		Rating:      domain.RatingUnknown,
		ReviewCount: source,
		Category:    category,
		Link:        link,
		Source:      source,
	}
	if p.Thumbnail != nil {
		place.ImageURL = p.Thumbnail.Source
	}
	return place
}

func dedupeByName(places []domain.Place) []domain.Place {
	seen := make(map[string]struct{}, len(places))
	out := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out
}
