package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/search/cache"
	"github.com/asifrahman/travelscout/internal/sources"
)

// PlacesFinder is the tourist-places lookup the orchestrator fans out to
// alongside the two offer categories.
type PlacesFinder interface {
	Search(ctx context.Context, location string) ([]domain.Place, error)
}

// Counts summarizes the envelope for the response metadata.
type Counts struct {
	Transportation int `json:"transportation"`
	Hotels         int `json:"hotels"`
	TouristPlaces  int `json:"touristPlaces"`
}

// Meta describes how and when a result was produced.
type Meta struct {
	SearchParams domain.TripQuery `json:"searchParams"`
	SearchID     string           `json:"searchId"`
	Timestamp    time.Time        `json:"timestamp"`
	Counts       Counts           `json:"counts"`
}

// Result is the response envelope. All three collections are always
// present, possibly empty, never null.
type Result struct {
	Transportation []domain.Offer `json:"transportation"`
	Hotels         []domain.Offer `json:"hotels"`
	TouristPlaces  []domain.Place `json:"touristPlaces"`
	Meta           Meta           `json:"meta"`
}

// Orchestrator runs a full trip search: validation, per-category cache
// lookups, parallel aggregation of hotels, transportation and tourist
// places, and assembly of the envelope.
type Orchestrator struct {
	hotels    *Aggregator
	transport *Aggregator
	places    PlacesFinder
	cache     *cache.Cache
	timeout   time.Duration
	logger    logger.Logger

	mu       sync.Mutex
	inflight map[string]*flight
}

// flight identifies one active search of a session.
type flight struct {
	cancel context.CancelFunc
}

// NewOrchestrator wires the orchestrator. The timeout is the outer budget
// for the whole search; it should sit above the aggregators' own budgets so
// they, not the orchestrator, are what normally cuts a slow source off.
func NewOrchestrator(hotels, transport *Aggregator, places PlacesFinder, resultCache *cache.Cache, timeout time.Duration, loggerClient logger.Logger) *Orchestrator {
	return &Orchestrator{
		hotels:    hotels,
		transport: transport,
		places:    places,
		cache:     resultCache,
		timeout:   timeout,
		logger:    loggerClient,
		inflight:  make(map[string]*flight),
	}
}

// Search executes a trip search. sessionID, when non-empty, enforces
// single-flight per client session: starting a new search cancels the
// session's previous one, whose call returns context.Canceled.
func (o *Orchestrator) Search(ctx context.Context, sessionID string, q domain.TripQuery) (*Result, error) {
	q, err := q.WithDefaults()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	if sessionID != "" {
		f := o.claim(sessionID, cancel)
		defer o.release(sessionID, f)
	}

	started := time.Now()
	result := &Result{
		Transportation: []domain.Offer{},
		Hotels:         []domain.Offer{},
		TouristPlaces:  []domain.Place{},
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		result.Hotels = o.offers(ctx, o.hotels, sources.CategoryHotels, q)
	}()
	go func() {
		defer wg.Done()
		result.Transportation = o.offers(ctx, o.transport, sources.CategoryTransportation, q)
	}()
	go func() {
		defer wg.Done()
		result.TouristPlaces = o.touristPlaces(ctx, q)
	}()
	wg.Wait()

	if ctx.Err() == context.Canceled {
		return nil, ctx.Err()
	}

	result.Meta = Meta{
		SearchParams: q,
		SearchID:     uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Counts: Counts{
			Transportation: len(result.Transportation),
			Hotels:         len(result.Hotels),
			TouristPlaces:  len(result.TouristPlaces),
		},
	}

	o.logger.Info("search completed",
		logger.String("searchId", result.Meta.SearchID),
		logger.String("from", q.From),
		logger.String("to", q.To),
		logger.Int("hotels", result.Meta.Counts.Hotels),
		logger.Int("transportation", result.Meta.Counts.Transportation),
		logger.Int("touristPlaces", result.Meta.Counts.TouristPlaces),
		logger.Duration("took", time.Since(started)))
	return result, nil
}

// offers serves a category from cache when possible; on a miss it runs the
// aggregator and stores the outcome. An interrupted run is never cached.
func (o *Orchestrator) offers(ctx context.Context, agg *Aggregator, category sources.Category, q domain.TripQuery) []domain.Offer {
	key := cache.Key(string(category), q)
	if v, ok := o.cache.Get(key); ok {
		o.logger.Info("cache hit", logger.String("key", key))
		return v.([]domain.Offer)
	}

	offers := agg.Aggregate(ctx, category, q)
	if ctx.Err() == nil {
		o.cache.Set(key, offers)
	}
	return offers
}

func (o *Orchestrator) touristPlaces(ctx context.Context, q domain.TripQuery) []domain.Place {
	key := cache.Key("places", q)
	if v, ok := o.cache.Get(key); ok {
		o.logger.Info("cache hit", logger.String("key", key))
		return v.([]domain.Place)
	}

	places, err := o.places.Search(ctx, q.To)
	if err != nil {
		o.logger.Warn("places lookup failed", logger.Error(err))
		return []domain.Place{}
	}
	if places == nil {
		places = []domain.Place{}
	}
	if ctx.Err() == nil {
		o.cache.Set(key, places)
	}
	return places
}

// claim registers the session's active search, cancelling any search the
// session still has running.
func (o *Orchestrator) claim(sessionID string, cancel context.CancelFunc) *flight {
	f := &flight{cancel: cancel}
	o.mu.Lock()
	prev := o.inflight[sessionID]
	o.inflight[sessionID] = f
	o.mu.Unlock()
	if prev != nil {
		prev.cancel()
	}
	return f
}

// release removes the session entry, but only if it still points at this
// search; a newer search may have already replaced it.
func (o *Orchestrator) release(sessionID string, f *flight) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inflight[sessionID] == f {
		delete(o.inflight, sessionID)
	}
}
