package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/search/cache"
	"github.com/asifrahman/travelscout/internal/sources"
)

type fakePlaces struct {
	places []domain.Place
	calls  atomic.Int64
}

func (f *fakePlaces) Search(_ context.Context, _ string) ([]domain.Place, error) {
	f.calls.Add(1)
	return f.places, nil
}

type countingSource struct {
	fakeSource
	calls atomic.Int64
}

func (c *countingSource) Fetch(ctx context.Context, q domain.TripQuery) ([]domain.Offer, error) {
	c.calls.Add(1)
	return c.fakeSource.Fetch(ctx, q)
}

func newOrchestrator(t *testing.T, hotelSrc, transportSrc sources.Source, places PlacesFinder) *Orchestrator {
	t.Helper()
	log := logger.New("error", false)
	hotels := sources.NewRegistry()
	if hotelSrc != nil {
		hotels.Add(sources.CategoryHotels, hotelSrc)
	}
	transport := sources.NewRegistry()
	if transportSrc != nil {
		transport.Add(sources.CategoryTransportation, transportSrc)
	}
	return NewOrchestrator(
		NewAggregator(hotels, time.Second, log),
		NewAggregator(transport, time.Second, log),
		places,
		cache.New(time.Hour),
		5*time.Second,
		log,
	)
}

func validQuery() domain.TripQuery {
	return domain.TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01"}
}

func TestSearchRejectsInvalidQuery(t *testing.T) {
	o := newOrchestrator(t, nil, nil, &fakePlaces{})

	_, err := o.Search(context.Background(), "", domain.TripQuery{From: "Dhaka"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "to", verr.Field)
}

func TestSearchEnvelopeAlwaysWellFormed(t *testing.T) {
	// Every upstream empty: the envelope still carries all three
	// collections as empty arrays plus full metadata.
	o := newOrchestrator(t, nil, nil, &fakePlaces{})

	res, err := o.Search(context.Background(), "", validQuery())
	require.NoError(t, err)
	require.NotNil(t, res.Hotels)
	require.NotNil(t, res.Transportation)
	require.NotNil(t, res.TouristPlaces)
	assert.Empty(t, res.Hotels)

	assert.NotEmpty(t, res.Meta.SearchID)
	assert.False(t, res.Meta.Timestamp.IsZero())
	assert.Equal(t, "2025-06-02", res.Meta.SearchParams.CheckOut, "missing checkOut defaults to the next day")
	assert.Equal(t, Counts{}, res.Meta.Counts)
}

func TestSearchPopulatesAllCategories(t *testing.T) {
	hotelSrc := &fakeSource{name: "Agoda", offers: []domain.Offer{hotel("Hotel Sarina", "Agoda", 90)}}
	transportSrc := &fakeSource{name: "Rail", offers: []domain.Offer{{Kind: domain.KindTrain, Name: "Suborna Express", Price: 650}}}
	places := &fakePlaces{places: []domain.Place{{Name: "Lalbagh Fort"}}}

	res, err := newOrchestrator(t, hotelSrc, transportSrc, places).
		Search(context.Background(), "", validQuery())
	require.NoError(t, err)

	assert.Equal(t, Counts{Transportation: 1, Hotels: 1, TouristPlaces: 1}, res.Meta.Counts)
	assert.Equal(t, "Hotel Sarina", res.Hotels[0].Name)
	assert.Equal(t, "Suborna Express", res.Transportation[0].Name)
	assert.Equal(t, "Lalbagh Fort", res.TouristPlaces[0].Name)
}

func TestSearchServesRepeatQueryFromCache(t *testing.T) {
	hotelSrc := &countingSource{fakeSource: fakeSource{name: "Agoda", offers: []domain.Offer{hotel("Hotel Sarina", "Agoda", 90)}}}
	places := &fakePlaces{places: []domain.Place{{Name: "Lalbagh Fort"}}}
	o := newOrchestrator(t, hotelSrc, nil, places)

	first, err := o.Search(context.Background(), "", validQuery())
	require.NoError(t, err)
	second, err := o.Search(context.Background(), "", validQuery())
	require.NoError(t, err)

	assert.Equal(t, int64(1), hotelSrc.calls.Load(), "second search never reaches the source")
	assert.Equal(t, int64(1), places.calls.Load())
	assert.Equal(t, first.Hotels, second.Hotels)
	assert.NotEqual(t, first.Meta.SearchID, second.Meta.SearchID, "metadata is fresh per search")
}

func TestSearchNewSessionRequestCancelsPrevious(t *testing.T) {
	slow := &fakeSource{name: "slow", delay: 10 * time.Second}
	o := newOrchestrator(t, slow, nil, &fakePlaces{})

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = o.Search(context.Background(), "session-1", validQuery())
	}()
	time.Sleep(50 * time.Millisecond)

	// Same session, different query: must preempt the one above.
	q := validQuery()
	q.To = "Chittagong"
	ctx2, cancel2 := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = o.Search(ctx2, "session-1", q)
	}()

	wg.Wait()
	assert.ErrorIs(t, firstErr, context.Canceled)
	cancel2()
	<-done
}
