package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asifrahman/travelscout/internal/domain"
	"github.com/asifrahman/travelscout/internal/httpserver/deps"
	"github.com/asifrahman/travelscout/internal/logger"
	"github.com/asifrahman/travelscout/internal/search"
	"github.com/asifrahman/travelscout/internal/search/cache"
	"github.com/asifrahman/travelscout/internal/sources"
)

type stubSource struct {
	name   string
	offers []domain.Offer
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(context.Context, domain.TripQuery) ([]domain.Offer, error) {
	return s.offers, nil
}

type stubPlaces struct{}

func (stubPlaces) Search(context.Context, string) ([]domain.Place, error) {
	return []domain.Place{{Name: "Lalbagh Fort", Rating: domain.RatingUnknown}}, nil
}

func testDeps(t *testing.T) deps.Deps {
	t.Helper()
	log := logger.New("error", false)

	registry := sources.NewRegistry()
	registry.Add(sources.CategoryHotels, &stubSource{name: "Agoda", offers: []domain.Offer{
		{Kind: domain.KindHotel, Name: "Hotel Sarina", Provider: "Agoda", Price: 90, Currency: "USD"},
	}})
	registry.Add(sources.CategoryTransportation, &stubSource{name: "Bangladesh Railway", offers: []domain.Offer{
		{Kind: domain.KindTrain, Name: "Suborna Express", Price: 650, Currency: "BDT"},
	}})

	agg := search.NewAggregator(registry, time.Second, log)
	resultCache := cache.New(time.Hour)
	orch := search.NewOrchestrator(agg, agg, stubPlaces{}, resultCache, 5*time.Second, log)

	return deps.Deps{
		Logger:       log,
		StartTime:    time.Now(),
		Version:      "test",
		Orchestrator: orch,
		Sources:      registry,
		Cache:        resultCache,
		Assistant:    nil,
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestSearchHandlerReturnsEnvelope(t *testing.T) {
	d := testDeps(t)

	w := postJSON(t, Search(d), domain.TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01"})
	require.Equal(t, http.StatusOK, w.Code)

	var res search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Hotels, 1)
	assert.Len(t, res.Transportation, 1)
	assert.Len(t, res.TouristPlaces, 1)
	assert.NotEmpty(t, res.Meta.SearchID)
	assert.Equal(t, "2025-06-02", res.Meta.SearchParams.CheckOut)
}

func TestSearchHandlerRejectsBadQuery(t *testing.T) {
	d := testDeps(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing to", domain.TripQuery{From: "Dhaka", CheckIn: "2025-06-01"}},
		{"bad date", domain.TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "01/06/2025"}},
		{"checkOut before checkIn", domain.TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-05", CheckOut: "2025-06-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, Search(d), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestSearchHandlerRejectsMalformedJSON(t *testing.T) {
	d := testDeps(t)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	Search(d)(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthHandler(t *testing.T) {
	d := testDeps(t)
	d.Cache.Set("k", "v")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	Health(d)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.CacheEntries)
	assert.Equal(t, []string{"Agoda"}, resp.Sources["hotels"])
	assert.Equal(t, []string{"Bangladesh Railway"}, resp.Sources["transportation"])
	assert.False(t, resp.Assistant)
}

func TestCacheClearHandler(t *testing.T) {
	d := testDeps(t)
	d.Cache.Set("a", 1)
	d.Cache.Set("b", 2)

	req := httptest.NewRequest(http.MethodPost, "/api/cache/clear", nil)
	w := httptest.NewRecorder()
	CacheClear(d)(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cacheClearResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Removed)
	assert.Equal(t, 0, d.Cache.Size())
}

func TestAssistantHandlersUnavailableWithoutKey(t *testing.T) {
	d := testDeps(t)

	w := postJSON(t, Chat(d), chatRequest{Message: "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = postJSON(t, Itinerary(d), map[string]interface{}{"destination": "Sylhet", "days": 2})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = postJSON(t, Recommendations(d), map[string]interface{}{"budget": "low"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestChatHandlerRequiresMessage(t *testing.T) {
	d := testDeps(t)
	w := postJSON(t, Chat(d), chatRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
