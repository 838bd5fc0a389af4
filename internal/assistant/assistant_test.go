package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asifrahman/travelscout/internal/logger"
)

// fakeModel serves a fixed chat completion reply.
func fakeModel(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "gemini-2.5-flash",
			"choices": []map[string]interface{}{
				{"index": 0, "finish_reason": "stop", "message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func newAssistant(t *testing.T, reply string) *Assistant {
	t.Helper()
	srv := fakeModel(t, reply)
	t.Cleanup(srv.Close)
	return New("test-key", srv.URL+"/v1", "gemini-2.5-flash", logger.New("error", false))
}

func TestNilAssistantIsDisabled(t *testing.T) {
	a := New("", "", "gemini-2.5-flash", logger.New("error", false))
	require.Nil(t, a)
	assert.False(t, a.Enabled())

	_, err := a.Chat(context.Background(), "hi", nil)
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = a.PlanItinerary(context.Background(), ItineraryRequest{Destination: "Sylhet", Days: 2})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestChatReturnsModelReply(t *testing.T) {
	a := newAssistant(t, "Sylhet is lovely in winter.")

	reply, err := a.Chat(context.Background(), "When should I visit Sylhet?", []Message{
		{Role: "user", Content: "Planning a trip."},
		{Role: "assistant", Content: "Happy to help!"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sylhet is lovely in winter.", reply)
}

func TestPlanItineraryParsesJSON(t *testing.T) {
	a := newAssistant(t, "```json\n{\"title\":\"Two days in Sylhet\",\"days\":[]}\n```")

	it, err := a.PlanItinerary(context.Background(), ItineraryRequest{Destination: "Sylhet", Days: 2})
	require.NoError(t, err)
	assert.Empty(t, it.RawText)

	var plan struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(it.Plan, &plan))
	assert.Equal(t, "Two days in Sylhet", plan.Title)
}

func TestPlanItineraryKeepsRawTextOnSchemaDrift(t *testing.T) {
	a := newAssistant(t, "Day 1: arrive and relax. Day 2: tea gardens.")

	it, err := a.PlanItinerary(context.Background(), ItineraryRequest{Destination: "Sylhet", Days: 2})
	require.NoError(t, err, "non-JSON output degrades, it does not fail")
	assert.Nil(t, it.Plan)
	assert.Contains(t, it.RawText, "tea gardens")
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"{\"a\":1}", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFences(tt.in))
	}
}
