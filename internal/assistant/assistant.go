// Package assistant wraps the Gemini model (through its OpenAI-compatible
// endpoint) for the travel chat, itinerary planning and destination
// recommendation features. The assistant is optional: without an API key it
// reports ErrDisabled and the rest of the service runs unaffected.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/asifrahman/travelscout/internal/logger"
)

// ErrDisabled is returned by every operation when no API key is configured.
var ErrDisabled = errors.New("assistant is not configured")

const travelSystemPrompt = `You are TravelScout AI — a friendly, expert travel assistant. You help users with:
- Destination recommendations and travel tips
- Hotel and accommodation advice
- Transportation guidance (flights, buses, trains)
- Itinerary planning and trip optimization
- Budget planning and cost estimates
- Visa requirements and travel documentation
- Local cuisine, culture, and customs
- Safety tips and travel advisories
- Packing lists and travel preparation

Guidelines:
- Be concise but informative (aim for 2-4 paragraphs max)
- Use bullet points for lists
- Include practical tips and insider knowledge
- If asked about prices, give approximate ranges in USD
- Always be helpful and enthusiastic about travel
- If you don't know something specific, say so honestly
- Format responses with markdown for readability`

const itinerarySystemPrompt = `You are TravelScout's AI Trip Planner. Generate detailed, practical travel itineraries.

For each day, include:
- Morning, afternoon, and evening activities
- Specific places to visit with brief descriptions
- Estimated time at each location
- Transportation between locations
- Meal recommendations (breakfast, lunch, dinner) with cuisine type
- Approximate costs in USD

Format the itinerary as a structured JSON with this exact schema:
{
  "title": "Trip title",
  "summary": "Brief 1-2 sentence trip summary",
  "totalEstimatedBudget": { "min": number, "max": number, "currency": "USD" },
  "bestTimeToVisit": "string",
  "tips": ["tip1", "tip2", "tip3"],
  "days": [
    {
      "day": 1,
      "title": "Day theme/title",
      "activities": [
        {
          "time": "09:00 AM",
          "activity": "Activity name",
          "description": "Brief description",
          "duration": "2 hours",
          "cost": "$10-15",
          "type": "sightseeing|food|transport|shopping|adventure|culture|relaxation"
        }
      ]
    }
  ]
}

IMPORTANT: Return ONLY valid JSON, no markdown code blocks, no extra text.`

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ItineraryRequest describes the trip to plan.
type ItineraryRequest struct {
	Destination string `json:"destination"`
	From        string `json:"from,omitempty"`
	Days        int    `json:"days"`
	Budget      string `json:"budget,omitempty"`
	Interests   string `json:"interests,omitempty"`
	Travelers   int    `json:"travelers,omitempty"`
}

// Itinerary is the model's structured plan. RawText carries the unparsed
// reply when the model strays from the schema, so the caller can still show
// something.
type Itinerary struct {
	Plan    json.RawMessage `json:"itinerary,omitempty"`
	RawText string          `json:"rawText,omitempty"`
}

// Assistant calls the chat model. A nil *Assistant is valid and disabled.
type Assistant struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// New builds an assistant against baseURL. Returns nil (disabled) when
// apiKey is empty.
func New(apiKey, baseURL, model string, loggerClient logger.Logger) *Assistant {
	if apiKey == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Assistant{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: loggerClient,
	}
}

// Enabled reports whether the assistant can serve requests.
func (a *Assistant) Enabled() bool { return a != nil }

// Chat answers a travel question, with optional prior conversation turns.
func (a *Assistant) Chat(ctx context.Context, message string, history []Message) (string, error) {
	if a == nil {
		return "", ErrDisabled
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: travelSystemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    msgs,
		MaxTokens:   2048,
		Temperature: 0.7,
		TopP:        0.9,
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// PlanItinerary asks the model for a day-by-day plan. When the reply is not
// the promised JSON, the raw text is returned instead of an error.
func (a *Assistant) PlanItinerary(ctx context.Context, req ItineraryRequest) (*Itinerary, error) {
	if a == nil {
		return nil, ErrDisabled
	}

	budget := req.Budget
	if budget == "" {
		budget = "moderate"
	}
	travelers := req.Travelers
	if travelers <= 0 {
		travelers = 2
	}
	interests := req.Interests
	if interests == "" {
		interests = "general sightseeing, local food, culture"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d-day trip itinerary for %s", req.Days, req.Destination)
	if req.From != "" {
		fmt.Fprintf(&b, " (traveling from %s)", req.From)
	}
	fmt.Fprintf(&b, ".\nBudget level: %s\n", budget)
	fmt.Fprintf(&b, "Number of travelers: %d\n", travelers)
	fmt.Fprintf(&b, "Interests: %s\n\n", interests)
	b.WriteString("Remember: Return ONLY valid JSON matching the schema above.")

	text, err := a.complete(ctx, itinerarySystemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	text = stripCodeFences(text)
	if !json.Valid([]byte(text)) {
		a.logger.Warn("itinerary reply is not valid JSON", logger.Int("length", len(text)))
		return &Itinerary{RawText: text}, nil
	}
	return &Itinerary{Plan: json.RawMessage(text)}, nil
}

// Recommend suggests destinations for free-form preferences.
func (a *Assistant) Recommend(ctx context.Context, preferences map[string]interface{}) (json.RawMessage, error) {
	if a == nil {
		return nil, ErrDisabled
	}

	encoded, err := json.Marshal(preferences)
	if err != nil {
		return nil, errors.Wrap(err, "encode preferences")
	}
	prompt := fmt.Sprintf(`Based on these travel preferences, recommend 5 destinations. Return ONLY valid JSON.

Preferences: %s

Return format:
{
  "recommendations": [
    {
      "destination": "City, Country",
      "reason": "Why this destination matches",
      "bestFor": "What it's best for",
      "budgetRange": "$XX-$XX per day",
      "bestSeason": "Best time to visit",
      "highlights": ["highlight1", "highlight2", "highlight3"]
    }
  ]
}`, encoded)

	text, err := a.complete(ctx, "", prompt)
	if err != nil {
		return nil, err
	}
	text = stripCodeFences(text)
	if !json.Valid([]byte(text)) {
		return nil, errors.New("recommendations reply is not valid JSON")
	}
	return json.RawMessage(text), nil
}

func (a *Assistant) complete(ctx context.Context, system, prompt string) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    msgs,
		Temperature: 0.7,
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var codeFenceRe = regexp.MustCompile("(?i)```(?:json)?\\s*")

// stripCodeFences removes markdown code fences some models wrap JSON in.
func stripCodeFences(s string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(s, ""))
}
