package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all query dates.
const DateLayout = "2006-01-02"

// TripQuery is the normalized input of a search. It is built once per
// inbound request and never mutated afterwards; WithDefaults returns a copy.
type TripQuery struct {
	From     string `json:"from"`
	To       string `json:"to"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut,omitempty"`
}

// ValidationError signals a bad or missing query field. It maps to a 400 at
// the HTTP boundary; aggregation never starts when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid query: %s %s", e.Field, e.Reason)
}

// Validate checks presence, date format and date ordering.
func (q TripQuery) Validate() error {
	if q.From == "" {
		return &ValidationError{Field: "from", Reason: "is required"}
	}
	if q.To == "" {
		return &ValidationError{Field: "to", Reason: "is required"}
	}
	if q.CheckIn == "" {
		return &ValidationError{Field: "checkIn", Reason: "is required"}
	}
	checkIn, err := time.Parse(DateLayout, q.CheckIn)
	if err != nil {
		return &ValidationError{Field: "checkIn", Reason: "must be YYYY-MM-DD"}
	}
	if q.CheckOut != "" {
		checkOut, err := time.Parse(DateLayout, q.CheckOut)
		if err != nil {
			return &ValidationError{Field: "checkOut", Reason: "must be YYYY-MM-DD"}
		}
		if checkOut.Before(checkIn) {
			return &ValidationError{Field: "checkOut", Reason: "must not be before checkIn"}
		}
	}
	return nil
}

// WithDefaults returns a copy of the query with CheckOut filled in as
// CheckIn + 1 calendar day when absent. AddDate handles month and year
// rollover.
func (q TripQuery) WithDefaults() (TripQuery, error) {
	if err := q.Validate(); err != nil {
		return TripQuery{}, err
	}
	if q.CheckOut == "" {
		checkIn, _ := time.Parse(DateLayout, q.CheckIn)
		q.CheckOut = checkIn.AddDate(0, 0, 1).Format(DateLayout)
	}
	return q, nil
}

// CacheKey serializes the query with a fixed field order so structurally
// identical queries always produce the same key.
func (q TripQuery) CacheKey() string {
	return fmt.Sprintf("from=%s|to=%s|checkIn=%s|checkOut=%s", q.From, q.To, q.CheckIn, q.CheckOut)
}
