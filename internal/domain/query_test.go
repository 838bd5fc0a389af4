package domain

import (
	"errors"
	"testing"
)

func TestTripQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   TripQuery
		wantErr string // empty = valid, otherwise expected field
	}{
		{
			name:  "valid full query",
			query: TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01", CheckOut: "2025-06-03"},
		},
		{
			name:  "valid without checkOut",
			query: TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01"},
		},
		{
			name:    "missing from",
			query:   TripQuery{To: "Sylhet", CheckIn: "2025-06-01"},
			wantErr: "from",
		},
		{
			name:    "missing to",
			query:   TripQuery{From: "Dhaka", CheckIn: "2025-06-01"},
			wantErr: "to",
		},
		{
			name:    "missing checkIn",
			query:   TripQuery{From: "Dhaka", To: "Sylhet"},
			wantErr: "checkIn",
		},
		{
			name:    "malformed checkIn",
			query:   TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "01/06/2025"},
			wantErr: "checkIn",
		},
		{
			name:    "malformed checkOut",
			query:   TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01", CheckOut: "June 3"},
			wantErr: "checkOut",
		},
		{
			name:    "checkOut before checkIn",
			query:   TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-05", CheckOut: "2025-06-01"},
			wantErr: "checkOut",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantErr {
				t.Errorf("Validate() field = %q, want %q", verr.Field, tt.wantErr)
			}
		})
	}
}

func TestTripQueryWithDefaults(t *testing.T) {
	tests := []struct {
		name         string
		checkIn      string
		wantCheckOut string
	}{
		{name: "plain next day", checkIn: "2025-06-01", wantCheckOut: "2025-06-02"},
		{name: "month rollover", checkIn: "2025-06-30", wantCheckOut: "2025-07-01"},
		{name: "year rollover", checkIn: "2025-12-31", wantCheckOut: "2026-01-01"},
		{name: "leap february", checkIn: "2028-02-28", wantCheckOut: "2028-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: tt.checkIn}.WithDefaults()
			if err != nil {
				t.Fatalf("WithDefaults() error = %v", err)
			}
			if q.CheckOut != tt.wantCheckOut {
				t.Errorf("CheckOut = %q, want %q", q.CheckOut, tt.wantCheckOut)
			}
		})
	}
}

func TestTripQueryWithDefaultsKeepsExplicitCheckOut(t *testing.T) {
	q, err := TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01", CheckOut: "2025-06-10"}.WithDefaults()
	if err != nil {
		t.Fatalf("WithDefaults() error = %v", err)
	}
	if q.CheckOut != "2025-06-10" {
		t.Errorf("CheckOut = %q, want explicit value preserved", q.CheckOut)
	}
}

func TestTripQueryCacheKeyStable(t *testing.T) {
	a := TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01", CheckOut: "2025-06-02"}
	b := TripQuery{From: "Dhaka", To: "Sylhet", CheckIn: "2025-06-01", CheckOut: "2025-06-02"}
	if a.CacheKey() != b.CacheKey() {
		t.Error("structurally identical queries must share a cache key")
	}

	c := TripQuery{From: "Sylhet", To: "Dhaka", CheckIn: "2025-06-01", CheckOut: "2025-06-02"}
	if a.CacheKey() == c.CacheKey() {
		t.Error("different queries must not collide")
	}
}
