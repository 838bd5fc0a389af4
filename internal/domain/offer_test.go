package domain

import (
	"testing"
)

func TestDedupeByNameFirstWins(t *testing.T) {
	offers := []Offer{
		{Kind: KindHotel, Name: "Grand Hotel", Price: 100, Source: "Booking.com"},
		{Kind: KindHotel, Name: "Grand Hotel", Price: 80, Source: "Agoda"},
		{Kind: KindHotel, Name: "Sea Pearl", Price: 120, Source: "Agoda"},
		{Kind: KindHotel, Name: "Sea Pearl", Price: 90, Source: "MakeMyTrip"},
	}

	got := DedupeByName(offers)
	if len(got) != 2 {
		t.Fatalf("DedupeByName() len = %d, want 2", len(got))
	}
	if got[0].Source != "Booking.com" || got[0].Price != 100 {
		t.Errorf("Grand Hotel owned by %s at %.0f, want Booking.com at 100", got[0].Source, got[0].Price)
	}
	if got[1].Source != "Agoda" {
		t.Errorf("Sea Pearl owned by %s, want Agoda", got[1].Source)
	}
}

func TestDedupeByNameCaseSensitive(t *testing.T) {
	offers := []Offer{
		{Name: "Grand Hotel", Source: "a"},
		{Name: "grand hotel", Source: "b"},
	}
	if got := DedupeByName(offers); len(got) != 2 {
		t.Errorf("dedupe key is the exact name string; got %d offers, want 2", len(got))
	}
}

func TestSortHotelsUnknownPriceLast(t *testing.T) {
	offers := []Offer{
		{Name: "c", Price: 300},
		{Name: "free?", Price: 0},
		{Name: "a", Price: 100},
		{Name: "b", Price: 200},
	}

	SortHotels(offers)

	for i := 0; i < len(offers)-1; i++ {
		a, b := offers[i], offers[i+1]
		if a.Price > 0 && b.Price > 0 && a.Price > b.Price {
			t.Errorf("priced offers out of order at %d: %.0f > %.0f", i, a.Price, b.Price)
		}
	}
	if offers[len(offers)-1].Name != "free?" {
		t.Errorf("zero-price offer must sort last, got order %v", names(offers))
	}
}

func TestSortTransportationKindThenPrice(t *testing.T) {
	offers := []Offer{
		{Kind: KindMultimodal, Name: "All routes", Price: 0, Stops: StopsInformational},
		{Kind: KindTrain, Name: "Parabat Express", Price: 550},
		{Kind: KindBus, Name: "Green Line", Price: 1050},
		{Kind: KindFlight, Name: "Search flights", Price: 0, Stops: StopsInformational},
		{Kind: KindFlight, Name: "Novoair VQ931", Price: 6100},
		{Kind: KindFlight, Name: "US-Bangla BS141", Price: 5800},
		{Kind: KindBus, Name: "Hanif Enterprise", Price: 840},
	}

	SortTransportation(offers)

	want := []string{
		"US-Bangla BS141",
		"Novoair VQ931",
		"Search flights", // informational flight sorts after priced flights
		"Hanif Enterprise",
		"Green Line",
		"Parabat Express",
		"All routes",
	}
	got := names(offers)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func names(offers []Offer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.Name
	}
	return out
}
