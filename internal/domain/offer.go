package domain

import (
	"math"
	"sort"
)

// Kind discriminates the category-specific fields of an Offer.
type Kind string

const (
	KindHotel      Kind = "hotel"
	KindFlight     Kind = "flight"
	KindBus        Kind = "bus"
	KindTrain      Kind = "train"
	KindMultimodal Kind = "multimodal"
)

const (
	// RatingUnknown marks an explicitly unknown rating. It is never coerced
	// to a numeric zero.
	RatingUnknown = "N/A"

	// StopsInformational tags search-link placeholder entries that carry no
	// real price and must sort after every priced offer of the same kind.
	StopsInformational = -1
)

// Offer is the unified record every source produces. It is immutable once
// built: downstream code filters and reorders slices of Offers but never
// rewrites fields.
type Offer struct {
	Kind        Kind     `json:"type"`
	Name        string   `json:"name"`
	Provider    string   `json:"provider,omitempty"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	PriceUSD    float64  `json:"priceUSD,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	Location    string   `json:"location,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Description string   `json:"description,omitempty"`

	// Transportation fields
	Duration      string `json:"duration,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Stops         int    `json:"stops,omitempty"`
	StopDetails   string `json:"stopDetails,omitempty"`
	CoachType     string `json:"coachType,omitempty"`
	TrainClass    string `json:"trainClass,omitempty"`

	BookingLink       string `json:"bookingLink,omitempty"`
	GoogleFlightsLink string `json:"googleFlightsLink,omitempty"`
	KayakLink         string `json:"kayakLink,omitempty"`

	Source string `json:"source"`
}

// Informational reports whether the offer is a search-link placeholder
// rather than a bookable option.
func (o Offer) Informational() bool { return o.Stops == StopsInformational }

// transportRank orders transportation kinds: flights first, then buses,
// trains, and multimodal search links.
func transportRank(k Kind) int {
	switch k {
	case KindFlight:
		return 0
	case KindBus:
		return 1
	case KindTrain:
		return 2
	case KindMultimodal:
		return 3
	default:
		return 4
	}
}

// sortPrice maps an offer price to a sort key. Unknown prices (zero or
// negative) rank after every real price, never as "free".
func sortPrice(o Offer) float64 {
	if o.Price <= 0 {
		return math.Inf(1)
	}
	return o.Price
}

// DedupeByName drops offers whose Name was already seen, keeping the first
// occurrence. Input order is the priority order: the earliest source to
// produce a name owns it.
func DedupeByName(offers []Offer) []Offer {
	seen := make(map[string]struct{}, len(offers))
	out := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if _, ok := seen[o.Name]; ok {
			continue
		}
		seen[o.Name] = struct{}{}
		out = append(out, o)
	}
	return out
}

// SortHotels orders hotel offers by ascending price. Offers without a usable
// price sort last.
func SortHotels(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return sortPrice(offers[i]) < sortPrice(offers[j])
	})
}

// SortTransportation orders transport offers by kind rank
// (flight < bus < train < multimodal), with informational placeholder
// entries last within their kind, then by ascending price.
func SortTransportation(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i], offers[j]
		ra, rb := transportRank(a.Kind), transportRank(b.Kind)
		if ra != rb {
			return ra < rb
		}
		if a.Informational() != b.Informational() {
			return !a.Informational()
		}
		return sortPrice(a) < sortPrice(b)
	})
}
