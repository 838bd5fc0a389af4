// Package transit holds the static lookup tables backing the flight, bus
// and rail sources: city-to-IATA mapping, per-route price/duration data with
// regional fallbacks, airlines and transfer hubs by region, bus operators
// and fares, and known train schedules. All lookups are pure functions of
// the loaded tables, so sources built on them are deterministic.
package transit

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/transit.yaml
var embeddedTables []byte

// fallbackRegion is assumed for airports absent from every region list.
const fallbackRegion = "europe"

// Tables is the parsed, immutable transit dataset.
type Tables struct {
	airports       map[string]string
	regionOf       map[string]string // IATA -> region name
	regionDefaults map[string]RouteInfo
	airlines       map[string][]Airline
	hubs           map[string][]string
	routes         map[string]map[string]RouteInfo
	domesticCities []string
	railCities     []string
	busOperators   []BusOperator
	busFares       map[string]int
	trains         map[string][]TrainService
}

// Load parses the transit tables from path, or from the embedded dataset
// when path is empty.
func Load(path string) (*Tables, error) {
	data := embeddedTables
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read transit file: %w", err)
		}
		data = b
	}

	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse transit yaml: %w", err)
	}

	regionOf := make(map[string]string)
	for region, codes := range file.Regions {
		for _, code := range codes {
			regionOf[code] = region
		}
	}

	return &Tables{
		airports:       file.Airports,
		regionOf:       regionOf,
		regionDefaults: file.RegionDefaults,
		airlines:       file.Airlines,
		hubs:           file.Hubs,
		routes:         file.Routes,
		domesticCities: file.DomesticCities,
		railCities:     file.RailCities,
		busOperators:   file.BusOperators,
		busFares:       file.BusFares,
		trains:         file.Trains,
	}, nil
}

// AirportCode resolves a city name to its IATA code. Exact match first,
// then a substring match in either direction so "Dhaka Airport" still
// resolves.
func (t *Tables) AirportCode(city string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(city))
	if code, ok := t.airports[lower]; ok {
		return code, true
	}
	for key, code := range t.airports {
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return code, true
		}
	}
	return "", false
}

// Region returns the region an airport belongs to.
func (t *Tables) Region(code string) string {
	if region, ok := t.regionOf[code]; ok {
		return region
	}
	return fallbackRegion
}

// Route returns the known route data between two airports, checking both
// directions.
func (t *Tables) Route(from, to string) (RouteInfo, bool) {
	if m, ok := t.routes[from]; ok {
		if r, ok := m[to]; ok {
			return r, true
		}
	}
	if m, ok := t.routes[to]; ok {
		if r, ok := m[from]; ok {
			return r, true
		}
	}
	return RouteInfo{}, false
}

// RegionDefaults returns the estimated price and duration for flights into a
// region without explicit route data.
func (t *Tables) RegionDefaults(region string) RouteInfo {
	if d, ok := t.regionDefaults[region]; ok {
		return d
	}
	return RouteInfo{BasePrice: 400, Hours: 8}
}

// Airlines returns the carriers serving a region.
func (t *Tables) Airlines(region string) []Airline {
	if a, ok := t.airlines[region]; ok && len(a) > 0 {
		return a
	}
	return t.airlines[fallbackRegion]
}

// Hubs returns the transfer hubs used for one-stop routes into a region.
func (t *Tables) Hubs(region string) []string {
	if h, ok := t.hubs[region]; ok {
		return h
	}
	return t.hubs[fallbackRegion]
}

// IsDomesticCity reports whether a city is on the domestic bus network.
func (t *Tables) IsDomesticCity(city string) bool {
	lower := strings.ToLower(strings.TrimSpace(city))
	for _, c := range t.domesticCities {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

// IsRailCity reports whether a city is on the rail network.
func (t *Tables) IsRailCity(city string) bool {
	lower := strings.ToLower(strings.TrimSpace(city))
	for _, c := range t.railCities {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

// BusOperators returns the coach companies used for generated bus options.
func (t *Tables) BusOperators() []BusOperator {
	return t.busOperators
}

// BusFare returns the base coach fare between two cities, checking both
// directions. The bool is false for unknown routes.
func (t *Tables) BusFare(from, to string) (int, bool) {
	f := strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	if fare, ok := t.busFares[f+"-"+to]; ok {
		return fare, true
	}
	if fare, ok := t.busFares[to+"-"+f]; ok {
		return fare, true
	}
	return 0, false
}

// Trains returns the scheduled trains between two cities, checking both
// directions. City names are normalized so "chattogram" matches the
// "chittagong" route keys.
func (t *Tables) Trains(from, to string) []TrainService {
	f := normalizeRailCity(from)
	dest := normalizeRailCity(to)
	if trains, ok := t.trains[f+"-"+dest]; ok {
		return trains
	}
	return t.trains[dest+"-"+f]
}

func normalizeRailCity(city string) string {
	lower := strings.ToLower(strings.TrimSpace(city))
	return strings.ReplaceAll(lower, "chattogram", "chittagong")
}
