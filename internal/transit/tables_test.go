package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTables(t *testing.T) *Tables {
	t.Helper()
	tables, err := Load("")
	require.NoError(t, err, "embedded tables must parse")
	return tables
}

func TestAirportCode(t *testing.T) {
	tables := loadTables(t)

	tests := []struct {
		city string
		want string
		ok   bool
	}{
		{"Dhaka", "DAC", true},
		{"dhaka", "DAC", true},
		{"Sylhet", "ZYL", true},
		{"Chattogram", "CGP", true},
		{"Dhaka Airport", "DAC", true}, // substring match
		{"Atlantis", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			code, ok := tables.AirportCode(tt.city)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRouteLookupBothDirections(t *testing.T) {
	tables := loadTables(t)

	forward, ok := tables.Route("DAC", "ZYL")
	require.True(t, ok)
	assert.Equal(t, 55.0, forward.BasePrice)
	assert.Equal(t, 0, forward.Stops)

	reverse, ok := tables.Route("ZYL", "DAC")
	require.True(t, ok)
	assert.Equal(t, forward, reverse, "route data is direction-independent")

	_, ok = tables.Route("ZYL", "CXB")
	assert.False(t, ok, "unlisted route pair")
}

func TestRegionAndDefaults(t *testing.T) {
	tables := loadTables(t)

	assert.Equal(t, "bangladesh_domestic", tables.Region("DAC"))
	assert.Equal(t, "americas", tables.Region("JFK"))
	assert.Equal(t, "europe", tables.Region("XXX"), "unknown airports fall back to europe")

	d := tables.RegionDefaults("americas")
	assert.Equal(t, 750.0, d.BasePrice)
	assert.Equal(t, 18.0, d.Hours)
}

func TestAirlinesNonEmptyForEveryRegion(t *testing.T) {
	tables := loadTables(t)
	for _, region := range []string{
		"bangladesh_domestic", "south_asia", "middle_east",
		"southeast_asia", "east_asia", "europe", "americas",
	} {
		assert.NotEmpty(t, tables.Airlines(region), "region %s", region)
	}
}

func TestBusFare(t *testing.T) {
	tables := loadTables(t)

	fare, ok := tables.BusFare("Dhaka", "Sylhet")
	require.True(t, ok)
	assert.Equal(t, 700, fare)

	fare, ok = tables.BusFare("Sylhet", "Dhaka")
	require.True(t, ok)
	assert.Equal(t, 700, fare, "fares are direction-independent")

	_, ok = tables.BusFare("Dhaka", "Paris")
	assert.False(t, ok)
}

func TestTrains(t *testing.T) {
	tables := loadTables(t)

	trains := tables.Trains("Dhaka", "Sylhet")
	require.Len(t, trains, 3)
	assert.Equal(t, "Parabat Express (709/710)", trains[0].Name)
	assert.Equal(t, 550, trains[0].Fare)

	assert.Equal(t, trains, tables.Trains("Sylhet", "Dhaka"))
	assert.Equal(t,
		tables.Trains("Dhaka", "Chittagong"),
		tables.Trains("Dhaka", "Chattogram"),
		"chattogram normalizes to chittagong")

	assert.Empty(t, tables.Trains("Dhaka", "Barisal"), "no rail route")
}

func TestDomesticAndRailCityGates(t *testing.T) {
	tables := loadTables(t)

	assert.True(t, tables.IsDomesticCity("Dhaka"))
	assert.True(t, tables.IsDomesticCity("cox's bazar"))
	assert.False(t, tables.IsDomesticCity("London"))

	assert.True(t, tables.IsRailCity("Chattogram"))
	assert.False(t, tables.IsRailCity("Barisal"), "barisal has buses but no rail")
}
