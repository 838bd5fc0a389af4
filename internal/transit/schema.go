package transit

// tablesFile is the YAML schema of the transit data file.
type tablesFile struct {
	Airports       map[string]string         `yaml:"airports"`
	Regions        map[string][]string       `yaml:"regions"`
	RegionDefaults map[string]RouteInfo      `yaml:"regionDefaults"`
	Airlines       map[string][]Airline      `yaml:"airlines"`
	Hubs           map[string][]string       `yaml:"hubs"`
	Routes         map[string]map[string]RouteInfo `yaml:"routes"`
	DomesticCities []string                  `yaml:"domesticCities"`
	RailCities     []string                  `yaml:"railCities"`
	BusOperators   []BusOperator             `yaml:"busOperators"`
	BusFares       map[string]int            `yaml:"busFares"`
	Trains         map[string][]TrainService `yaml:"trains"`
}

// RouteInfo describes one flight route (or a regional default when Stops is
// unset).
type RouteInfo struct {
	BasePrice float64 `yaml:"basePrice"`
	Hours     float64 `yaml:"hours"`
	Stops     int     `yaml:"stops"`
}

// Airline is a carrier operating in one region.
type Airline struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

// BusOperator is a coach company with a fare multiplier relative to the
// route's base fare.
type BusOperator struct {
	Name       string  `yaml:"name"`
	Coach      string  `yaml:"coach"`
	Multiplier float64 `yaml:"multiplier"`
}

// TrainService is one scheduled train on a known rail route.
type TrainService struct {
	Name      string `yaml:"name"`
	Class     string `yaml:"class"`
	Fare      int    `yaml:"fare"`
	Duration  string `yaml:"duration"`
	Departure string `yaml:"departure"`
}
