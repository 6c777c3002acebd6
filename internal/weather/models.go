package weather

// Category codes used by the short-term forecast API.
const (
	CategoryPOP = "POP" // precipitation probability, %
	CategoryPTY = "PTY" // precipitation type
	CategoryPCP = "PCP" // 1h precipitation
	CategoryREH = "REH" // humidity, %
	CategorySNO = "SNO" // 1h snowfall
	CategorySKY = "SKY" // sky state
	CategoryTMP = "TMP" // 1h temperature, C
	CategoryTMN = "TMN" // daily minimum
	CategoryTMX = "TMX" // daily maximum
	CategoryUUU = "UUU" // east-west wind component
	CategoryVVV = "VVV" // north-south wind component
	CategoryWAV = "WAV" // wave height
	CategoryVEC = "VEC" // wind direction
	CategoryWSD = "WSD" // wind speed, m/s
)

// CategoryNames describes each category code.
var CategoryNames = map[string]string{
	CategoryPOP: "precipitation probability",
	CategoryPTY: "precipitation type",
	CategoryPCP: "1-hour precipitation",
	CategoryREH: "humidity",
	CategorySNO: "1-hour new snowfall",
	CategorySKY: "sky state",
	CategoryTMP: "1-hour temperature",
	CategoryTMN: "daily minimum temperature",
	CategoryTMX: "daily maximum temperature",
	CategoryUUU: "wind speed (east-west component)",
	CategoryVVV: "wind speed (north-south component)",
	CategoryWAV: "wave height",
	CategoryVEC: "wind direction",
	CategoryWSD: "wind speed",
}

// ForecastRecord is one (category, forecast time) data point for one grid
// cell, exactly as the upstream API returns it.
type ForecastRecord struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`
	NX        int    `json:"nx"`
	NY        int    `json:"ny"`
}

// GroupedForecast maps a category code to its records for one forecast hour,
// in the order the upstream returned them.
type GroupedForecast map[string][]ForecastRecord

// Clone returns a deep copy.
func (g GroupedForecast) Clone() GroupedForecast {
	if g == nil {
		return nil
	}
	out := make(GroupedForecast, len(g))
	for k, v := range g {
		recs := make([]ForecastRecord, len(v))
		copy(recs, v)
		out[k] = recs
	}
	return out
}

// First returns the first record of a category.
func (g GroupedForecast) First(category string) (ForecastRecord, bool) {
	recs := g[category]
	if len(recs) == 0 {
		return ForecastRecord{}, false
	}
	return recs[0], true
}

// LookupState distinguishes why a value is or isn't available.
type LookupState string

const (
	// StatePresent means the category has a value for the current hour.
	StatePresent LookupState = "present"
	// StatePending means no forecast has been stored for the grid cell yet.
	StatePending LookupState = "pending"
	// StateAbsent means a forecast is stored but lacks the category for this hour.
	StateAbsent LookupState = "absent"
)
