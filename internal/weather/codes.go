package weather

// Sky state codes.
const (
	SkyClear        = "1"
	SkyMostlyCloudy = "3"
	SkyOvercast     = "4"
)

// Precipitation type codes.
const (
	PrecipNone     = "0"
	PrecipRain     = "1"
	PrecipRainSnow = "2"
	PrecipSnow     = "3"
	PrecipShowers  = "4"
)

// SkyLabels maps sky state codes to text.
var SkyLabels = map[string]string{
	SkyClear:        "clear",
	SkyMostlyCloudy: "mostly cloudy",
	SkyOvercast:     "overcast",
}

// PrecipLabels maps precipitation type codes to text.
var PrecipLabels = map[string]string{
	PrecipNone:     "none",
	PrecipRain:     "rain",
	PrecipRainSnow: "rain/snow",
	PrecipSnow:     "snow",
	PrecipShowers:  "showers",
}

// Icon names a weather glyph.
type Icon string

const (
	IconSun   Icon = "sun"
	IconCloud Icon = "cloud"
	IconRain  Icon = "rain"
	IconSnow  Icon = "snow"
)

// SelectIcon picks an icon. Precipitation wins over sky state; sky state only
// decides when there is no precipitation.
func SelectIcon(sky, pty string) Icon {
	if pty != PrecipNone {
		switch pty {
		case PrecipRain, PrecipShowers:
			return IconRain
		case PrecipRainSnow, PrecipSnow:
			return IconSnow
		default:
			return IconCloud
		}
	}

	switch sky {
	case SkyClear:
		return IconSun
	case SkyMostlyCloudy, SkyOvercast:
		return IconCloud
	default:
		return IconSun
	}
}

// Condition is the label and icon shown for a sky/precipitation pair.
type Condition struct {
	Sky    string `json:"sky"`
	Precip string `json:"precipitation,omitempty"`
	Icon   Icon   `json:"icon"`
}

// Describe resolves sky and precipitation codes to labels and an icon.
// Precip is left empty when there is no precipitation.
func Describe(sky, pty string) Condition {
	c := Condition{
		Sky:  SkyLabels[sky],
		Icon: SelectIcon(sky, pty),
	}
	if pty != PrecipNone {
		c.Precip = PrecipLabels[pty]
	}
	return c
}
