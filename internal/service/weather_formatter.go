package service

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/fakhrymubarak/meteo-mcp/internal/model"
)

// unknownLocation is rendered when the provider omits the place name.
const unknownLocation = "Unknown"

// FormatWeather renders a snapshot as the fixed eight-line Italian text
// block returned to the host. Line order, labels and rounding are part
// of the contract: consumers display this text verbatim.
func FormatWeather(s *model.WeatherSnapshot) string {
	name := s.LocationName
	if name == "" {
		name = unknownLocation
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "🌍 Località: %s\n", name)
	fmt.Fprintf(&buf, "🌡️ Temperatura: %.1f°C (Percepita: %.1f°C)\n", s.Temperature.Current, s.Temperature.FeelsLike)
	fmt.Fprintf(&buf, "📉 Minima: %.1f°C\n", s.Temperature.Min)
	fmt.Fprintf(&buf, "📈 Massima: %.1f°C\n", s.Temperature.Max)
	fmt.Fprintf(&buf, "☀️ Condizioni: %s\n", capitalize(s.Conditions.Description))
	fmt.Fprintf(&buf, "💨 Vento: %.1f m/s (%d°)\n", s.Wind.SpeedMps, s.Wind.DirectionDeg)
	fmt.Fprintf(&buf, "💧 Umidità: %d%%\n", s.HumidityPct)
	fmt.Fprintf(&buf, "🔽 Pressione: %d hPa", s.PressureHPa)
	return buf.String()
}

// capitalize upper-cases the first rune of s, leaving the rest
// untouched, so it is a no-op on empty or already capitalized input.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return s
	}
	return string(upper) + s[size:]
}
