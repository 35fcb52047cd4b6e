package model

// OpenWeatherMapResponse mirrors the JSON body of a successful
// /data/2.5/weather call. Only the fields the server consumes are mapped.
type OpenWeatherMapResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
}

// OpenWeatherMapError mirrors the JSON body OpenWeatherMap returns on
// non-2xx statuses, e.g. {"cod":401, "message":"Invalid API key"}.
// The cod field is a string in some responses and a number in others,
// so only the message is mapped.
type OpenWeatherMapError struct {
	Message string `json:"message"`
}

// ToSnapshot normalizes the wire payload into a WeatherSnapshot.
// When the provider reports several simultaneous conditions, only the
// first entry is retained.
func (r *OpenWeatherMapResponse) ToSnapshot() *WeatherSnapshot {
	s := &WeatherSnapshot{
		LocationName: r.Name,
		Temperature: Temperature{
			Current:   r.Main.Temp,
			FeelsLike: r.Main.FeelsLike,
			Min:       r.Main.TempMin,
			Max:       r.Main.TempMax,
		},
		PressureHPa: r.Main.Pressure,
		HumidityPct: r.Main.Humidity,
		Wind: Wind{
			SpeedMps:     r.Wind.Speed,
			DirectionDeg: r.Wind.Deg,
		},
	}
	if len(r.Weather) > 0 {
		s.Conditions = Conditions{
			Summary:     r.Weather[0].Main,
			Description: r.Weather[0].Description,
		}
	}
	return s
}
