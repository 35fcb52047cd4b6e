package model

// Coordinate is the validated tool input: a geographic point in decimal
// degrees. Bounds are inclusive; the jsonschema tags advertise them in
// the tool's input schema and the validate tags enforce them before any
// upstream call is made.
type Coordinate struct {
	Latitude  float64 `json:"latitude" jsonschema:"minimum=-90,maximum=90,description=Latitudine della località in gradi decimali" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" jsonschema:"minimum=-180,maximum=180,description=Longitudine della località in gradi decimali" validate:"gte=-180,lte=180"`
}

// Temperature groups the temperature readings of a snapshot, in °C.
type Temperature struct {
	Current   float64 `json:"current"`
	FeelsLike float64 `json:"feels_like"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// Conditions describes the primary weather condition reported by the
// provider, already reduced to a single entry.
type Conditions struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// Wind holds wind speed (m/s) and direction (degrees).
type Wind struct {
	SpeedMps     float64 `json:"speed_mps"`
	DirectionDeg int     `json:"direction_deg"`
}

// WeatherSnapshot is the normalized in-memory representation of one
// upstream weather response. It is owned by the call that fetched it and
// never outlives the tool invocation.
type WeatherSnapshot struct {
	LocationName string      `json:"location_name,omitempty"`
	Temperature  Temperature `json:"temperature"`
	PressureHPa  int         `json:"pressure_hpa"`
	HumidityPct  int         `json:"humidity_pct"`
	Conditions   Conditions  `json:"conditions"`
	Wind         Wind        `json:"wind"`
}
