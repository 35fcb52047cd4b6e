package repository

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/fakhrymubarak/meteo-mcp/internal/config"
	"github.com/fakhrymubarak/meteo-mcp/internal/model"
)

const romePayload = `{
	"coord": {"lon": 12.4964, "lat": 41.9028},
	"weather": [{"id": 800, "main": "Clear", "description": "cielo sereno", "icon": "01d"}],
	"main": {"temp": 18.3, "feels_like": 17.9, "temp_min": 15.1, "temp_max": 21.4, "pressure": 1014, "humidity": 62},
	"wind": {"speed": 3.6, "deg": 240},
	"name": "Roma"
}`

func unitConfig() *config.Config {
	return &config.Config{
		APIKey:        "test-key",
		APIURL:        "https://api.openweathermap.org/data/2.5/weather",
		LogLevel:      "info",
		ServerName:    "meteo-mcp",
		ServerVersion: "1.0.0",
	}
}

// Mock HTTP client
func newMockHTTPClient(fn RoundTripperFunc) *http.Client {
	return &http.Client{Transport: fn}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func romeCoord() model.Coordinate {
	return model.Coordinate{Latitude: 41.9028, Longitude: 12.4964}
}

func TestGetCurrentWeather_Success(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, romePayload), nil
	})
	repo := NewWeatherRepository(unitConfig(), nil, mockHTTP)

	snapshot, err := repo.GetCurrentWeather(context.Background(), romeCoord())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snapshot.LocationName != "Roma" {
		t.Errorf("Expected location Roma, got %s", snapshot.LocationName)
	}
	if snapshot.Temperature.Current != 18.3 || snapshot.Temperature.FeelsLike != 17.9 {
		t.Errorf("Unexpected temperatures: %+v", snapshot.Temperature)
	}
	if snapshot.Temperature.Min != 15.1 || snapshot.Temperature.Max != 21.4 {
		t.Errorf("Unexpected temperature range: %+v", snapshot.Temperature)
	}
	if snapshot.PressureHPa != 1014 || snapshot.HumidityPct != 62 {
		t.Errorf("Unexpected pressure/humidity: %d hPa, %d%%", snapshot.PressureHPa, snapshot.HumidityPct)
	}
	if snapshot.Conditions.Description != "cielo sereno" {
		t.Errorf("Expected description 'cielo sereno', got %q", snapshot.Conditions.Description)
	}
	if snapshot.Wind.SpeedMps != 3.6 || snapshot.Wind.DirectionDeg != 240 {
		t.Errorf("Unexpected wind: %+v", snapshot.Wind)
	}
}

func TestGetCurrentWeather_RequestURL(t *testing.T) {
	var captured *http.Request
	mockHTTP := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, romePayload), nil
	})
	repo := NewWeatherRepository(unitConfig(), nil, mockHTTP)

	coord := model.Coordinate{Latitude: -33.86, Longitude: 151.2094}
	if _, err := repo.GetCurrentWeather(context.Background(), coord); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if captured == nil {
		t.Fatal("Expected the upstream to be called")
	}

	if captured.URL.Host != "api.openweathermap.org" {
		t.Errorf("Unexpected host: %s", captured.URL.Host)
	}
	if captured.URL.Path != "/data/2.5/weather" {
		t.Errorf("Unexpected path: %s", captured.URL.Path)
	}

	query := captured.URL.Query()
	if got := query.Get("lat"); got != "-33.8600" {
		t.Errorf("Expected lat=-33.8600, got %s", got)
	}
	if got := query.Get("lon"); got != "151.2094" {
		t.Errorf("Expected lon=151.2094, got %s", got)
	}
	if got := query.Get("appid"); got != "test-key" {
		t.Errorf("Expected appid=test-key, got %s", got)
	}
	if got := query.Get("units"); got != "metric" {
		t.Errorf("Expected units=metric, got %s", got)
	}
	if got := query.Get("lang"); got != "it" {
		t.Errorf("Expected lang=it, got %s", got)
	}
}

func TestGetCurrentWeather_NotFound(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"cod": "404", "message": "city not found"}`), nil
	})
	repo := NewWeatherRepository(unitConfig(), nil, mockHTTP)

	_, err := repo.GetCurrentWeather(context.Background(), romeCoord())
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("Expected ErrLocationNotFound, got %v", err)
	}
}

func TestGetCurrentWeather_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "Server error", status: http.StatusInternalServerError, body: `{"cod": "500", "message": "server error"}`},
		{name: "Invalid API key", status: http.StatusUnauthorized, body: `{"cod": 401, "message": "Invalid API key."}`},
		{name: "Error body not JSON", status: http.StatusBadGateway, body: "upstream exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockHTTP := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			})
			repo := NewWeatherRepository(unitConfig(), nil, mockHTTP)

			_, err := repo.GetCurrentWeather(context.Background(), romeCoord())
			if !errors.Is(err, ErrExternalAPI) {
				t.Fatalf("Expected ErrExternalAPI, got %v", err)
			}
		})
	}
}

func TestGetCurrentWeather_NetworkError(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	repo := NewWeatherRepository(unitConfig(), nil, mockHTTP)

	_, err := repo.GetCurrentWeather(context.Background(), romeCoord())
	if !errors.Is(err, ErrExternalAPI) {
		t.Fatalf("Expected ErrExternalAPI, got %v", err)
	}
}

func TestGetCurrentWeather_MalformedBody(t *testing.T) {
	mockHTTP := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "not-json"), nil
	})
	repo := NewWeatherRepository(unitConfig(), nil, mockHTTP)

	_, err := repo.GetCurrentWeather(context.Background(), romeCoord())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Expected ErrMalformedResponse, got %v", err)
	}
}

func TestGetCurrentWeather_NeverPanics(t *testing.T) {
	// Randomized coordinates against a flaky upstream must always come
	// back as a snapshot or a sentinel error, never a panic.
	bodies := []string{romePayload, `{"cod": "404", "message": "city not found"}`, "not-json", ""}
	statuses := []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError}

	for i := 0; i < 50; i++ {
		mockHTTP := newMockHTTPClient(func(req *http.Request) (*http.Response, error) {
			if gofakeit.Bool() {
				return jsonResponse(statuses[gofakeit.IntRange(0, len(statuses)-1)], bodies[gofakeit.IntRange(0, len(bodies)-1)]), nil
			}
			return nil, errors.New("network down")
		})
		repo := NewWeatherRepository(unitConfig(), nil, mockHTTP)

		coord := model.Coordinate{
			Latitude:  gofakeit.Latitude(),
			Longitude: gofakeit.Longitude(),
		}
		snapshot, err := repo.GetCurrentWeather(context.Background(), coord)
		if err == nil && snapshot == nil {
			t.Fatal("Expected either a snapshot or an error")
		}
		if err != nil && !errors.Is(err, ErrLocationNotFound) && !errors.Is(err, ErrExternalAPI) && !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("Expected a sentinel error, got %v", err)
		}
	}
}
