package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/meteo-mcp/internal/config"
	"github.com/fakhrymubarak/meteo-mcp/internal/model"
)

// Custom error types
var (
	ErrLocationNotFound  = errors.New("location not found")
	ErrExternalAPI       = errors.New("external API error")
	ErrMalformedResponse = errors.New("malformed provider response")
)

// The reply contract is Italian metric text, so the query suffix never
// varies per call.
const (
	queryUnits = "metric"
	queryLang  = "it"
)

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	GetCurrentWeather(ctx context.Context, coord model.Coordinate) (*model.WeatherSnapshot, error)
}

// weatherRepository implements WeatherRepository against OpenWeatherMap
type weatherRepository struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewWeatherRepository creates a new weather repository instance. An
// optional http.Client can be supplied for tests; it defaults to
// http.DefaultClient, with no extra timeout or retry policy of its own.
func NewWeatherRepository(cfg *config.Config, logger *zap.SugaredLogger, httpClient ...*http.Client) WeatherRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &weatherRepository{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		httpClient: client,
		logger:     logger,
	}
}

// GetCurrentWeather fetches the current weather for an already validated
// coordinate. It issues a single GET with no retry and maps every
// failure to a sentinel error; diagnostic detail goes to the logger, not
// to the caller.
func (r *weatherRepository) GetCurrentWeather(ctx context.Context, coord model.Coordinate) (*model.WeatherSnapshot, error) {
	endpoint := fmt.Sprintf("%s?lat=%.4f&lon=%.4f&appid=%s&units=%s&lang=%s",
		r.apiURL, coord.Latitude, coord.Longitude, r.apiKey, queryUnits, queryLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		r.logger.Errorw("building OpenWeatherMap request failed", "error", err)
		return nil, ErrExternalAPI
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Errorw("OpenWeatherMap request failed", "error", err)
		return nil, ErrExternalAPI
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr model.OpenWeatherMapError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		r.logger.Errorw("OpenWeatherMap returned an error status",
			"status", resp.StatusCode, "message", apiErr.Message)
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrLocationNotFound
		}
		return nil, ErrExternalAPI
	}

	var data model.OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		r.logger.Errorw("decoding OpenWeatherMap response failed", "error", err)
		return nil, ErrMalformedResponse
	}

	snapshot := data.ToSnapshot()
	r.logger.Infow("weather data retrieved",
		"location", snapshot.LocationName,
		"lat", coord.Latitude,
		"lon", coord.Longitude)

	return snapshot, nil
}
