package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/meteo-mcp/internal/config"
	"github.com/fakhrymubarak/meteo-mcp/internal/model"
	"github.com/fakhrymubarak/meteo-mcp/internal/repository"
	"github.com/fakhrymubarak/meteo-mcp/internal/service"
)

// ToolName is the name the tool is registered under with the host.
const ToolName = "get-forecast"

// Fixed reply texts. Every invocation terminates in exactly one reply:
// one of these two or the formatted weather block.
const (
	msgMissingAPIKey = "Errore: la chiave API di OpenWeatherMap non è configurata sul server. Imposta la variabile d'ambiente OPENWEATHERMAP_API_KEY."
	msgFetchFailed   = "Impossibile recuperare i dati meteo. Controlla le coordinate e riprova."
)

var validate = validator.New()

// Tool is the contract every tool of this server exposes for
// registration with the MCP server.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// ForecastHandler serves the get-forecast tool: current-weather lookup
// by geographic coordinates, answered as a fixed Italian text block.
type ForecastHandler struct {
	cfg    *config.Config
	repo   repository.WeatherRepository
	logger *zap.SugaredLogger
}

var _ Tool = (*ForecastHandler)(nil)

// NewForecastHandler creates the handler. An optional repository can be
// supplied for tests; it defaults to the OpenWeatherMap-backed one.
func NewForecastHandler(cfg *config.Config, logger *zap.SugaredLogger, repo ...repository.WeatherRepository) *ForecastHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	var weatherRepo repository.WeatherRepository
	if len(repo) > 0 && repo[0] != nil {
		weatherRepo = repo[0]
	} else {
		weatherRepo = repository.NewWeatherRepository(cfg, logger)
	}
	return &ForecastHandler{
		cfg:    cfg,
		repo:   weatherRepo,
		logger: logger,
	}
}

// Definition describes the tool to the host: two required numeric
// parameters with inclusive bounds, reflected from model.Coordinate.
func (h *ForecastHandler) Definition() mcp.Tool {
	return mcp.NewToolWithRawSchema(
		ToolName,
		"Ottiene le condizioni meteo attuali per le coordinate geografiche indicate e risponde con un bollettino testuale in italiano.",
		inputSchema(&model.Coordinate{}),
	)
}

// Handle runs one tool invocation: bind and range-check the arguments,
// short-circuit on a missing credential, fetch, format. Credential and
// upstream failures become fixed reply texts, never protocol errors;
// only argument validation surfaces as an error to the host.
func (h *ForecastHandler) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := h.logger.With("call_id", uuid.NewString(), "tool", ToolName)

	var coord model.Coordinate
	if err := request.BindArguments(&coord); err != nil {
		logger.Warnw("rejecting malformed arguments", "error", err)
		return nil, err
	}
	if err := validate.Struct(coord); err != nil {
		logger.Warnw("rejecting out-of-range coordinates",
			"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		return nil, err
	}

	if h.cfg.APIKey == "" {
		logger.Warnw("OpenWeatherMap API key is not configured")
		return mcp.NewToolResultText(msgMissingAPIKey), nil
	}

	snapshot, err := h.repo.GetCurrentWeather(ctx, coord)
	if err != nil {
		logger.Warnw("weather lookup failed",
			"lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		return mcp.NewToolResultText(msgFetchFailed), nil
	}

	return mcp.NewToolResultText(service.FormatWeather(snapshot)), nil
}
