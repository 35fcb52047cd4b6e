package main

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/meteo-mcp/internal/config"
	"github.com/fakhrymubarak/meteo-mcp/internal/handler"
)

// newServer assembles the MCP server with every tool registered.
func newServer(cfg *config.Config, logger *zap.SugaredLogger) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	forecast := handler.NewForecastHandler(cfg, logger)
	s.AddTool(forecast.Definition(), forecast.Handle)

	return s
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.APIKey == "" {
		logger.Warnw("OPENWEATHERMAP_API_KEY is not set, forecast calls will report the misconfiguration")
	}

	logger.Infow("serving MCP over stdio",
		"server", cfg.ServerName, "version", cfg.ServerVersion)
	if err := server.ServeStdio(newServer(cfg, logger)); err != nil {
		logger.Errorw("server terminated", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}
