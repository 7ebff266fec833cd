package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tendant/ossgate/internal/mcp"
	"github.com/tendant/ossgate/pkg/ossgate/config"
)

type Config struct {
	Host    string `env:"HOST" env-default:"localhost"`
	Port    uint16 `env:"MCP_PORT" env-default:"8000"`
	BaseUrl string `env:"BASE_URL" env-default:"http://localhost:8000"`
}

func main() {
	// Server mode flags
	var mode = flag.String("mode", "stdio", "Server mode: 'stdio', 'sse', or 'http'")

	flag.Parse()

	// Load environment variables from .env file
	if err := godotenv.Load(".env"); err != nil {
		// It's okay if .env doesn't exist, we'll use default values
		slog.Info("No .env file found or error loading it, using default values", "err", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	serverConfig, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger, closer, err := serverConfig.Log.NewLogger()
	if err != nil {
		slog.Error("Failed to create logger", "err", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	svc, err := serverConfig.BuildService(config.EnvSource{})
	if err != nil {
		slog.Error("Failed to create service", "err", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"OSS Gateway Mcp",
		"1.0.0",
		server.WithResourceCapabilities(true, true),
	)

	handler := mcp.NewHandler(svc)
	handler.RegisterTools(s)

	// Start the server based on the selected mode
	switch *mode {
	case "sse":
		sseServer := server.NewSSEServer(s, server.WithBaseURL(cfg.BaseUrl))
		slog.Info("Starting SSE server", "base url", cfg.BaseUrl)
		if err := sseServer.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			slog.Error("Failed to start SSE server", "err", err)
			os.Exit(-1)
		}
	case "http":
		httpServer := server.NewStreamableHTTPServer(s)
		slog.Info("HTTP server listening", "port", cfg.Port)
		if err := httpServer.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			slog.Error("Server error", "err", err)
			os.Exit(-1)
		}
	default:
		// stdout carries the protocol in stdio mode
		slog.Info("Starting in stdio mode")
		if err := server.ServeStdio(s); err != nil {
			slog.Error("Failed to start stdio server", "err", err)
			os.Exit(-1)
		}
	}
}
