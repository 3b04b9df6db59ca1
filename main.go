package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config()
	cfg.logger.Debug("configuration loaded")

	mux := http.NewServeMux()

	mux.HandleFunc("/api/playlist", cfg.handlerPlaylist)
	mux.HandleFunc("/api/playlist/next", cfg.handlerNext)
	mux.HandleFunc("/api/playlist/previous", cfg.handlerPrevious)
	mux.HandleFunc("/api/playlist/jump", cfg.handlerJump)
	mux.HandleFunc("/api/config", cfg.handlerConfig)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    ":" + cfg.port,
		Handler: metricsMiddleware(corsMiddleware(mux)),
	}

	cfg.logger.Info("starting server", "port", cfg.port, "ai_enabled", cfg.aiEnabled)
	err := server.ListenAndServe()
	if err != nil {
		cfg.logger.Error("server startup failed", "error", err)
		os.Exit(1)
	}
}
