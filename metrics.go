package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// This file defines the Prometheus metrics exposed by the application.

// httpRequestsTotal tracks the total number of HTTP requests, partitioned
// by URL path, method and resulting status code.
var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "weathertunes_http_requests_total",
	Help: "Total number of HTTP requests by path, method and code.",
}, []string{"path", "method", "code"})

// generationsTotal counts playlist generation runs by the path taken
// ("ai", "fallback" or "none" when geocoding aborted the run) and outcome
// ("ok", "empty", "city_not_found", "store_error").
var generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "weathertunes_playlist_generations_total",
	Help: "Total number of playlist generation runs by path and outcome.",
}, []string{"path", "outcome"})
