package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/cafe-api/internal/config"
)

// Till and back-office frontends run here during development
var devOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

var defaultMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

var defaultHeaders = []string{
	"Accept",
	"Authorization",
	"Content-Type",
	"Origin",
}

// CORSMiddleware lets the browser frontends call the API. Headers the API
// itself reads or writes are always allowed, whatever the config says.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	return cors.New(corsConfig(cfg))
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	origins := orDefault(cfg.AllowedOrigins, devOrigins)
	methods := orDefault(cfg.AllowedMethods, defaultMethods)
	headers := orDefault(cfg.AllowedHeaders, defaultHeaders)
	headers = withHeaders(headers, IdempotencyKeyHeader, RequestIDHeader)

	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: methods,
		AllowHeaders: headers,
		// Content-Disposition names the XLSX report download
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", RequestIDHeader, IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

func orDefault(configured, fallback []string) []string {
	if len(configured) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(configured)
}

func withHeaders(headers []string, required ...string) []string {
	for _, h := range required {
		if !slices.ContainsFunc(headers, func(have string) bool { return strings.EqualFold(have, h) }) {
			headers = append(headers, h)
		}
	}
	return headers
}
