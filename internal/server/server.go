// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package server exposes the robdd service over HTTP with gin.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dalzilio/robdd/internal/config"
	"github.com/dalzilio/robdd/internal/service"
)

// shutdownTimeout bounds the time given to pending requests on shutdown.
const shutdownTimeout = 5 * time.Second

// NewRouter returns a gin engine serving svc.
func NewRouter(cfg *config.Config, svc *service.Service) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("robdd"))
	r.Use(accessLog())
	RegisterRoutes(r, NewHandlers(svc))
	return r
}

// accessLog logs every request once it is served.
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("Request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.Writer.Header().Get("X-Request-ID"),
		)
	}
}

// Run serves requests on the configured address until ctx is done, then shuts
// the server down gracefully.
func Run(ctx context.Context, cfg *config.Config, svc *service.Service) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           NewRouter(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Starting robdd server", "addr", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down robdd server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
