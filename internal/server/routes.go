// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers the robdd routes with the router.
//
//	POST /api/bdd/generate
//	POST /api/export/json
//	POST /api/export/dot
//	POST /api/export/edges
//	GET  /api/utils/health
//	GET  /api/utils/
//	GET  /metrics
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	bdd := api.Group("/bdd")
	bdd.POST("/generate", h.HandleGenerate)

	export := api.Group("/export")
	export.POST("/json", h.HandleExportJSON)
	export.POST("/dot", h.HandleExportDot)
	export.POST("/edges", h.HandleExportEdges)

	utils := api.Group("/utils")
	utils.GET("/health", h.HandleHealth)
	utils.GET("/", h.HandleIndex)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
