// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dalzilio/robdd/internal/diagram"
	"github.com/dalzilio/robdd/internal/formula"
	"github.com/dalzilio/robdd/internal/service"
)

// missingFormula is the message returned when a request has no formula.
const missingFormula = "Missing 'formula' field."

// Handlers contains the HTTP handlers of the robdd service.
type Handlers struct {
	svc      *service.Service
	validate *validator.Validate
}

// NewHandlers creates handlers for the given service.
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc, validate: validator.New()}
}

// HandleGenerate handles POST /api/bdd/generate.
//
// Response:
//
//	200 OK: GenerateResponse
//	400 Bad Request: missing formula, invalid request, syntax or parse error
//	500 Internal Server Error: build error
func (h *Handlers) HandleGenerate(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGenerate")

	var req GenerateRequest
	if !h.bind(c, logger, &req) {
		return
	}
	if service.StripSpaces(req.Formula) == "" {
		badRequest(c, missingFormula)
		return
	}
	kind, _ := diagram.ParseKind(req.GraphType)

	logger.Info("Generating diagram", "formula", req.Formula, "graph_type", kind,
		"var_order", req.VarOrder, "auto_order", req.AutoOrder, "eval_path", req.EvalPath)

	resp, err := h.svc.Generate(c.Request.Context(), service.GenerateRequest{
		Formula:   req.Formula,
		Kind:      kind,
		VarOrder:  req.VarOrder,
		AutoOrder: diagram.Strategy(req.AutoOrder),
		EvalPath:  req.EvalPath,
	})
	if err != nil {
		fail(c, logger, err)
		return
	}

	out := GenerateResponse{
		Status:    "success",
		GraphType: graphType(req.GraphType),
		Formula:   resp.Formula,
		Graph:     resp.View,
		Sift:      newSiftSummary(resp.Sift),
	}
	if resp.Highlighted {
		out.Highlighted = &resp.Highlighted
	}
	c.JSON(http.StatusOK, out)
}

// HandleExportJSON handles POST /api/export/json.
//
// Response:
//
//	200 OK: ExportResponse
//	400 Bad Request: missing formula or invalid request
//	404 Not Found: the formula was never generated, or was evicted
func (h *Handlers) HandleExportJSON(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleExportJSON")
	req, kind, ok := h.bindExport(c, logger)
	if !ok {
		return
	}
	view, err := h.svc.Export(c.Request.Context(), req.Formula, kind)
	if err != nil {
		fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, ExportResponse{
		Status:    "success",
		GraphType: graphType(req.GraphType),
		Formula:   service.StripSpaces(req.Formula),
		Graph:     view,
	})
}

// HandleExportDot handles POST /api/export/dot. The response is the diagram
// in the DOT format of Graphviz.
func (h *Handlers) HandleExportDot(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleExportDot")
	req, kind, ok := h.bindExport(c, logger)
	if !ok {
		return
	}
	dot, err := h.svc.Dot(c.Request.Context(), req.Formula, kind)
	if err != nil {
		fail(c, logger, err)
		return
	}
	c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(dot))
}

// HandleExportEdges handles POST /api/export/edges.
func (h *Handlers) HandleExportEdges(c *gin.Context) {
	logger := slog.With("request_id", getOrCreateRequestID(c), "handler", "HandleExportEdges")
	req, kind, ok := h.bindExport(c, logger)
	if !ok {
		return
	}
	edges, err := h.svc.Edges(c.Request.Context(), req.Formula, kind)
	if err != nil {
		fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, EdgesResponse{
		Status:    "success",
		GraphType: graphType(req.GraphType),
		Formula:   service.StripSpaces(req.Formula),
		Edges:     edges,
	})
}

// HandleHealth handles GET /api/utils/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Cached: h.svc.Len(),
	})
}

// HandleIndex handles GET /api/utils/.
func (h *Handlers) HandleIndex(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the ROBDD generator")
}

func (h *Handlers) bind(c *gin.Context, logger *slog.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "Invalid request body",
			Code:    "INVALID_REQUEST",
		})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		logger.Warn("Invalid request", "error", err)
		badRequest(c, err.Error())
		return false
	}
	return true
}

func (h *Handlers) bindExport(c *gin.Context, logger *slog.Logger) (ExportRequest, diagram.Kind, bool) {
	var req ExportRequest
	if !h.bind(c, logger, &req) {
		return req, diagram.ROBDD, false
	}
	if service.StripSpaces(req.Formula) == "" {
		badRequest(c, missingFormula)
		return req, diagram.ROBDD, false
	}
	kind, _ := diagram.ParseKind(req.GraphType)
	return req, kind, true
}

// graphType returns the graph type echoed in responses: the one of the request,
// or robdd when it is missing.
func graphType(requested string) string {
	if requested == "" {
		return "robdd"
	}
	return requested
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Message: msg,
		Code:    "INVALID_REQUEST",
	})
}

// fail maps err to a status code and an error code.
func fail(c *gin.Context, logger *slog.Logger, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL_ERROR"
	switch {
	case errors.Is(err, service.ErrMissingFormula):
		status, code = http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, formula.ErrSyntax):
		status, code = http.StatusBadRequest, "SYNTAX_ERROR"
	case errors.Is(err, diagram.ErrParse):
		status, code = http.StatusBadRequest, "PARSE_ERROR"
	case errors.Is(err, service.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Warn("Request rejected", "error", err, "code", code)
	}
	c.JSON(status, ErrorResponse{
		Status:  "error",
		Message: err.Error(),
		Code:    code,
	})
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
