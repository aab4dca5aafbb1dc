// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package server

import (
	"github.com/dalzilio/robdd/internal/diagram"
	"github.com/dalzilio/robdd/internal/order"
)

// GenerateRequest is the body of POST /api/bdd/generate.
type GenerateRequest struct {
	// Formula is the text of the formula; spaces are ignored.
	Formula string `json:"formula"`

	// GraphType is the kind of diagram, bdd or robdd (the default).
	GraphType string `json:"graph_type" validate:"omitempty,oneof=bdd robdd BDD ROBDD"`

	// VarOrder is an optional manual order, such as "c a b".
	VarOrder string `json:"var_order"`

	// AutoOrder is an optional ordering strategy: freq or ls.
	AutoOrder string `json:"auto_order" validate:"omitempty,oneof=freq ls"`

	// EvalPath is an optional assignment to highlight, such as "a:1 b:0".
	EvalPath string `json:"eval_path"`
}

// ExportRequest is the body of the export endpoints.
type ExportRequest struct {
	Formula   string `json:"formula"`
	GraphType string `json:"graph_type" validate:"omitempty,oneof=bdd robdd BDD ROBDD"`
}

// GenerateResponse is the response of POST /api/bdd/generate.
type GenerateResponse struct {
	Status      string        `json:"status"`
	GraphType   string        `json:"graph_type"`
	Formula     string        `json:"formula"`
	Highlighted *bool         `json:"highlighted"`
	Graph       *diagram.View `json:"graph"`
	Sift        *SiftSummary  `json:"sift,omitempty"`
}

// SiftSummary reports the result of an automatic ordering.
type SiftSummary struct {
	Order       []string `json:"order"`
	Size        int      `json:"size"`
	Passes      int      `json:"passes"`
	Evaluations int      `json:"evaluations"`
}

func newSiftSummary(res *order.Result) *SiftSummary {
	if res == nil {
		return nil
	}
	return &SiftSummary{
		Order:       res.Order,
		Size:        res.Cost,
		Passes:      res.Passes,
		Evaluations: res.Evaluations,
	}
}

// ExportResponse is the response of POST /api/export/json.
type ExportResponse struct {
	Status    string        `json:"status"`
	GraphType string        `json:"graph_type"`
	Formula   string        `json:"formula"`
	Graph     *diagram.View `json:"graph"`
}

// EdgesResponse is the response of POST /api/export/edges.
type EdgesResponse struct {
	Status    string         `json:"status"`
	GraphType string         `json:"graph_type"`
	Formula   string         `json:"formula"`
	Edges     []diagram.Edge `json:"edges"`
}

// HealthResponse is the response of GET /api/utils/health.
type HealthResponse struct {
	Status string `json:"status"`
	Cached int    `json:"cached_formulas"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	// Status is always "error".
	Status string `json:"status"`

	// Message is the error message.
	Message string `json:"message"`

	// Code classifies the error: INVALID_REQUEST, SYNTAX_ERROR, PARSE_ERROR,
	// NOT_FOUND or INTERNAL_ERROR.
	Code string `json:"code,omitempty"`
}
