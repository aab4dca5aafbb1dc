// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package service runs the formula pipeline behind a cache: parse and
// simplify a formula, order its variables, build a diagram, highlight an
// assignment and export the result.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/dalzilio/robdd/internal/cache"
	"github.com/dalzilio/robdd/internal/config"
	"github.com/dalzilio/robdd/internal/diagram"
	"github.com/dalzilio/robdd/internal/formula"
	"github.com/dalzilio/robdd/internal/kernel"
	"github.com/dalzilio/robdd/internal/metrics"
	"github.com/dalzilio/robdd/internal/order"
)

var (
	// ErrNotFound is returned by exports on a formula that is not cached.
	ErrNotFound = errors.New("formula not found in cache")

	// ErrMissingFormula is returned when a request has no formula.
	ErrMissingFormula = errors.New("missing 'formula' field")
)

// entry is a cached diagram. Requests on the same diagram are serialized by
// mu.
type entry struct {
	mu sync.Mutex
	d  *diagram.Diagram
}

// Service is safe for concurrent use.
type Service struct {
	cache  *cache.FIFO[*entry]
	flight singleflight.Group
	kernel []kernel.Option
	sift   []order.SiftOption
	tracer trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithTracerProvider sets the provider of the tracer used for the spans of
// the service. The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer("robdd")
	}
}

// New returns a service configured by cfg.
func New(cfg *config.Config, options ...Option) *Service {
	s := &Service{
		cache: cache.New[*entry](
			cache.Capacity(cfg.Cache.Capacity),
			cache.OnEvict(func(key string) {
				metrics.CacheEvictions.Inc()
				slog.Debug("formula evicted from cache", "formula", key)
			}),
		),
		kernel: cfg.Kernel.Options(),
		sift:   cfg.Sift.Options(),
		tracer: otel.Tracer("robdd"),
	}
	for _, f := range options {
		f(s)
	}
	return s
}

// StripSpaces removes the spaces of a formula; the result is the key used in
// the cache.
func StripSpaces(formula string) string {
	return strings.ReplaceAll(formula, " ", "")
}

// GenerateRequest describes a diagram to build.
type GenerateRequest struct {
	Formula   string
	Kind      diagram.Kind
	VarOrder  string           // manual order, such as "c a b"
	AutoOrder diagram.Strategy // empty for no automatic ordering
	EvalPath  string           // assignment to highlight, such as "a:1 b:0"
}

// GenerateResponse is the result of Generate.
type GenerateResponse struct {
	Formula     string
	Kind        diagram.Kind
	Highlighted bool
	View        *diagram.View
	Sift        *order.Result // set when an automatic order was computed
}

// Generate builds the diagram requested by req, reusing the cached diagram of
// the formula if any. A new diagram is cached only when every step
// succeeded. A manual order given on a cached formula is merged with its
// current order and the diagram is always rebuilt; a cached diagram whose
// rebuild fails is dropped from the cache.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (resp *GenerateResponse, err error) {
	formula := StripSpaces(req.Formula)
	ctx, span := s.tracer.Start(ctx, "service.Generate", trace.WithAttributes(
		attribute.String("formula", formula),
		attribute.String("kind", req.Kind.String()),
	))
	defer func() {
		if err != nil {
			recordError(span, err)
		}
		span.End()
	}()

	if formula == "" {
		return nil, ErrMissingFormula
	}
	var assignment diagram.Assignment
	if req.EvalPath != "" {
		if assignment, err = diagram.ParseAssignment(req.EvalPath); err != nil {
			return nil, err
		}
	}

	e, hit := s.cache.Lookup(formula)
	if hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		slog.Info("cache hit", "formula", formula)
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		if e, err = s.create(ctx, formula, req.VarOrder); err != nil {
			return nil, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if hit {
		defer func() {
			if err != nil && s.cache.Remove(formula) {
				slog.Warn("cached diagram dropped", "formula", formula, "error", err)
			}
		}()
	}
	d := e.d
	if hit && req.VarOrder != "" {
		if err := d.SetOrder(order.Manual(d.Order(), order.ParseManual(req.VarOrder))); err != nil {
			return nil, err
		}
	}

	resp = &GenerateResponse{Formula: formula, Kind: req.Kind}
	if req.AutoOrder != "" {
		res, err := s.autoOrder(ctx, d, req.Kind, req.AutoOrder)
		if err != nil {
			return nil, err
		}
		resp.Sift = &res
	} else if err := s.build(ctx, d, req.Kind); err != nil {
		return nil, err
	}

	if assignment != nil {
		if err := d.Highlight(req.Kind, assignment); err != nil {
			return nil, err
		}
		resp.Highlighted = true
	}
	if resp.View, err = d.View(req.Kind); err != nil {
		return nil, err
	}
	if !hit {
		s.cache.Insert(formula, e)
	}
	return resp, nil
}

// create parses a formula that is not in the cache. Concurrent calls for the
// same formula and the same order share the same result.
func (s *Service) create(ctx context.Context, text, varOrder string) (*entry, error) {
	_, span := s.tracer.Start(ctx, "service.create")
	defer span.End()
	v, err, shared := s.flight.Do(text+"\x00"+varOrder, func() (interface{}, error) {
		options := []diagram.Option{diagram.KernelOptions(s.kernel...)}
		if varOrder != "" {
			options = append(options, diagram.WithOrder(order.Manual(formula.Variables(text), order.ParseManual(varOrder))))
		}
		d, err := diagram.New(text, options...)
		if err != nil {
			return nil, err
		}
		return &entry{d: d}, nil
	})
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("shared", shared))
	return v.(*entry), nil
}

func (s *Service) build(ctx context.Context, d *diagram.Diagram, kind diagram.Kind) error {
	_, span := s.tracer.Start(ctx, "service.build", trace.WithAttributes(attribute.String("kind", kind.String())))
	defer span.End()
	start := time.Now()
	_, err := d.Build(kind)
	metrics.Builds.WithLabelValues(kind.String(), metrics.Status(err)).Inc()
	if err != nil {
		recordError(span, err)
		return fmt.Errorf("building %s: %w", kind, err)
	}
	metrics.BuildDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	size := d.Size(kind)
	metrics.DiagramNodes.WithLabelValues(kind.String()).Observe(float64(size))
	span.SetAttributes(attribute.Int("nodes", size))
	slog.Debug("diagram built", "formula", d.Formula(), "kind", kind, "nodes", size, "order", d.Order())
	d.LogStats()
	return nil
}

func (s *Service) autoOrder(ctx context.Context, d *diagram.Diagram, kind diagram.Kind, strategy diagram.Strategy) (order.Result, error) {
	_, span := s.tracer.Start(ctx, "service.autoOrder", trace.WithAttributes(
		attribute.String("kind", kind.String()),
		attribute.String("strategy", string(strategy)),
	))
	defer span.End()
	start := time.Now()
	res, err := d.AutoOrder(kind, strategy, s.sift...)
	metrics.Builds.WithLabelValues(kind.String(), metrics.Status(err)).Inc()
	if err != nil {
		recordError(span, err)
		return order.Result{}, fmt.Errorf("ordering %s: %w", kind, err)
	}
	metrics.BuildDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
	metrics.DiagramNodes.WithLabelValues(kind.String()).Observe(float64(res.Cost))
	if strategy == diagram.Sifting {
		metrics.SiftEvaluations.Observe(float64(res.Evaluations))
	}
	span.SetAttributes(attribute.Int("nodes", res.Cost), attribute.Int("passes", res.Passes))
	d.LogStats()
	return res, nil
}

// lookup returns the cached entry of formula, locked, and the function to
// unlock it. The diagram of the given kind is built if needed.
func (s *Service) lookup(ctx context.Context, formula string, kind diagram.Kind) (*entry, func(), error) {
	formula = StripSpaces(formula)
	if formula == "" {
		return nil, nil, ErrMissingFormula
	}
	e, ok := s.cache.Lookup(formula)
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, nil, fmt.Errorf("%w: '%s'. Please call /generate first", ErrNotFound, formula)
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	e.mu.Lock()
	if _, built := e.d.Root(kind); !built {
		if err := s.build(ctx, e.d, kind); err != nil {
			e.mu.Unlock()
			return nil, nil, err
		}
	}
	return e, e.mu.Unlock, nil
}

// Export returns the view of the cached diagram of formula.
func (s *Service) Export(ctx context.Context, formula string, kind diagram.Kind) (*diagram.View, error) {
	ctx, span := s.tracer.Start(ctx, "service.Export")
	defer span.End()
	e, unlock, err := s.lookup(ctx, formula, kind)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	defer unlock()
	return e.d.View(kind)
}

// Dot returns the cached diagram of formula in the DOT format.
func (s *Service) Dot(ctx context.Context, formula string, kind diagram.Kind) (string, error) {
	ctx, span := s.tracer.Start(ctx, "service.Dot")
	defer span.End()
	e, unlock, err := s.lookup(ctx, formula, kind)
	if err != nil {
		recordError(span, err)
		return "", err
	}
	defer unlock()
	var sb strings.Builder
	if err := e.d.WriteDot(&sb, kind); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Edges returns the edges of the cached diagram of formula with their style.
func (s *Service) Edges(ctx context.Context, formula string, kind diagram.Kind) ([]diagram.Edge, error) {
	ctx, span := s.tracer.Start(ctx, "service.Edges")
	defer span.End()
	e, unlock, err := s.lookup(ctx, formula, kind)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	defer unlock()
	return e.d.EdgeStyles(kind)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Len returns the number of cached formulas.
func (s *Service) Len() int {
	return s.cache.Len()
}

// Cached returns the cached formulas, from the oldest to the newest.
func (s *Service) Cached() []string {
	return s.cache.Keys()
}
