// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package order

import (
	"fmt"
	"log/slog"
	"strings"
)

// CostFunc evaluates an order; sifting looks for an order with a small cost.
type CostFunc func(order []string) (int, error)

// Result is the outcome of a sifting run.
type Result struct {
	Order       []string // Best order found
	Cost        int      // Cost of Order
	Passes      int      // Number of passes over the order
	Evaluations int      // Number of distinct orders evaluated with the cost function
}

type siftConfig struct {
	maxPasses int
}

// SiftOption is the type of configuration options accepted by Sift.
type SiftOption func(*siftConfig)

// MaxPasses bounds the number of passes of a sifting run. The default value
// (0) means that we stop only when a pass does not improve the order.
func MaxPasses(n int) SiftOption {
	return func(c *siftConfig) {
		if n >= 0 {
			c.maxPasses = n
		}
	}
}

// Sift improves start by swapping adjacent variables. Each pass goes from left
// to right over all pairs and adopts a swap only when it strictly decreases
// the cost. We stop after a pass with no adopted swap. Costs are memoized for
// the whole run, keyed by the exact order.
func Sift(start []string, cost CostFunc, options ...SiftOption) (Result, error) {
	cfg := &siftConfig{}
	for _, f := range options {
		f(cfg)
	}
	memo := make(map[string]int)
	res := Result{}
	eval := func(o []string) (int, error) {
		key := strings.Join(o, "\x00")
		if c, ok := memo[key]; ok {
			return c, nil
		}
		c, err := cost(o)
		if err != nil {
			return 0, fmt.Errorf("evaluating order %v: %w", o, err)
		}
		memo[key] = c
		res.Evaluations++
		return c, nil
	}

	current := make([]string, len(start))
	copy(current, start)
	for improved := true; improved; {
		if cfg.maxPasses > 0 && res.Passes >= cfg.maxPasses {
			slog.Warn("sifting stopped before convergence", "passes", res.Passes)
			break
		}
		improved = false
		res.Passes++
		for i := 0; i+1 < len(current); i++ {
			test := make([]string, len(current))
			copy(test, current)
			test[i], test[i+1] = test[i+1], test[i]
			cur, err := eval(current)
			if err != nil {
				return Result{}, err
			}
			tst, err := eval(test)
			if err != nil {
				return Result{}, err
			}
			slog.Debug("sifting", "pass", res.Passes, "current", cur, "test", tst)
			if tst < cur {
				current = test
				improved = true
			}
		}
	}
	c, err := eval(current)
	if err != nil {
		return Result{}, err
	}
	res.Order = current
	res.Cost = c
	slog.Info("sifting done", "size", c, "order", current, "passes", res.Passes, "evaluations", res.Evaluations)
	return res, nil
}
