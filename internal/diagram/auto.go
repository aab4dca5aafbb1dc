// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import (
	"fmt"

	"github.com/dalzilio/robdd/internal/order"
)

// Strategy names an automatic ordering method.
type Strategy string

const (
	Frequency Strategy = "freq" // Most frequent variables first
	Sifting   Strategy = "ls"   // Local sifting from the frequency order
)

// ParseStrategy returns the strategy named s.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Frequency, Sifting:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown ordering strategy %q", s)
}

// AutoOrder computes a variable order with the given strategy, makes it the
// active order and builds the diagram of the given kind. Sifting uses the
// size of this kind of diagram as its cost.
func (d *Diagram) AutoOrder(kind Kind, s Strategy, options ...order.SiftOption) (order.Result, error) {
	start := order.Frequency(d.formula, d.variables)
	var res order.Result
	switch s {
	case Frequency:
		res = order.Result{Order: start, Passes: 0}
	case Sifting:
		var err error
		res, err = order.Sift(start, func(o []string) (int, error) {
			return d.Measure(kind, o)
		}, options...)
		if err != nil {
			return order.Result{}, err
		}
	default:
		return order.Result{}, fmt.Errorf("unknown ordering strategy %q", s)
	}
	if err := d.SetOrder(res.Order); err != nil {
		return order.Result{}, err
	}
	if _, err := d.Build(kind); err != nil {
		return order.Result{}, err
	}
	res.Cost = d.Size(kind)
	return res, nil
}
