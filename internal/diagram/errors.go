// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package diagram

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariant is returned when an operation breaks an internal contract,
	// for instance when it is called on a diagram that was not built.
	ErrInvariant = errors.New("invariant violation")

	// ErrParse is matched by the errors returned by ParseAssignment.
	ErrParse = errors.New("parse error")

	// ErrOrder is returned when a variable order does not list every
	// variable of the formula exactly once.
	ErrOrder = errors.New("invalid variable order")
)

// ParseError reports a malformed token in a textual assignment.
type ParseError struct {
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q: %s", e.Token, e.Msg)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
