// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package formula

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched (with errors.Is) by every error returned when a text
// does not follow the grammar of formulas.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the position (byte offset in the input) of the first
// token that could not be parsed.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
