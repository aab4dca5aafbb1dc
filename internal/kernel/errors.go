// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package kernel

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrMemory is returned (wrapped) when an operation would grow the node table
// over the limit set with Maxnodesize.
var ErrMemory = errors.New("node table exceeds its maximal size")

// Err returns the error status of the kernel, or nil if every operation
// since the last call to ClearError succeeded.
func (b *BDD) Err() error {
	return b.err
}

// Errored returns true if there was an error during a computation.
func (b *BDD) Errored() bool {
	return b.err != nil
}

// ClearError resets the error status of b.
func (b *BDD) ClearError() {
	b.err = nil
}

// seterror records an error and returns the invalid node, so that it can be
// used directly in a return statement. Errors are chained: a second error
// keeps the first one wrapped.
func (b *BDD) seterror(format string, a ...interface{}) Node {
	if b.err != nil {
		b.err = fmt.Errorf(format+"; %w", append(a, b.err)...)
	} else {
		b.err = fmt.Errorf(format, a...)
	}
	slog.Debug("kernel error", "error", b.err)
	return invalid
}
