package compiler

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError describes a problem in a system document, with the CUE
// source position when one is available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// formatCUEError converts a raw CUE error into a CompileError, preserving
// the first source position CUE reports.
func formatCUEError(err error) error {
	var pos token.Pos
	if positions := errors.Positions(errors.Promote(err, "")); len(positions) > 0 {
		pos = positions[0]
	}
	return &CompileError{
		Message: errors.Details(err, nil),
		Pos:     pos,
	}
}
