package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/stratalog/pkg/errors"
)

// Exit codes returned by the stratalog binary.
const (
	ExitOK       = 0
	ExitFailure  = 1   // runtime or internal failure
	ExitUsage    = 2   // bad input, config or flags
	ExitMissing  = 3   // input file does not exist
	ExitNoTool   = 4   // external converter unavailable
	ExitCanceled = 130 // interrupted
)

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	var fe *errors.FieldError
	if stderrors.As(err, &fe) {
		return ExitUsage
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidField:
		return ExitUsage
	case errors.ErrCodeFileNotFound:
		return ExitMissing
	case errors.ErrCodeUnsupported:
		return ExitNoTool
	}
	return ExitFailure
}

// Report prints err to w the way a user should see it. Coded errors lose
// their code prefix; cancellation prints nothing.
func Report(w io.Writer, err error) {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(w, StyleError.Render(iconError)+" "+userMessage(err))
}
