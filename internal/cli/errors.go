package cli

import (
	"fmt"
	"io"

	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// PrintError prints an error to w with appropriate formatting.
// If the error is a ScopeError, it uses the user-friendly format.
// Otherwise, it prints a simple error message.
func PrintError(w io.Writer, err error) {
	if scopeErr := scopeerrors.AsScopeError(err); scopeErr != nil {
		fmt.Fprintln(w, scopeErr.UserMessage())
		if verbose {
			// In verbose mode, also print the error code and cause
			fmt.Fprintf(w, "\nCode: %s\n", scopeErr.Code)
			if scopeErr.Cause != nil {
				fmt.Fprintf(w, "Cause: %v\n", scopeErr.Cause)
			}
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
