package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	annotateerrors "github.com/toyz/annotate/internal/errors"
)

// DiagnosticReporter prints annotation errors with their location, context
// and suggestions
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to out
func NewDiagnosticReporter(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

// ReportWarning prints a one-line warning
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err for the element it was raised on
func (r *DiagnosticReporter) ReportError(element string, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(r.out, "x ")
	fmt.Fprintf(r.out, "%s\n", element)

	var ae annotateerrors.AnnotateError
	if !errors.As(err, &ae) {
		fmt.Fprintf(r.out, "  Message: %s\n", err.Error())
		return
	}

	fmt.Fprintf(r.out, "  %s: %s\n", ae.ErrorCode(), err.Error())
	if loc := ae.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "  Location: %s\n", loc)
	}

	if r.verbose {
		r.printContext(ae.Context())
	}

	for _, suggestion := range ae.Suggestions() {
		fmt.Fprintf(r.out, "  Hint: %s\n", suggestion)
	}
}

func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	if len(context) == 0 {
		return
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(r.out, "  %s: %v\n", key, context[key])
	}
}
