package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	annotateerrors "github.com/toyz/annotate/internal/errors"
)

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	NewDiagnosticReporter(false, &buf).ReportWarning("This is a test warning")

	assert.Equal(t, "! This is a test warning\n", buf.String())
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	color.NoColor = true

	perr := annotateerrors.NewParseErrorWithToken("Route", "Missing.CONST", errors.New("unknown constant")).
		WithElement("Users.List").
		WithLocation(annotateerrors.SourceLocation{File: "users.go", Line: 12, Column: 2})

	tests := []struct {
		name    string
		verbose bool
		err     error
		want    []string
		absent  []string
	}{
		{
			name:   "annotation error",
			err:    perr,
			want:   []string{"x Users.List\n", "ParseError: ", "Location: users.go:12:2", "Hint: "},
			absent: []string{"element: Users.List"},
		},
		{
			name:    "verbose adds context",
			verbose: true,
			err:     perr,
			want:    []string{"element: Users.List", "annotation: Route"},
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			want:   []string{"x Users.List\n", "Message: boom"},
			absent: []string{"Hint"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewDiagnosticReporter(tt.verbose, &buf).ReportError("Users.List", tt.err)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			for _, absent := range tt.absent {
				assert.NotContains(t, buf.String(), absent)
			}
		})
	}
}
