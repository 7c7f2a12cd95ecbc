package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	annotateerrors "github.com/toyz/annotate/internal/errors"
	"github.com/toyz/annotate/internal/utils"
	"github.com/toyz/annotate/pkg/annotate"
	"github.com/toyz/annotate/pkg/annotate/source"
)

// Summary counts what a run found
type Summary struct {
	Packages    int
	Types       int
	Elements    int // elements carrying at least one annotation
	Annotations int
	Failures    int

	// Report holds the annotated elements of every reported type
	Report []TypeReport
}

// Runner loads packages and reports the annotations on their types
type Runner struct {
	config      Config
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
	logger      *slog.Logger
}

// NewRunner creates a runner. A nil logger discards library logging.
func NewRunner(cfg Config, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		config:      cfg,
		diagnostics: diagnostics,
		reporter:    reporter,
		logger:      logger,
	}
}

// Run loads the configured packages through the source host and reports them
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	host, err := source.Load(ctx, source.Config{
		Dir:    r.config.Dir,
		Tests:  r.config.Tests,
		Logger: r.logger,
	}, r.config.Patterns...)
	if err != nil {
		return nil, err
	}

	for _, pkg := range host.Packages() {
		r.diagnostics.Verbose("loaded package %s", pkg)
	}

	summary, err := r.Report(annotate.NewInspector(host, annotate.WithLogger(r.logger)), canonicalNames(host.TypeNames()))
	if summary != nil {
		summary.Packages = len(host.Packages())
	}
	return summary, err
}

// Report prints the annotations of the named types. Element failures are
// reported as they occur and returned together.
func (r *Runner) Report(in *annotate.Inspector, names []string) (*Summary, error) {
	summary := &Summary{}
	failures := annotateerrors.NewMultipleErrors()

	for _, name := range names {
		if !r.config.wantsType(name) {
			continue
		}
		t, err := in.Type(name)
		if err != nil {
			failures.Add(err)
			r.reporter.ReportError(name, err)
			continue
		}
		summary.Types++

		report := TypeReport{Name: name}
		r.diagnostics.Section(name)
		r.diagnostics.Indent()
		r.reportElement(t.String(), t, &report, summary, failures)
		for _, m := range t.Methods() {
			r.reportElement(m.String(), m, &report, summary, failures)
		}
		for _, p := range t.Properties() {
			r.reportElement(p.String(), p, &report, summary, failures)
		}
		r.diagnostics.Unindent()
		summary.Report = append(summary.Report, report)
	}

	for _, pattern := range r.config.Types {
		matched := slices.ContainsFunc(names, func(name string) bool {
			return matchType(pattern, name)
		})
		if !matched {
			r.reporter.ReportWarning(fmt.Sprintf("type %q was not found in the loaded packages", pattern))
		}
	}

	summary.Failures = failures.Count()
	return summary, failures.ErrorOrNil()
}

func (r *Runner) reportElement(label string, el annotate.Element, report *TypeReport, summary *Summary, failures *annotateerrors.MultipleErrors) {
	anns, err := el.Annotations()
	if err != nil {
		failures.Add(err)
		r.reporter.ReportError(label, err)
		return
	}
	if len(anns) == 0 {
		return
	}

	summary.Elements++
	summary.Annotations += len(anns)

	kinds := make([]string, 0, len(anns))
	for kind := range anns {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	entry := ElementReport{
		Element:     label,
		Category:    el.Category().String(),
		Annotations: make(map[string]string, len(anns)),
	}
	for _, kind := range kinds {
		formatted := FormatAnnotation(anns[kind])
		entry.Annotations[kind] = formatted
		r.diagnostics.List("%s [%s] @%s %s", label, el.Category(), kind, formatted)
	}
	report.Elements = append(report.Elements, entry)
}

// FormatAnnotation renders an annotation instance for display
func FormatAnnotation(instance any) string {
	switch v := instance.(type) {
	case *annotate.Record:
		fields := v.Fields()
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%+v", instance)
	}
}

// canonicalNames drops package-qualified aliases
func canonicalNames(names []string) []string {
	var result []string
	for _, name := range names {
		if !strings.Contains(name, ".") {
			result = append(result, name)
		}
	}
	return result
}
