package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/toyz/annotate/internal/cli"
	"github.com/toyz/annotate/internal/utils"
)

func main() {
	var (
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and debug logging")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		typeFlag    = flag.String("type", "", "Comma-separated type name patterns to report, e.g. User* (defaults to all)")
		dirFlag     = flag.String("dir", "", "Directory package patterns are resolved in")
		testsFlag   = flag.Bool("tests", false, "Include _test.go files")
		formatFlag  = flag.String("format", cli.FormatText, "Output format: text or yaml")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <package-patterns...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Lists the @Name(...) annotations in the doc comments of Go types, methods and fields.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                      # Report every package\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -type Users ./internal/... # Report a single type\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format yaml ./...         # Write the report as YAML\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	cfg := cli.Config{
		Patterns: flag.Args(),
		Dir:      *dirFlag,
		Tests:    *testsFlag,
		Format:   *formatFlag,
		Verbose:  *verboseFlag,
		Quiet:    *quietFlag,
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"./..."}
	}
	if *typeFlag != "" {
		cfg.Types = strings.Split(*typeFlag, ",")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "annotate: %v\n", err)
		os.Exit(2)
	}

	// Standard output carries only the document in yaml mode
	var diagnostics *utils.DiagnosticSystem
	if cfg.Quiet || cfg.Format == cli.FormatYAML {
		diagnostics = utils.NewQuietDiagnostics()
	} else if cfg.Verbose {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	var logger *slog.Logger
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if module, err := utils.NewGoModParser().ModulePath(dir); err == nil {
		diagnostics.Header(module)
	} else {
		diagnostics.Header(strings.Join(cfg.Patterns, " "))
	}

	runner := cli.NewRunner(cfg, diagnostics, cli.NewDiagnosticReporter(cfg.Verbose, os.Stderr), logger)
	summary, err := runner.Run(context.Background())
	if summary == nil {
		diagnostics.Error("%v", err)
		os.Exit(1)
	}

	if cfg.Format == cli.FormatYAML {
		if werr := cli.WriteYAML(os.Stdout, summary.Report); werr != nil {
			diagnostics.Error("%v", werr)
			os.Exit(1)
		}
	}

	diagnostics.Summary("Done", map[string]interface{}{
		"Packages":    summary.Packages,
		"Types":       summary.Types,
		"Annotated":   summary.Elements,
		"Annotations": summary.Annotations,
		"Failures":    summary.Failures,
	})

	if err != nil {
		os.Exit(1)
	}
	diagnostics.Success("no annotation errors in %d types", summary.Types)
}
