package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/liam-witterick/phpaudit/internal/config"
	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/logging"
	"github.com/liam-witterick/phpaudit/internal/progress"
	"github.com/liam-witterick/phpaudit/internal/report"
	"github.com/liam-witterick/phpaudit/internal/rules"
	"github.com/liam-witterick/phpaudit/internal/source"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	toolName = "phpaudit"
	version  = "1.0.0"
)

// errCritical signals a completed scan with critical findings. It sets the
// exit status without printing an error.
var errCritical = errors.New("critical issues found")

type options struct {
	format      string
	output      string
	minSeverity string
	configPath  string
	noColor     bool
	noProgress  bool
	debug       bool
	listChecks  bool
	version     bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit status
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	logging.Sync()

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errCritical):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   toolName + " <file>",
		Short: "phpaudit - pattern-based security audit for a single PHP file",
		Long: `phpaudit v` + version + ` - pattern-based security audit for a single PHP file

phpaudit scans one source file line by line against a fixed catalog of checks
and prints a severity-ranked report.

CHECKS:
    🔴 SQL injection, XSS, command injection
    🟠 Dangerous functions, hardcoded credentials, file operations, deserialization
    🟡 Input validation, session security, CSRF

Exit status is 1 when any critical issue is found or the file cannot be read.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&opts.format, "format", "text", "Report format (text|json|sarif)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&opts.minSeverity, "min-severity", "low", "Only report findings at or above this severity (critical|high|medium|low)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file (default: .phpaudit.yaml or .github/phpaudit.yaml)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")
	cmd.Flags().BoolVar(&opts.listChecks, "list-checks", false, "List the check catalog and exit")
	cmd.Flags().BoolVar(&opts.version, "version", false, "Show version")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string, stdout, stderr io.Writer) error {
	if opts.version {
		fmt.Fprintf(stdout, "phpaudit v%s\n", version)
		return nil
	}

	if opts.listChecks {
		return listChecks(stdout)
	}

	if len(args) != 1 {
		return fmt.Errorf("expected exactly one file argument\nUsage: %s", cmd.UseLine())
	}
	path := args[0]

	if err := logging.Init(opts.debug); err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	log := logging.Logger

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format := opts.format
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	if !config.ValidFormat(format) {
		return fmt.Errorf("invalid --format: %s (must be text, json, or sarif)", format)
	}

	minName := opts.minSeverity
	if !cmd.Flags().Changed("min-severity") && cfg.MinSeverity != "" {
		minName = cfg.MinSeverity
	}
	minSeverity, err := findings.ParseSeverity(minName)
	if err != nil {
		return fmt.Errorf("invalid --min-severity: %w", err)
	}

	doc, err := source.Load(path)
	if err != nil {
		return err
	}
	log.Debugw("loaded file", "path", path, "lines", doc.LineCount())

	var tracker *progress.Tracker
	if !opts.noProgress && isTerminal(stderr) {
		tracker = progress.NewTracker("🔍 Scanning", rules.Enabled(cfg.IsDisabled), stderr)
	}

	all := rules.ScanWith(doc, rules.Options{
		Skip: cfg.IsDisabled,
		OnCheck: func(c rules.Check, found int) {
			log.Debugw("check complete", "check", c.ID, "findings", found)
			if tracker != nil {
				tracker.Step(c.ID)
			}
		},
	})
	if tracker != nil {
		tracker.Finish()
	}

	full := report.New(path, all)
	critical := full.HasCritical()
	shown := full.Filter(minSeverity)
	if hidden := full.Total - shown.Total; hidden > 0 {
		log.Infow("filtered findings below minimum severity", "hidden", hidden, "min_severity", minSeverity.String())
	}

	render := func(w io.Writer) error {
		switch format {
		case "json":
			return report.RenderJSON(w, shown)
		case "sarif":
			return report.RenderSARIF(w, shown, toolName, version)
		default:
			color := !opts.noColor && opts.output == "" && isTerminal(stdout)
			return report.RenderText(w, shown, report.TextOptions{Color: color})
		}
	}

	if opts.output == "" {
		if err := render(stdout); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := writeAndClose(f, render); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "💡 Report saved to %s\n", opts.output)
	}

	if critical {
		log.Debugw("critical issues found", "critical", full.Counts[findings.SeverityCritical])
		return errCritical
	}
	return nil
}

// writeAndClose renders into w and closes it. A failed close is reported
// because buffered file data may not have reached disk.
func writeAndClose(w io.WriteCloser, render func(io.Writer) error) error {
	if err := render(w); err != nil {
		w.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

func listChecks(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSEVERITY\tSUMMARY")
	for _, c := range rules.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Severity, c.Summary)
	}
	return tw.Flush()
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
