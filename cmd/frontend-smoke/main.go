package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/educacion-app/frontend-smoke/internal/browser"
	"github.com/educacion-app/frontend-smoke/internal/config"
	"github.com/educacion-app/frontend-smoke/internal/logging"
	"github.com/educacion-app/frontend-smoke/internal/report"
	"github.com/educacion-app/frontend-smoke/internal/smoke"
	"github.com/educacion-app/frontend-smoke/internal/version"
)

// errChecksFailed marks a completed run with at least one failing check.
var errChecksFailed = errors.New("one or more checks failed")

var configFileFlag string

var rootCmd = &cobra.Command{
	Use:   "frontend-smoke",
	Short: "Browser smoke tests for the Educacion App frontend",
	Long: `frontend-smoke drives a headless browser through the Educacion App:
the login page, protected route redirects, API status codes, static assets,
responsive layouts, the 404 page and basic accessibility.

It exits 0 when every check passes and 1 when any check fails.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSuite,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the smoke suite (default command)",
	RunE:  runSuite,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Playwright driver and browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFileFlag, cmd.Flags())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Installing Playwright %s...\n", cfg.Browser)
		if err := browser.Install(cfg.Browser); err != nil {
			return err
		}
		fmt.Fprintln(out, "Playwright browsers installed")
		return nil
	},
}

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		}
		fmt.Fprintf(out, "frontend-smoke %s\n", version.Full())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFileFlag, "config", "", "YAML configuration file")
	config.RegisterFlags(rootCmd.PersistentFlags())

	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps a command error onto the process status: 0 on success,
// 1 when checks failed and 2 when the suite could not run at all.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChecksFailed):
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
}

func runSuite(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFileFlag, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	suite, err := smoke.LoadSuite(cfg.SuiteFile)
	if err != nil {
		return err
	}
	if cfg.StrictCSS {
		suite.StrictCSS = true
	}

	if cfg.Probe && !config.Reachable(cfg.BaseURL, suite.LoginPath) {
		logger.Warn("Target does not answer yet; checks will likely fail",
			zap.String("base_url", cfg.BaseURL))
	}

	out := cmd.OutOrStdout()
	transcript := report.NewTranscript(out)
	transcript.Banner()

	opts := browser.OptionsFromConfig(cfg)
	opts.OnConsole = transcript.Console
	session, err := browser.Open(opts, logger)
	if err != nil {
		return fmt.Errorf("failed to setup browser: %w", err)
	}
	defer session.Close()

	summary := execute(cmd.Context(), session, suite, cfg, transcript, logger)
	if summary.Failed > 0 {
		return errChecksFailed
	}
	return nil
}

// execute runs the suite on page, prints the summary and writes the
// optional JSON report and metrics file.
func execute(ctx context.Context, page smoke.Page, suite smoke.Suite, cfg *config.Config, transcript *report.Transcript, logger *zap.Logger) report.Summary {
	started := time.Now()
	results := smoke.NewRunner(page, suite, transcript, logger).Run(ctx)
	summary := report.Summarize(cfg.BaseURL, started, time.Now(), results)

	screenshotDir := ""
	if cfg.Screenshots {
		screenshotDir = cfg.ScreenshotDir
	}
	transcript.Summary(summary, screenshotDir)

	if cfg.ReportPath != "" {
		if err := report.SaveJSON(cfg.ReportPath, summary); err != nil {
			logger.Error("Failed to save report", zap.String("path", cfg.ReportPath), zap.Error(err))
		} else {
			logger.Info("Report saved", zap.String("path", cfg.ReportPath))
		}
	}
	if cfg.MetricsPath != "" {
		if err := report.WriteMetrics(cfg.MetricsPath, summary); err != nil {
			logger.Error("Failed to write metrics", zap.String("path", cfg.MetricsPath), zap.Error(err))
		}
	}

	logger.Debug("Suite finished",
		zap.String("run_id", summary.RunID),
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration()))
	return summary
}
