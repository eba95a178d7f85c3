// Package main is the CLI entry point for hostmaint.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/hostmaint/internal/catalog"
	"github.com/eliteGoblin/hostmaint/internal/config"
	"github.com/eliteGoblin/hostmaint/internal/domain"
	"github.com/eliteGoblin/hostmaint/internal/infra"
	"github.com/eliteGoblin/hostmaint/internal/usecase"
)

var (
	// Version info (set via ldflags)
	Version   = "0.3.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	// Optional .env next to the binary or in the working directory; absence
	// is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hostmaint",
	Short: "Host maintenance orchestrator - diagnostics and remediation in one command",
	Long: `hostmaint collects diagnostic facts about this machine, runs the built-in
repair and verification tools, and applies routine maintenance actions,
returning one structured report per invocation.

Privileged operations require an elevated shell.`,
	Version: Version,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run diagnostic operations and print the maintenance report",
	Long: `Runs the selected diagnostic operations (filesystem scan, system file
check, component store scan/repair, update check/apply) in a fixed order and
prints one aggregate report. Individual tool failures are recorded in the
report; only a missing elevation aborts the run.`,
	RunE: runCheck,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run maintenance actions (component store cleanup, content refresh)",
	Long: `Runs the maintenance-action operations. With --fix the component store is
actually cleaned up; without it the cleanup is only analyzed. Optionally
refreshes the help content and the third-party tool bundle afterwards.`,
	RunE: runUpdate,
}

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Collect and print read-only host facts",
	Long:  `Collects computer info, volumes, memory, environment variables, crash dumps and installed programs. Never mutates anything.`,
	RunE:  runFacts,
}

var fetchToolsCmd = &cobra.Command{
	Use:   "fetch-tools",
	Short: "Download and unpack the third-party utility bundle",
	RunE:  runFetchTools,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run:   runVersion,
}

var (
	configPath   string
	fixMode      bool
	opsFlag      []string
	outputFormat string
	refreshHelp  bool
	refreshTools bool
	jsonOutput   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to TOML config file (default $HOSTMAINT_CONFIG)")

	checkCmd.Flags().BoolVar(&fixMode, "fix", false, "Apply fixes instead of verify-only")
	checkCmd.Flags().StringSliceVar(&opsFlag, "ops", nil, "Operations to run (default: all)")
	checkCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, yaml or json")

	updateCmd.Flags().BoolVar(&fixMode, "fix", false, "Apply maintenance actions instead of analyzing")
	updateCmd.Flags().BoolVar(&refreshHelp, "refresh-help", false, "Refresh help content after the run")
	updateCmd.Flags().BoolVar(&refreshTools, "refresh-tools", false, "Refresh the third-party tool bundle after the run")
	updateCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, yaml or json")

	factsCmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format: yaml or json")

	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(fetchToolsCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("HOSTMAINT_CONFIG")
	}
	return config.Load(path)
}

func buildOrchestrator(cfg *config.Config, logger *zap.Logger) *usecase.Orchestrator {
	invoker := infra.NewToolInvoker()
	gate := infra.NewPrivilegeGate()

	helperPath := cfg.UpdateHelperPath()
	updates := infra.NewUpdateTool(invoker, helperPath,
		[]string{"/list"}, []string{"/install", "/all"}, logger)

	return usecase.NewOrchestratorWithPaths(gate, invoker, updates, cfg.ToolPaths, logger)
}

func parseSelection(ops []string) (domain.Selection, error) {
	if len(ops) == 0 {
		return domain.SelectAll(), nil
	}
	var names []domain.OperationName
	for _, raw := range ops {
		name := domain.OperationName(strings.TrimSpace(strings.ToLower(raw)))
		if _, ok := catalog.Lookup(name); !ok {
			return domain.Selection{}, fmt.Errorf("unknown operation %q (known: %s)", raw, knownOps())
		}
		names = append(names, name)
	}
	return domain.SelectOps(names...), nil
}

func knownOps() string {
	var ops []string
	for _, e := range catalog.Entries() {
		ops = append(ops, string(e.Name))
	}
	return strings.Join(ops, ", ")
}

func modeFromFlags() domain.Mode {
	if fixMode {
		return domain.Apply
	}
	return domain.VerifyOnly
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := createLogger(cfg)
	defer func() { _ = logger.Sync() }()

	sel, err := parseSelection(opsFlag)
	if err != nil {
		return err
	}

	orch := buildOrchestrator(cfg, logger)
	report, err := orch.RunChecks(context.Background(), sel, modeFromFlags())
	if err != nil {
		return err
	}

	return renderReport(cmd.OutOrStdout(), report, outputFormat)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := createLogger(cfg)
	defer func() { _ = logger.Sync() }()

	orch := buildOrchestrator(cfg, logger)
	report, err := orch.RunUpdates(context.Background(), domain.SelectAll(), modeFromFlags())
	if err != nil {
		return err
	}

	if err := renderReport(cmd.OutOrStdout(), report, outputFormat); err != nil {
		return err
	}

	ctx := context.Background()
	if refreshHelp {
		refreshHelpContent(ctx, cfg, logger)
	}
	if refreshTools {
		if err := fetchToolBundle(ctx, cfg, logger); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: tool bundle refresh failed: %v\n", err)
		}
	}
	return nil
}

// refreshHelpContent runs the help-content refresh collaborator. Outcome is
// logged, never part of the report.
func refreshHelpContent(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	invoker := infra.NewToolInvoker()
	inv, err := invoker.Run(ctx, cfg.UpdateHelperPath(), "/refresh-help")
	if err != nil {
		logger.Error("help content refresh failed to launch", zap.Error(err))
		return
	}
	if inv.ExitStatus != 0 {
		logger.Warn("help content refresh exited non-zero", zap.Int("exit_status", inv.ExitStatus))
		return
	}
	logger.Info("help content refreshed")
}

func fetchToolBundle(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.BundleURL == "" {
		return fmt.Errorf("no bundle_url configured")
	}
	downloader := infra.NewBundleDownloader()
	files, err := downloader.Fetch(ctx, cfg.BundleURL, cfg.ToolsDir)
	if err != nil {
		return err
	}
	logger.Info("tool bundle refreshed",
		zap.String("dir", cfg.ToolsDir),
		zap.Int("files", len(files)))
	return nil
}

func runFetchTools(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := createLogger(cfg)
	defer func() { _ = logger.Sync() }()

	if err := fetchToolBundle(context.Background(), cfg, logger); err != nil {
		return fmt.Errorf("fetch tools: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tool bundle unpacked into %s\n", cfg.ToolsDir)
	return nil
}

func runFacts(cmd *cobra.Command, args []string) error {
	collector := infra.NewFactsCollector()
	facts, err := collector.Collect(context.Background())
	if err != nil {
		return fmt.Errorf("collect facts: %w", err)
	}
	return renderFacts(cmd.OutOrStdout(), facts, outputFormat)
}

func createLogger(cfg *config.Config) *zap.Logger {
	if cfg.LogPath == "" {
		logger, _ := zap.NewDevelopment()
		return logger
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{cfg.LogPath}
	zcfg.ErrorOutputPaths = []string{cfg.LogPath}
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		// Fallback to stderr if file logging fails
		logger, _ = zap.NewProduction()
		return logger
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("hostmaint %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
