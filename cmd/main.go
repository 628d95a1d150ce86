package main

import (
	"fmt"
	"os"
	"time"

	"upgrade-advisor/internal/compat"
	"upgrade-advisor/internal/config"
	"upgrade-advisor/internal/domain"
	"upgrade-advisor/internal/logger"
	"upgrade-advisor/internal/risk"
	"upgrade-advisor/internal/server"
	"upgrade-advisor/internal/synth"
	"upgrade-advisor/internal/usecases"
	"upgrade-advisor/internal/vulnerability"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile string
	listenAddr string
	debug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "upgrade-advisor",
	Short: "Upgrade Advisor - Evaluate dependency version upgrades",
	Long: `An HTTP service that evaluates proposed dependency-version upgrades and
returns a structured verdict: admissibility, the file-level changes the
upgrade implies, a compatibility score and a risk assessment. It is the
decision-support component of an automated dependency-upgrade platform;
orchestration, job queueing and PR application live elsewhere.`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upgrade evaluation HTTP server",
	Long: `Start the HTTP server exposing the upgrade evaluation pipeline on
POST /upgrade, with /health and /metrics alongside. The pipeline is
stateless; every request is evaluated independently.`,
	RunE: runServe,
}

func setupCommands() {
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (optional)")

	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (overrides config)")
	serveCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging with verbose output")

	// Bind flags to viper
	if err := viper.BindPFlag("server.listen_addr", serveCmd.Flags().Lookup("listen")); err != nil {
		panic(fmt.Sprintf("failed to bind listen flag: %v", err))
	}
}

func main() {
	setupCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI flags override config
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	l := logger.GetLogger()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pick the vulnerability oracle: advisory-backed when advisories are
	// configured, placeholder otherwise.
	oracle := buildOracle(cfg, l)
	checkTimeout := time.Duration(cfg.Vulnerability.CheckTimeoutSeconds) * time.Second

	evaluator := usecases.NewEvaluateUseCase(
		compat.NewScorer(),
		synth.NewSynthesizer(),
		risk.NewAssessor(oracle, checkTimeout, l),
		l,
	)

	srv := server.NewServer(evaluator, server.NewMetrics(), l)

	l.Info("Starting upgrade advisor",
		zap.String("listen_addr", cfg.Server.ListenAddr),
		zap.Uint64("max_execution_time", cfg.MaxExecutionTime),
		zap.Uint64("memory_limit", cfg.MemoryLimit),
		zap.Bool("sandbox_enabled", cfg.SandboxEnabled),
		zap.Int("advisories", len(cfg.Vulnerability.Advisories)))

	if err := srv.Run(cfg.Server.ListenAddr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func buildOracle(cfg *config.Config, l *zap.Logger) domain.VulnerabilityOracle {
	if len(cfg.Vulnerability.Advisories) == 0 {
		return vulnerability.NewPlaceholder()
	}

	advisories := make([]vulnerability.Advisory, len(cfg.Vulnerability.Advisories))
	for i, a := range cfg.Vulnerability.Advisories {
		advisories[i] = vulnerability.Advisory{
			Package:    a.Package,
			Constraint: a.Constraint,
			Summary:    a.Summary,
		}
	}
	return vulnerability.NewAdvisoryOracle(advisories, l)
}
