package main_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"upgrade-advisor/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(configFile, []byte(content), 0o644)
	require.NoError(t, err)
	return configFile
}

func TestRootCmd_Execute(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:   "upgrade-advisor",
		Short: "Upgrade Advisor - Evaluate dependency version upgrades",
		Long: `An HTTP service that evaluates proposed dependency-version upgrades and
returns a structured verdict.`,
	}

	// Redirect stdout to a buffer to capture the output
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	// Execute the root command (should show help by default)
	err := cmd.Execute()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "An HTTP service that evaluates proposed dependency-version upgrades")
}

func TestServeCmd_ConfigLoads(t *testing.T) {
	t.Parallel()

	configFile := createTempConfig(t, `
max_execution_time: 60
log_level: "warn"
server:
  listen_addr: ":9191"
vulnerability:
  check_timeout_seconds: 3
  advisories:
    - package: lodash
      constraint: "< 4.17.21"
      summary: prototype pollution
`)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upgrade evaluation HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return err
			}
			// Exercise the wiring inputs without binding a listener.
			if cfg.Server.ListenAddr != ":9191" {
				return fmt.Errorf("unexpected listen addr %q", cfg.Server.ListenAddr)
			}
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to configuration file (optional)")
	cmd.SetArgs([]string{"--config", configFile})

	require.NoError(t, cmd.Execute())
}

func TestServeCmd_ConfigError(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upgrade evaluation HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			if _, err := config.LoadConfig(path); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to configuration file (optional)")
	cmd.SetArgs([]string{"--config", "/nonexistent/config.yaml"})

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
