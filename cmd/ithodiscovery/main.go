// itho-discovery converts a legacy Itho `.par` configuration export into a
// versioned parameter/datalabel catalog and synthesizes Home Assistant MQTT
// sensor discovery descriptors from it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// configPath is the --config flag value; empty means built-in defaults.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "ithodiscovery",
	Short: "Convert Itho parameter exports into MQTT sensor discovery descriptors",
	Long: `ithodiscovery reads a legacy Itho HVAC parameter export (.par file),
rebuilds it as a versioned catalog of parameters and datalabels, and
synthesizes Home Assistant MQTT sensor discovery descriptors.

Extraction relies on the mdbtools utilities (mdb-schema, mdb-tables,
mdb-export) being available on PATH.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to config.yaml (built-in defaults when omitted)")
}

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) so a hung extraction
	// tool or broker connection can be abandoned cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
