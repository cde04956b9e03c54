// Package cmd implements the aepctl CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"firestige.xyz/aep/internal/log"
	"firestige.xyz/aep/pkg/catalog"
	"firestige.xyz/aep/pkg/packet"
)

var (
	catalogFile string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "aepctl",
	Short: "aepctl - inspect and validate allocation-exchange packet envelopes",
	Long: `aepctl works with allocation-exchange packet envelopes offline: it loads a
packet type catalog, decodes envelope files, checks required fields and
resolves reply packets. It performs no network I/O.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(logLevel)
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "",
		"packet type catalog file (JSON or YAML, required)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")
	rootCmd.MarkPersistentFlagRequired("catalog")
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}

// loadRegistry builds the packet registry from the --catalog flag.
func loadRegistry() *packet.Registry {
	c, err := catalog.Load(catalogFile)
	if err != nil {
		exitWithError(fmt.Sprintf("failed to load catalog %s", catalogFile), err)
	}
	reg, err := c.Registry()
	if err != nil {
		exitWithError("failed to build registry", err)
	}
	packet.SetDefault(reg)
	return reg
}

// readPacket decodes an envelope file against the registry.
func readPacket(reg *packet.Registry, path string) *packet.Packet {
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(fmt.Sprintf("failed to read file %s", path), err)
	}
	p, err := reg.FromJSON(data)
	if err != nil {
		exitWithError(fmt.Sprintf("failed to decode envelope %s", path), err)
	}
	return p
}
