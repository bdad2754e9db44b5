// Package cli wires the cobra command tree to the core services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/threatfeed-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/threatfeed-cli/internal/connectors/lookout"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/threatfeed-cli/internal/core/services"
	"github.com/custodia-labs/threatfeed-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Wired in initServices; tests replace
// them directly.
var (
	feedService driving.FeedService
	reconciler  driving.Reconciler
	configStore driven.ConfigStore
)

// Persistent flags.
var (
	verboseFlag bool
	baseURLFlag string
	configDir   string
	apiKeyFile  string
)

var rootCmd = &cobra.Command{
	Use:   "threatfeed",
	Short: "Manage threat intelligence feeds",
	Long: `threatfeed manages named collections of malicious domains hosted
by the Lookout Threat Feed API.

Feeds are created and deleted with the 'feed' commands; their domain
contents are inspected and modified with the 'domain' commands or
resynchronised wholesale from a file or URL with 'feed update'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(
		&baseURLFlag, "base-url", "", "Override the API base URL")
	rootCmd.PersistentFlags().StringVar(
		&configDir, "config-dir", "", "Config directory (default ~/.threatfeed)")
	rootCmd.PersistentFlags().StringVar(
		&apiKeyFile, "api-key-file", "", "Path to the API key file (default ~/.threatfeed/api_key)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices builds the client and services for commands that talk
// to the API. Commands that work without a key (auth, version, help)
// skip the key load so first-run UX is not a wall of errors.
func initServices(cmd *cobra.Command) error {
	if feedService != nil || reconciler != nil {
		return nil
	}
	if !requiresAPI(cmd) {
		return nil
	}

	keyPath, err := resolveAPIKeyPath()
	if err != nil {
		return err
	}
	key, err := file.LoadAPIKey(keyPath)
	if err != nil {
		return err
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	tokenProvider := lookout.NewAPIKeyTokenProvider(lookout.DefaultTokenURL, key)
	client := lookout.NewClient(baseURLFlag, tokenProvider)

	configStore = store
	feedService = services.NewFeedService(client, store)
	reconciler = services.NewReconciler(client)
	return nil
}

// requiresAPI reports whether the command needs an authenticated
// client.
func requiresAPI(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "auth", "version", "help", "completion", "__complete":
			return false
		}
	}
	return true
}

// resolveAPIKeyPath returns the key file path, honouring the flag.
func resolveAPIKeyPath() (string, error) {
	if apiKeyFile != "" {
		return apiKeyFile, nil
	}
	return file.DefaultAPIKeyPath()
}
