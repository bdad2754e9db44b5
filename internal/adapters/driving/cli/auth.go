package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/threatfeed-cli/internal/adapters/driven/config/file"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials",
	Long: `Store and inspect the Lookout application key used to
authenticate against the Threat Feed API.

The key is exchanged for a short-lived access token on first use; the
key itself is kept in a file readable only by you.

Examples:
  # Prompt for the key (input is hidden)
  threatfeed auth set

  # Read the key from a file
  threatfeed auth set --key-file ./lookout.key

  threatfeed auth status`,
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key",
	RunE:  runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API key is configured",
	RunE:  runAuthStatus,
}

var authSetKeyFile string

func init() {
	authSetCmd.Flags().StringVar(
		&authSetKeyFile, "key-file", "", "Read the API key from this file instead of prompting")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, _ []string) error {
	var key string

	if authSetKeyFile != "" {
		data, err := os.ReadFile(authSetKeyFile)
		if err != nil {
			return fmt.Errorf("read key file: %w", err)
		}
		key = strings.TrimSpace(string(data))
	} else {
		cmd.Print("API key: ")
		key = readSecret(cmd)
		cmd.Println()
	}

	path, err := resolveAPIKeyPath()
	if err != nil {
		return err
	}
	if err := file.SaveAPIKey(path, key); err != nil {
		return err
	}

	cmd.Printf("API key saved to %s\n", path)
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	path, err := resolveAPIKeyPath()
	if err != nil {
		return err
	}

	if _, err := file.LoadAPIKey(path); err != nil {
		cmd.Printf("No API key configured (%s)\n", path)
		cmd.Println("Set one with: threatfeed auth set")
		return nil
	}

	cmd.Printf("API key configured at %s\n", path)
	return nil
}

// readSecret reads a line without echo when stdin is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(cmd *cobra.Command) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
