package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var domainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Manage domains inside a feed",
	Long: `Add, remove and list the malicious domains inside a feed.

Domains are normalised before submission: scheme, path, port and
userinfo are stripped and the hostname is lowercased, so pasting full
URLs works. Invalid entries are reported per domain and skipped.

Examples:
  threatfeed domain add fd-1234 evil.example.com phish.example.org

  # Full URLs are accepted
  threatfeed domain add fd-1234 "https://malware.example.net/payload"

  threatfeed domain remove fd-1234 evil.example.com
  threatfeed domain list fd-1234`,
}

var domainAddCmd = &cobra.Command{
	Use:   "add [feed-id] <domain>...",
	Short: "Add domains to a feed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDomainAdd,
}

var domainRemoveCmd = &cobra.Command{
	Use:   "remove [feed-id] <domain>...",
	Short: "Remove domains from a feed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDomainRemove,
}

var domainListCmd = &cobra.Command{
	Use:   "list [feed-id]",
	Short: "List the domains in a feed",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDomainList,
}

func init() {
	domainCmd.AddCommand(domainAddCmd)
	domainCmd.AddCommand(domainRemoveCmd)
	domainCmd.AddCommand(domainListCmd)
	rootCmd.AddCommand(domainCmd)
}

// splitFeedArgs separates the feed id from the domain arguments. With
// a single argument the feed id is taken from the most recently
// created feed, so 'domain add evil.example.com' works right after
// 'feed create'.
func splitFeedArgs(args []string) (string, []string, error) {
	if len(args) >= 2 {
		return args[0], args[1:], nil
	}
	if id := feedService.LastFeedID(); id != "" {
		return id, args, nil
	}
	return "", nil, errors.New("usage: <feed-id> <domain>...")
}

func runDomainAdd(cmd *cobra.Command, args []string) error {
	if reconciler == nil || feedService == nil {
		return errors.New("reconciler not configured")
	}

	id, domains, err := splitFeedArgs(args)
	if err != nil {
		return err
	}

	result, err := reconciler.AddDomains(cmd.Context(), id, domains)
	if err != nil {
		return fmt.Errorf("add domains: %w", err)
	}
	printResult(cmd, "Added", result)
	return nil
}

func runDomainRemove(cmd *cobra.Command, args []string) error {
	if reconciler == nil || feedService == nil {
		return errors.New("reconciler not configured")
	}

	id, domains, err := splitFeedArgs(args)
	if err != nil {
		return err
	}

	result, err := reconciler.RemoveDomains(cmd.Context(), id, domains)
	if err != nil {
		return fmt.Errorf("remove domains: %w", err)
	}
	printResult(cmd, "Removed", result)
	return nil
}

func runDomainList(cmd *cobra.Command, args []string) error {
	if reconciler == nil {
		return errors.New("reconciler not configured")
	}

	id, err := resolveFeedID(args)
	if err != nil {
		return err
	}

	count := 0
	domainsCh, errsCh := reconciler.StreamDomains(cmd.Context(), id)
	for d := range domainsCh {
		cmd.Printf("%s\n", d)
		count++
	}
	if err := <-errsCh; err != nil {
		return fmt.Errorf("list domains: %w", err)
	}

	if count == 0 {
		cmd.Println("Feed is empty.")
	}
	return nil
}
