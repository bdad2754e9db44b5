package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/threatfeed-cli/internal/adapters/driven/source"
	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Manage threat feeds",
	Long: `Create, inspect, update and delete threat feeds.

Examples:
  # Create a feed
  threatfeed feed create --title "Blocked domains" --description "Corporate blocklist"

  # List all feeds
  threatfeed feed list

  # Show one feed with its domains
  threatfeed feed view fd-1234 --domains

  # Replace the feed contents from a file or URL
  threatfeed feed update fd-1234 --source ./blocklist.csv
  threatfeed feed update fd-1234 --source https://feeds.example.com/blocklist.csv

  # Keep the feed in sync while the file changes
  threatfeed feed update fd-1234 --source ./blocklist.csv --watch`,
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all feeds",
	RunE:  runFeedList,
}

var feedCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new feed",
	RunE:  runFeedCreate,
}

var feedViewCmd = &cobra.Command{
	Use:   "view [feed-id]",
	Short: "Show a feed's metadata",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFeedView,
}

var feedUpdateCmd = &cobra.Command{
	Use:   "update [feed-id]",
	Short: "Replace a feed's domains from a file or URL",
	Long: `Replaces the feed's domain list wholesale with the entries read
from --source. Entries that are not valid domain names are reported
and skipped; they never reach the service.

With --watch the command keeps running and resynchronises the feed
every time the source file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeedUpdate,
}

var feedDeleteCmd = &cobra.Command{
	Use:   "delete [feed-id]",
	Short: "Delete a feed",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFeedDelete,
}

// Flags.
var (
	feedCreateType        string
	feedCreateTitle       string
	feedCreateDescription string
	feedViewDomains       bool
	feedUpdateSource      string
	feedUpdateWatch       bool
	feedDeleteYes         bool
)

func init() {
	feedCreateCmd.Flags().StringVar(
		&feedCreateType, "type", string(domain.FeedTypeCSV), "Feed type")
	feedCreateCmd.Flags().StringVar(
		&feedCreateTitle, "title", "", "Feed title (8-255 characters)")
	feedCreateCmd.Flags().StringVar(
		&feedCreateDescription, "description", "", "Feed description (8-255 characters)")

	feedViewCmd.Flags().BoolVar(
		&feedViewDomains, "domains", false, "Also list the feed's domains")

	feedUpdateCmd.Flags().StringVar(
		&feedUpdateSource, "source", "", "File path or http(s) URL to read domains from")
	feedUpdateCmd.Flags().BoolVar(
		&feedUpdateWatch, "watch", false, "Keep resynchronising when the source file changes")

	feedDeleteCmd.Flags().BoolVarP(
		&feedDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	feedCmd.AddCommand(feedListCmd)
	feedCmd.AddCommand(feedCreateCmd)
	feedCmd.AddCommand(feedViewCmd)
	feedCmd.AddCommand(feedUpdateCmd)
	feedCmd.AddCommand(feedDeleteCmd)
	rootCmd.AddCommand(feedCmd)
}

// resolveFeedID returns the feed id from args, falling back to the
// most recently created feed.
func resolveFeedID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if feedService != nil {
		if id := feedService.LastFeedID(); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no feed id given and no feed created yet", domain.ErrInvalidInput)
}

func runFeedList(cmd *cobra.Command, _ []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	feeds, err := feedService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list feeds: %w", err)
	}

	if len(feeds) == 0 {
		cmd.Println("No feeds.")
		cmd.Println("Create one with: threatfeed feed create")
		return nil
	}

	for i := range feeds {
		printFeed(cmd, &feeds[i])
		cmd.Println()
	}
	return nil
}

func runFeedCreate(cmd *cobra.Command, _ []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	feed, err := feedService.Create(
		cmd.Context(), domain.FeedType(feedCreateType), feedCreateTitle, feedCreateDescription)
	if err != nil {
		return fmt.Errorf("create feed: %w", err)
	}

	cmd.Printf("Created feed: %s\n", feed.ID)
	return nil
}

func runFeedView(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	id, err := resolveFeedID(args)
	if err != nil {
		return err
	}

	feed, err := feedService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get feed: %w", err)
	}
	printFeed(cmd, feed)

	if !feedViewDomains {
		return nil
	}
	if reconciler == nil {
		return errors.New("reconciler not configured")
	}

	cmd.Println()
	cmd.Println("  Domains:")
	domainsCh, errsCh := reconciler.StreamDomains(cmd.Context(), id)
	for d := range domainsCh {
		cmd.Printf("    %s\n", d)
	}
	if err := <-errsCh; err != nil {
		return fmt.Errorf("list domains: %w", err)
	}
	return nil
}

func runFeedUpdate(cmd *cobra.Command, args []string) error {
	if reconciler == nil {
		return errors.New("reconciler not configured")
	}
	if feedUpdateSource == "" {
		return fmt.Errorf("%w: --source is required", domain.ErrInvalidInput)
	}

	id, err := resolveFeedID(args)
	if err != nil {
		return err
	}

	src := source.ForTarget(feedUpdateSource)

	sync := func(ctx context.Context) error {
		result, err := reconciler.SyncFromSource(ctx, id, src)
		if err != nil {
			return err
		}
		printResult(cmd, "Synchronised", result)
		return nil
	}

	if !feedUpdateWatch {
		return sync(cmd.Context())
	}

	if strings.HasPrefix(feedUpdateSource, "http://") || strings.HasPrefix(feedUpdateSource, "https://") {
		return fmt.Errorf("%w: --watch only works with file sources", domain.ErrInvalidInput)
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", feedUpdateSource)
	err = source.Watch(cmd.Context(), feedUpdateSource, sync)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runFeedDelete(cmd *cobra.Command, args []string) error {
	if feedService == nil {
		return errors.New("feed service not configured")
	}

	id, err := resolveFeedID(args)
	if err != nil {
		return err
	}

	if !feedDeleteYes {
		cmd.Printf("Delete feed %s and all its domains? [y/N]: ", id)
		reader := bufio.NewReader(cmd.InOrStdin())
		input, _ := reader.ReadString('\n') //nolint:errcheck // CLI prompt, EOF means no
		if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := feedService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	cmd.Printf("Deleted feed: %s\n", id)
	return nil
}

// printFeed renders one feed's metadata.
func printFeed(cmd *cobra.Command, feed *domain.Feed) {
	cmd.Printf("  %s\n", feed.ID)
	cmd.Printf("    Title: %s\n", feed.Title)
	cmd.Printf("    Description: %s\n", feed.Description)
	cmd.Printf("    Type: %s\n", feed.Type)
	cmd.Printf("    Domains: %d\n", feed.DomainCount)
	if !feed.UpdatedAt.IsZero() {
		cmd.Printf("    Updated: %s\n", feed.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}
}
