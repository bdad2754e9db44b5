package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// printResult renders a bulk operation result. Every submitted domain
// is accounted for: the summary line states the counts, and each
// failure is listed with its cause so the user can fix the input.
func printResult(cmd *cobra.Command, verb string, result *domain.OperationResult) {
	total := len(result.Succeeded) + len(result.Failed)

	switch result.Outcome() {
	case domain.OutcomeCompleted:
		cmd.Printf("%s %d/%d domains.\n", verb, len(result.Succeeded), total)
	case domain.OutcomePartiallyCompleted:
		cmd.Printf("%s %d/%d domains (%d failed):\n", verb, len(result.Succeeded), total, len(result.Failed))
		printFailures(cmd, result.Failed)
	case domain.OutcomeFailed:
		cmd.Printf("%s 0/%d domains:\n", verb, total)
		printFailures(cmd, result.Failed)
	}
}

// printFailures lists failed domains in a stable order.
func printFailures(cmd *cobra.Command, failed map[domain.Domain]domain.ErrorKind) {
	names := make([]string, 0, len(failed))
	for d := range failed {
		names = append(names, string(d))
	}
	sort.Strings(names)

	for _, name := range names {
		cmd.Printf("  %s: %s\n", name, failureReason(failed[domain.Domain(name)]))
	}
}

func failureReason(kind domain.ErrorKind) string {
	switch kind {
	case domain.ErrorKindValidation:
		return "not a valid domain name"
	case domain.ErrorKindNotFound:
		return "not present in the feed"
	case domain.ErrorKindRemote:
		return "rejected by the service"
	default:
		return string(kind)
	}
}
