package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

func TestDomainCmd_Use(t *testing.T) {
	assert.Equal(t, "domain", domainCmd.Use)
	assert.Equal(t, "add [feed-id] <domain>...", domainAddCmd.Use)
	assert.Equal(t, "remove [feed-id] <domain>...", domainRemoveCmd.Use)
	assert.Equal(t, "list [feed-id]", domainListCmd.Use)
}

func TestDomainAdd(t *testing.T) {
	rec := &mockReconciler{}
	cleanup := setupCLITest(&mockFeedService{}, rec)
	defer cleanup()

	out, err := execute(t, "domain", "add", "fd-1", "evil.example.com", "phish.example.org")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"evil.example.com", "phish.example.org"}}, rec.addCalls)
	assert.Contains(t, out, "Added 2/2 domains.")
}

func TestDomainAdd_UsesLastFeedID(t *testing.T) {
	rec := &mockReconciler{}
	cleanup := setupCLITest(&mockFeedService{lastID: "fd-last"}, rec)
	defer cleanup()

	_, err := execute(t, "domain", "add", "evil.example.com")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"evil.example.com"}}, rec.addCalls)
}

func TestDomainAdd_NoFeedID(t *testing.T) {
	cleanup := setupCLITest(&mockFeedService{}, &mockReconciler{})
	defer cleanup()

	_, err := execute(t, "domain", "add", "evil.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

func TestDomainAdd_PartialFailure(t *testing.T) {
	result := domain.NewOperationResult()
	result.Succeed("evil.example.com")
	result.Fail("not a domain", domain.ErrorKindValidation)
	rec := &mockReconciler{result: result}
	cleanup := setupCLITest(&mockFeedService{}, rec)
	defer cleanup()

	out, err := execute(t, "domain", "add", "fd-1", "evil.example.com", "not a domain")
	require.NoError(t, err, "partial failure is reported, not returned")
	assert.Contains(t, out, "Added 1/2 domains (1 failed):")
	assert.Contains(t, out, "not a domain: not a valid domain name")
}

func TestDomainRemove(t *testing.T) {
	result := domain.NewOperationResult()
	result.Fail("ghost.example.com", domain.ErrorKindNotFound)
	rec := &mockReconciler{result: result}
	cleanup := setupCLITest(&mockFeedService{}, rec)
	defer cleanup()

	out, err := execute(t, "domain", "remove", "fd-1", "ghost.example.com")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ghost.example.com"}}, rec.rmCalls)
	assert.Contains(t, out, "ghost.example.com: not present in the feed")
}

func TestDomainList(t *testing.T) {
	rec := &mockReconciler{domains: []domain.Domain{"a.example.com", "b.example.com"}}
	cleanup := setupCLITest(&mockFeedService{}, rec)
	defer cleanup()

	out, err := execute(t, "domain", "list", "fd-1")
	require.NoError(t, err)
	assert.Contains(t, out, "a.example.com\nb.example.com\n")
}

func TestDomainList_Empty(t *testing.T) {
	cleanup := setupCLITest(&mockFeedService{}, &mockReconciler{})
	defer cleanup()

	out, err := execute(t, "domain", "list", "fd-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Feed is empty.")
}

func TestDomainList_StreamError(t *testing.T) {
	rec := &mockReconciler{streamErr: errBoom}
	cleanup := setupCLITest(&mockFeedService{}, rec)
	defer cleanup()

	_, err := execute(t, "domain", "list", "fd-1")
	assert.ErrorIs(t, err, errBoom)
}
