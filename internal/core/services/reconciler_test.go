package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

func TestReconciler_SyncFromSource(t *testing.T) {
	client := newMockFeedClient()
	r := NewReconciler(client)

	src := &stubSource{entries: []string{
		"evil.example.com",
		"HTTPS://Phish.Example.ORG/login",
		"not a domain",
		"malware.test",
		"c2.example.net:8443",
		"tracker.example.io",
	}}

	result, err := r.SyncFromSource(context.Background(), "feed-1", src)
	require.NoError(t, err)

	require.Len(t, client.replaceCalls, 1, "one wholesale replace call")
	assert.Equal(t, []domain.Domain{
		"evil.example.com",
		"phish.example.org",
		"malware.test",
		"c2.example.net",
		"tracker.example.io",
	}, client.replaceCalls[0])

	assert.Len(t, result.Succeeded, 5)
	assert.Equal(t, domain.ErrorKindValidation, result.Failed["not a domain"])
	assert.Equal(t, domain.OutcomePartiallyCompleted, result.Outcome())
}

func TestReconciler_SyncFromSourceAllInvalid(t *testing.T) {
	client := newMockFeedClient()
	r := NewReconciler(client)

	src := &stubSource{entries: []string{"***", "bad entry", ""}}

	result, err := r.SyncFromSource(context.Background(), "feed-1", src)
	require.NoError(t, err)

	assert.Empty(t, client.replaceCalls, "no remote call when nothing validates")
	assert.Empty(t, result.Succeeded)
	assert.Len(t, result.Failed, 3)
	assert.Equal(t, domain.OutcomeFailed, result.Outcome())
}

func TestReconciler_SyncFromSourceFetchError(t *testing.T) {
	client := newMockFeedClient()
	r := NewReconciler(client)

	src := &stubSource{err: errors.New("connection refused")}

	_, err := r.SyncFromSource(context.Background(), "feed-1", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stub-source")
	assert.Empty(t, client.replaceCalls)
}

func TestReconciler_SyncFromSourceNilSource(t *testing.T) {
	r := NewReconciler(newMockFeedClient())

	_, err := r.SyncFromSource(context.Background(), "feed-1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconciler_AddDomainsDeduplicates(t *testing.T) {
	client := newMockFeedClient()
	r := NewReconciler(client)

	result, err := r.AddDomains(context.Background(), "feed-1", []string{
		"EXAMPLE.com",
		"example.com",
		"https://example.com/path",
	})
	require.NoError(t, err)

	require.Len(t, client.addCalls, 1)
	assert.Equal(t, []domain.Domain{"example.com"}, client.addCalls[0])
	assert.Equal(t, []domain.Domain{"example.com"}, result.Succeeded)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome())
}

func TestReconciler_AddDomainsMergesRemoteFailures(t *testing.T) {
	client := newMockFeedClient()
	remote := domain.NewOperationResult()
	remote.Succeed("good.example.com")
	remote.Fail("rejected.example.com", domain.ErrorKindRemote)
	client.addResult = remote

	r := NewReconciler(client)

	result, err := r.AddDomains(context.Background(), "feed-1", []string{
		"good.example.com",
		"rejected.example.com",
		"!!invalid!!",
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Domain{"good.example.com"}, result.Succeeded)
	assert.Equal(t, domain.ErrorKindRemote, result.Failed["rejected.example.com"])
	assert.Equal(t, domain.ErrorKindValidation, result.Failed["!!invalid!!"])
}

func TestReconciler_RemoveDomains(t *testing.T) {
	client := newMockFeedClient()
	remote := domain.NewOperationResult()
	remote.Succeed("gone.example.com")
	remote.Fail("missing.example.com", domain.ErrorKindNotFound)
	client.removeResult = remote

	r := NewReconciler(client)

	result, err := r.RemoveDomains(context.Background(), "feed-1", []string{
		"gone.example.com",
		"missing.example.com",
	})
	require.NoError(t, err)

	require.Len(t, client.removeCalls, 1)
	assert.Equal(t, domain.ErrorKindNotFound, result.Failed["missing.example.com"])
	assert.Equal(t, domain.OutcomePartiallyCompleted, result.Outcome())
}

func TestReconciler_DispatchClientErrorPropagates(t *testing.T) {
	client := newMockFeedClient()
	client.addErr = errors.New("boom")
	r := NewReconciler(client)

	_, err := r.AddDomains(context.Background(), "feed-1", []string{"example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestReconciler_DispatchEmptyFeedID(t *testing.T) {
	r := NewReconciler(newMockFeedClient())

	_, err := r.AddDomains(context.Background(), "", []string{"example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconciler_NilClient(t *testing.T) {
	r := NewReconciler(nil)

	_, err := r.AddDomains(context.Background(), "feed-1", []string{"example.com"})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, err = r.SyncFromSource(context.Background(), "feed-1", &stubSource{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestReconciler_AllDomainsPagination(t *testing.T) {
	client := newMockFeedClient()
	client.pages[""] = &domain.Page{
		Domains:       []domain.Domain{"a.example.com", "b.example.com"},
		NextPageToken: "p2",
	}
	client.pages["p2"] = &domain.Page{
		Domains:       []domain.Domain{"c.example.com", "d.example.com"},
		NextPageToken: "p3",
	}
	client.pages["p3"] = &domain.Page{
		Domains: []domain.Domain{"e.example.com"},
	}

	r := NewReconciler(client)

	all, err := r.AllDomains(context.Background(), "feed-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"", "p2", "p3"}, client.listDomainCalls, "pages fetched in order")
	assert.Equal(t, []domain.Domain{
		"a.example.com",
		"b.example.com",
		"c.example.com",
		"d.example.com",
		"e.example.com",
	}, all)
}

func TestReconciler_AllDomainsRestartsFromFirstPage(t *testing.T) {
	client := newMockFeedClient()
	client.pages[""] = &domain.Page{Domains: []domain.Domain{"a.example.com"}}

	r := NewReconciler(client)

	for i := 0; i < 2; i++ {
		all, err := r.AllDomains(context.Background(), "feed-1")
		require.NoError(t, err)
		assert.Equal(t, []domain.Domain{"a.example.com"}, all)
	}
	assert.Equal(t, []string{"", ""}, client.listDomainCalls)
}

func TestReconciler_AllDomainsPageError(t *testing.T) {
	client := newMockFeedClient()
	client.pages[""] = &domain.Page{
		Domains:       []domain.Domain{"a.example.com"},
		NextPageToken: "vanished",
	}

	r := NewReconciler(client)

	_, err := r.AllDomains(context.Background(), "feed-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReconciler_StreamDomainsCancel(t *testing.T) {
	client := newMockFeedClient()
	client.pages[""] = &domain.Page{
		Domains: []domain.Domain{"a.example.com", "b.example.com", "c.example.com"},
	}

	r := NewReconciler(client)

	ctx, cancel := context.WithCancel(context.Background())
	domainsCh, errsCh := r.StreamDomains(ctx, "feed-1")

	// Take one domain, then cancel without draining; the producer can
	// only exit through the cancellation path.
	<-domainsCh
	cancel()

	err := <-errsCh
	assert.ErrorIs(t, err, context.Canceled)
}
