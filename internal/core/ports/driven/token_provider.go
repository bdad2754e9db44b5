package driven

import "context"

// TokenProvider supplies the bearer access token used to authenticate
// requests against the vendor API. The credential is process-wide
// read-once state: providers load it at startup and hold it for the
// process lifetime.
type TokenProvider interface {
	// GetToken returns the access token, fetching it on first use.
	GetToken(ctx context.Context) (string, error)
}
