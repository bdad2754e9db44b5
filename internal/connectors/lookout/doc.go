// Package lookout implements the remote threat-feed API client.
//
// The client owns all network I/O against the vendor: bearer
// authentication, JSON encoding, page-token pagination, rate limiting
// and bounded retry of transient failures. Callers above it work with
// domain types and never construct requests.
package lookout
