// Package domain defines the core business entities for threat feed
// management.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Feed: A remote threat feed (named collection of malicious domains)
//   - Domain: A normalized hostname held by a feed
//   - Page: One bounded slice of a feed's domain list
//   - OperationResult: Per-domain outcome of a bulk mutation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
