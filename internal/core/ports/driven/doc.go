// Package driven defines the outbound ports of the hexagonal core.
//
// Driven ports are interfaces the core depends on and adapters
// implement: the remote feed API client, the credential token provider,
// external domain sources and the configuration store.
package driven
