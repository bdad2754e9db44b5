// Package driving defines the inbound ports of the hexagonal core:
// the interfaces the CLI and TUI call to manage feeds and reconcile
// domain sets. Presentation layers depend only on these ports.
package driving
