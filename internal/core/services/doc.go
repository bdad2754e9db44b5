// Package services implements the feed reconciliation engine: the
// driving ports composed from FeedClient primitives, with pagination
// exhaustion and partial-failure aggregation handled here so the
// presentation layer sees one outcome per intent.
package services
