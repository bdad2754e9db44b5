// Package source provides DomainSource implementations that read raw
// domain entries from local files and HTTP endpoints, plus a file
// watcher for continuous resynchronisation.
package source

import (
	"strings"

	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
)

// ForTarget builds a DomainSource from a user-supplied target string.
// Targets with an http or https scheme become URL sources; anything
// else is treated as a path on the local filesystem.
func ForTarget(target string) driven.DomainSource {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return NewURLSource(target)
	}
	return NewFileSource(target)
}

// splitEntries breaks raw feed content into individual entries.
// Newlines and commas both separate entries, so plain lists and
// single-line CSV exports parse the same way. Blank entries and
// comment lines are dropped; order is preserved.
func splitEntries(content string) []string {
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ','
	})

	entries := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.HasPrefix(f, "#") {
			continue
		}
		entries = append(entries, f)
	}
	return entries
}
