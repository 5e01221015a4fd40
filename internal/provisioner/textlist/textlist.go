// Package textlist parses the plain-text asset lists the provisioner is
// configured with.
package textlist

import "strings"

// Lines splits a newline-delimited list into entries. Entries are trimmed;
// blank lines and lines starting with '#' are dropped.
func Lines(s string) []string {
	var entries []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// PipeSeparated splits a pipe-delimited list into entries, trimming each and
// dropping empties.
func PipeSeparated(s string) []string {
	var entries []string
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entries = append(entries, part)
	}
	return entries
}
