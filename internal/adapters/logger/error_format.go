package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// messager matches errors that report their own message without the cause chain.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of err. A standard error ends the walk
// with its full text. Links without a message of their own only contribute metadata.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		var meta map[string]any
		if md, ok := current.(metadataer); ok {
			meta = md.Metadata()
		}

		switch {
		case m.Message() != "":
			entries = append(entries, ErrorEntry{Message: m.Message(), Metadata: meta})
		case len(entries) > 0 && len(meta) > 0:
			last := &entries[len(entries)-1]
			if last.Metadata == nil {
				last.Metadata = make(map[string]any, len(meta))
			}
			maps.Copy(last.Metadata, meta)
		}

		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the entries as a headline followed by a "Caused by" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = append(lines, formatMetadata("       ", entry.Metadata)...)
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = append(lines, formatMetadata("      ", entry.Metadata)...)
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(indent string, meta map[string]any) []string {
	lines := make([]string, 0, len(meta))
	for _, key := range slices.Sorted(maps.Keys(meta)) {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, meta[key]))
	}
	return lines
}
