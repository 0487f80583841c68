package core

import (
	"log/slog"
	"strings"
)

// ParseLine splits one line of comma-delimited text into fields.
//
// A double quote toggles the quoted state and "" inside quotes is a
// literal quote. Only commas inside quotes are part of a field. Fields
// are returned as written, without trimming.
func ParseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			current.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, current.String())
}

// splitLines trims the text and splits it on newlines, dropping the
// carriage return of CRLF files.
func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ParseDelimited parses text into rows of fields. Row 0 is the header.
//
// Text without at least a header and one data line yields nil and a
// warning; that is a valid empty result, not an error. Blank data lines
// are skipped.
func ParseDelimited(text string) [][]string {
	lines := splitLines(text)
	if len(lines) == 0 {
		slog.Warn("delimited text is empty")
		return nil
	}
	if len(lines) < 2 {
		slog.Warn("delimited text has fewer than 2 lines (header + data)", "lines", len(lines))
		return nil
	}

	rows := make([][]string, 0, len(lines))
	rows = append(rows, ParseLine(lines[0]))
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, ParseLine(line))
	}
	return rows
}

// ParseHeaders returns the header row of text, or nil for empty text.
func ParseHeaders(text string) []string {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}
	return ParseLine(lines[0])
}
