// Package tabular provides a permissive parser for delimited text rows.
package tabular

import "strings"

// ParseLine splits one comma-delimited line into trimmed fields.
func ParseLine(line string) []string {
	return ParseLineDelim(line, ',')
}

// ParseLineDelim splits one line of delimited text into trimmed fields.
// Fields may be quoted with '"'; inside quotes the delimiter is literal and a
// doubled quote represents one literal quote character. Malformed quoting is
// not an error: the in-quotes flag simply toggles and parsing continues, so an
// unterminated quote consumes the rest of the line into one field. Real-world
// exports are messy and this mirrors how they are actually written.
func ParseLineDelim(line string, delim rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
