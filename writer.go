package samplesheet

import "strings"

// appendRow writes cells joined by the delimiter plus a line feed. Cells
// containing the delimiter, a quote, or a line break are quoted with doubled
// embedded quotes.
func appendRow(sb *strings.Builder, cells []string, delimiter rune) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteRune(delimiter)
		}
		sb.WriteString(escapeCell(cell, delimiter))
	}
	sb.WriteByte('\n')
}

// escapeCell quotes a cell value when it would otherwise break the row
// structure.
func escapeCell(value string, delimiter rune) string {
	if !strings.ContainsAny(value, string(delimiter)+"\"\n\r") {
		return value
	}
	return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
}

// padCells right-pads cells with empty strings up to the target width.
func padCells(cells []string, width int) []string {
	if len(cells) >= width {
		return cells
	}
	padded := make([]string, width)
	copy(padded, cells)
	return padded
}
