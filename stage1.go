package samplesheet

import (
	"strings"

	"github.com/nao1215/samplesheet/domain/model"
)

// rawSectionData accumulates one section's rows during the sectioning walk,
// before column-consistency policies run and model types are built.
type rawSectionData struct {
	name string
	rows [][]string
}

// parseRawDocument splits sample sheet text into raw sections. The delimiter
// is sniffed unless pinned by the configuration, rows are tokenized with
// standard CSV quoting, and [Name] marker rows open new sections. Comment
// rows are dropped, as are all-empty rows when the configuration says so.
// The configured column-consistency policy runs per section before the
// document is assembled.
func parseRawDocument(text string, cfg ParserConfiguration) (model.RawDocument, error) {
	delimiter := sniffDelimiter(text, cfg)
	return rawDocumentFromRows(tokenizeRows(text, delimiter), delimiter, cfg)
}

// rawDocumentFromRows runs sectioning and column consistency over already
// tokenized rows. Spreadsheet inputs enter the pipeline here, bypassing
// delimiter sniffing and text tokenization.
func rawDocumentFromRows(rows [][]string, delimiter rune, cfg ParserConfiguration) (model.RawDocument, error) {
	sections, err := splitSections(rows, cfg)
	if err != nil {
		return model.RawDocument{}, err
	}

	sheetType := model.SheetTypeSectionless
	if len(sections) > 1 || (len(sections) == 1 && sections[0].name != "") {
		sheetType = model.SheetTypeSectioned
	}

	if err := applyColumnConsistency(sections, cfg); err != nil {
		return model.RawDocument{}, err
	}

	rawSections := make([]model.RawSection, 0, len(sections))
	for _, section := range sections {
		rawSections = append(rawSections, model.NewRawSection(section.name, section.rows))
	}
	return model.NewRawDocument(delimiter, sheetType, rawSections), nil
}

// sniffDelimiter picks the cell delimiter. A pinned configuration wins
// outright. Otherwise the candidate with the strictly highest count in the
// full text wins; on a tie or no occurrences the count runs again with
// marker, comment, and blank lines stripped, and if that is still ambiguous
// the first candidate is the fallback.
func sniffDelimiter(text string, cfg ParserConfiguration) rune {
	candidates := cfg.candidateDelimiters()
	if len(candidates) == 1 {
		return candidates[0]
	}

	if delimiter, ok := detectDelimiter(text, candidates); ok {
		return delimiter
	}
	if stripped := stripNonDataLines(text, cfg); stripped != "" {
		if delimiter, ok := detectDelimiter(stripped, candidates); ok {
			return delimiter
		}
	}

	fallback := candidates[0]
	cfg.logger().Debug("falling back to default delimiter", "delimiter", string(fallback))
	return fallback
}

// detectDelimiter returns the candidate that occurs strictly more often than
// every other candidate in text.
func detectDelimiter(text string, candidates []rune) (rune, bool) {
	best := rune(0)
	bestCount := 0
	tied := false
	for _, candidate := range candidates {
		count := strings.Count(text, string(candidate))
		switch {
		case count > bestCount:
			best = candidate
			bestCount = count
			tied = false
		case count == bestCount && count > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return 0, false
	}
	return best, true
}

// stripNonDataLines removes section marker, comment, and blank lines so the
// sniffer can retry on data rows alone.
func stripNonDataLines(text string, cfg ParserConfiguration) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			continue
		}
		if hasAnyPrefix(trimmed, cfg.CommentPrefixes) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// tokenizeRows splits text into rows of cells using standard CSV quoting: a
// double quote at the start of a cell opens a quoted region where delimiters
// and line breaks are literal and a doubled quote escapes one quote. A blank
// line becomes a row with zero cells.
func tokenizeRows(text string, delimiter rune) [][]string {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false
	cellStarted := false
	rowStarted := false

	flushRow := func() {
		if rowStarted || cellStarted {
			row = append(row, cell.String())
			rows = append(rows, row)
		} else {
			rows = append(rows, []string{})
		}
		row = nil
		cell.Reset()
		cellStarted = false
		rowStarted = false
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inQuotes {
			if r != '"' {
				cell.WriteRune(r)
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '"' {
				cell.WriteRune('"')
				i++
				continue
			}
			inQuotes = false
			continue
		}
		switch {
		case r == delimiter:
			row = append(row, cell.String())
			cell.Reset()
			cellStarted = false
			rowStarted = true
		case r == '\n':
			flushRow()
		case r == '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			flushRow()
		case r == '"' && !cellStarted:
			inQuotes = true
			cellStarted = true
		default:
			cell.WriteRune(r)
			cellStarted = true
		}
	}
	if rowStarted || cellStarted {
		row = append(row, cell.String())
		rows = append(rows, row)
	}
	return rows
}

// splitSections walks tokenized rows and groups them into sections at [Name]
// marker rows. Rows before the first marker collect into an unnamed section
// unless the configuration requires section headers, in which case they fail
// the parse. A document without any rows yields one empty unnamed section.
func splitSections(rows [][]string, cfg ParserConfiguration) ([]*rawSectionData, error) {
	var sections []*rawSectionData
	current := &rawSectionData{}
	markerSeen := false

	for _, row := range rows {
		if cfg.IgnoreEmptyLines && isEmptyRow(row) {
			continue
		}
		if isCommentRow(row, cfg.CommentPrefixes) {
			continue
		}
		if name, ok := sectionMarker(row, cfg.SectionHeaderCase); ok {
			if current.name != "" || len(current.rows) > 0 {
				sections = append(sections, current)
			}
			current = &rawSectionData{name: name}
			markerSeen = true
			continue
		}
		if cfg.RequireSectionHeaders && !markerSeen && !isEmptyRow(row) {
			return nil, &FormatError{
				RowIndex: len(current.rows) + 1,
				Reason:   "data row before any section header",
			}
		}
		current.rows = append(current.rows, row)
	}
	if current.name != "" || len(current.rows) > 0 {
		sections = append(sections, current)
	}
	if len(sections) == 0 {
		sections = append(sections, &rawSectionData{})
	}
	return sections, nil
}

// isEmptyRow reports whether every cell of row is blank. A zero-cell row is
// empty.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isCommentRow reports whether the row's first cell starts with one of the
// configured comment prefixes.
func isCommentRow(row []string, prefixes []string) bool {
	if len(row) == 0 {
		return false
	}
	return hasAnyPrefix(strings.TrimSpace(row[0]), prefixes)
}

// sectionMarker reports whether the row is a [Name] section marker and
// returns the enclosed name folded per mode. Cells after the first are
// ignored, matching sheets that pad marker lines with trailing delimiters.
func sectionMarker(row []string, mode CaseMode) (string, bool) {
	if len(row) == 0 {
		return "", false
	}
	first := strings.TrimSpace(row[0])
	if first == "" || !strings.HasPrefix(first, "[") || !strings.HasSuffix(first, "]") {
		return "", false
	}
	return mode.Fold(first[1 : len(first)-1]), true
}

// maxRowWidth returns the widest row length, 0 for no rows.
func maxRowWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// applyColumnConsistency enforces the configured width policy. Strict modes
// return a *FormatError on the first violation; pad modes grow short rows in
// place. Wholly empty rows are exempt from checks and padding regardless of
// the ignore-empty-lines setting.
func applyColumnConsistency(sections []*rawSectionData, cfg ParserConfiguration) error {
	switch cfg.ColumnConsistency {
	case ColumnConsistencyLoose:
		return nil
	case ColumnConsistencyStrictGlobal:
		expected := maxRowWidth(sections[0].rows)
		for _, section := range sections[1:] {
			if actual := maxRowWidth(section.rows); actual != expected {
				return &FormatError{
					SectionName:   section.name,
					ExpectedWidth: expected,
					ActualWidth:   actual,
				}
			}
		}
		return nil
	case ColumnConsistencyPadWithWarning, ColumnConsistencyPadSilently:
		for _, section := range sections {
			padSection(section, cfg)
		}
		return nil
	default: // ColumnConsistencyStrictPerSection
		for _, section := range sections {
			if err := checkSectionWidths(section); err != nil {
				return err
			}
		}
		return nil
	}
}

// checkSectionWidths verifies every non-empty row matches the width of the
// section's first non-empty row.
func checkSectionWidths(section *rawSectionData) error {
	expected := -1
	for _, row := range section.rows {
		if !isEmptyRow(row) {
			expected = len(row)
			break
		}
	}
	if expected < 0 {
		return nil
	}
	for i, row := range section.rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) != expected {
			return &FormatError{
				SectionName:   section.name,
				RowIndex:      i + 1,
				ExpectedWidth: expected,
				ActualWidth:   len(row),
			}
		}
	}
	return nil
}

// padSection right-pads short non-empty rows to the section's widest row.
func padSection(section *rawSectionData, cfg ParserConfiguration) {
	width := maxRowWidth(section.rows)
	padded := 0
	for i, row := range section.rows {
		if len(row) >= width || isEmptyRow(row) {
			continue
		}
		grown := make([]string, width)
		copy(grown, row)
		section.rows[i] = grown
		padded++
	}
	if padded > 0 && cfg.ColumnConsistency == ColumnConsistencyPadWithWarning {
		cfg.logger().Warn("padded short rows to section width",
			"section", section.name, "rows", padded)
	}
}
