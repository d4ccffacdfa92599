package model

import "strings"

// trimCell normalizes a single CSV cell for comparisons.
func trimCell(cell string) string {
	return strings.TrimSpace(cell)
}

// HeaderSection represents a key-value style section after structuring.
// Rows are preserved with their raw cells so that layouts wider than plain
// key/value (for example lane-scoped settings rows) stay recoverable; the
// KeyValues projection narrows the section to a plain map where that is all
// a consumer needs.
type HeaderSection struct {
	// name is the section name as produced by raw parsing.
	name string
	// rows are the section rows with entirely-empty rows already dropped.
	rows [][]string
}

// NewHeaderSection create new HeaderSection. Rows without a single non-blank
// cell are dropped; all other rows are preserved verbatim.
func NewHeaderSection(name string, rows [][]string) HeaderSection {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if trimCell(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			dup := make([]string, len(row))
			copy(dup, row)
			kept = append(kept, dup)
		}
	}
	return HeaderSection{name: name, rows: kept}
}

// Name return section name.
func (s HeaderSection) Name() string {
	return s.name
}

// Rows return a copy of the section rows.
func (s HeaderSection) Rows() [][]string {
	return copyRows(s.rows)
}

// RowCount returns the number of rows.
func (s HeaderSection) RowCount() int {
	return len(s.rows)
}

// KeyValues projects the section onto a case-insensitive map. Only rows with
// exactly two non-blank cells contribute, the first as key and the second as
// value. Other rows (key-only rows, rows with a third meaningful cell) are
// ignored here and remain accessible via Rows. On duplicate keys the last
// row wins.
func (s HeaderSection) KeyValues() *CaseInsensitiveMap {
	kv := NewCaseInsensitiveMap()
	for _, row := range s.rows {
		key, value, ok := keyValueCells(row)
		if !ok {
			continue
		}
		kv.Set(key, value)
	}
	return kv
}

// keyValueCells reports whether row holds exactly two non-blank cells and
// returns them trimmed. Cell positions do not matter, so padded layouts like
// ("", "Key", "Value", "") still form a pair.
func keyValueCells(row []string) (string, string, bool) {
	first, second := "", ""
	count := 0
	for _, cell := range row {
		trimmed := trimCell(cell)
		if trimmed == "" {
			continue
		}
		count++
		switch count {
		case 1:
			first = trimmed
		case 2:
			second = trimmed
		default:
			return "", "", false
		}
	}
	if count != 2 {
		return "", "", false
	}
	return first, second, true
}

// Equal compare HeaderSection.
func (s HeaderSection) Equal(s2 HeaderSection) bool {
	if s.name != s2.name {
		return false
	}
	return rowsEqual(s.rows, s2.rows)
}

// DataSection represents the tabular section after structuring. The first
// row of the underlying raw section supplies the column headers; remaining
// rows are the records, kept verbatim.
type DataSection struct {
	// name is the section name as produced by raw parsing, "" if sectionless.
	name string
	// headers are the trimmed column headers with their original casing.
	headers []string
	// headerIndex maps a lookup header name to its column position. Keys are
	// folded or verbatim depending on the configured column-header case mode.
	headerIndex map[string]int
	// records are the data rows following the header row.
	records [][]string
}

// NewDataSection create new DataSection.
func NewDataSection(name string, headers []string, headerIndex map[string]int, records [][]string) DataSection {
	dupHeaders := make([]string, len(headers))
	copy(dupHeaders, headers)
	dupIndex := make(map[string]int, len(headerIndex))
	for k, v := range headerIndex {
		dupIndex[k] = v
	}
	return DataSection{
		name:        name,
		headers:     dupHeaders,
		headerIndex: dupIndex,
		records:     copyRows(records),
	}
}

// Name return section name.
func (s DataSection) Name() string {
	return s.name
}

// Headers return a copy of the column headers.
func (s DataSection) Headers() []string {
	dup := make([]string, len(s.headers))
	copy(dup, s.headers)
	return dup
}

// HeaderIndex return a copy of the header-to-column-position map.
func (s DataSection) HeaderIndex() map[string]int {
	dup := make(map[string]int, len(s.headerIndex))
	for k, v := range s.headerIndex {
		dup[k] = v
	}
	return dup
}

// Records return a copy of the data rows.
func (s DataSection) Records() [][]string {
	return copyRows(s.records)
}

// RecordCount returns the number of data rows.
func (s DataSection) RecordCount() int {
	return len(s.records)
}

// IsEmpty reports whether the section has neither headers nor records.
func (s DataSection) IsEmpty() bool {
	return len(s.headers) == 0 && len(s.records) == 0
}

// Equal compare DataSection.
func (s DataSection) Equal(s2 DataSection) bool {
	if s.name != s2.name {
		return false
	}
	if len(s.headers) != len(s2.headers) {
		return false
	}
	for i, h := range s.headers {
		if h != s2.headers[i] {
			return false
		}
	}
	return rowsEqual(s.records, s2.records)
}

// StructuredDocument represents a sheet after structural classification:
// zero or more key-value header sections and exactly one data section.
type StructuredDocument struct {
	// delimiter is the cell delimiter the file was parsed with.
	delimiter rune
	// sheetType records whether section markers were present.
	sheetType SheetType
	// headerSections are the key-value sections in file order.
	headerSections []HeaderSection
	// dataSection is the single tabular section, possibly empty.
	dataSection DataSection
}

// NewStructuredDocument create new StructuredDocument.
func NewStructuredDocument(delimiter rune, sheetType SheetType, headerSections []HeaderSection, dataSection DataSection) StructuredDocument {
	dup := make([]HeaderSection, len(headerSections))
	copy(dup, headerSections)
	return StructuredDocument{
		delimiter:      delimiter,
		sheetType:      sheetType,
		headerSections: dup,
		dataSection:    dataSection,
	}
}

// Delimiter returns the delimiter the document was parsed with.
func (d StructuredDocument) Delimiter() rune {
	return d.delimiter
}

// SheetType returns the detected sheet type.
func (d StructuredDocument) SheetType() SheetType {
	return d.sheetType
}

// HeaderSections returns the key-value sections in file order.
func (d StructuredDocument) HeaderSections() []HeaderSection {
	dup := make([]HeaderSection, len(d.headerSections))
	copy(dup, d.headerSections)
	return dup
}

// DataSection returns the single tabular section.
func (d StructuredDocument) DataSection() DataSection {
	return d.dataSection
}

// Equal compare StructuredDocument.
func (d StructuredDocument) Equal(d2 StructuredDocument) bool {
	if d.delimiter != d2.delimiter || d.sheetType != d2.sheetType {
		return false
	}
	if len(d.headerSections) != len(d2.headerSections) {
		return false
	}
	for i, section := range d.headerSections {
		if !section.Equal(d2.headerSections[i]) {
			return false
		}
	}
	return d.dataSection.Equal(d2.dataSection)
}
