package model

// SheetType represents the overall shape detected during raw parsing.
type SheetType int

const (
	// SheetTypeSectioned is a sheet with at least one [Name] section marker.
	SheetTypeSectioned SheetType = iota
	// SheetTypeSectionless is a sheet without section markers, parsed as a
	// single unnamed section.
	SheetTypeSectionless
)

// String returns the string representation of SheetType.
func (s SheetType) String() string {
	switch s {
	case SheetTypeSectioned:
		return "sectioned"
	case SheetTypeSectionless:
		return "sectionless"
	default:
		return "sectioned"
	}
}

// copyRows returns a deep copy of rows.
func copyRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	dup := make([][]string, len(rows))
	for i, row := range rows {
		dup[i] = make([]string, len(row))
		copy(dup[i], row)
	}
	return dup
}

// rowsEqual compare two row slices cell by cell.
func rowsEqual(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, row := range a {
		if len(row) != len(b[i]) {
			return false
		}
		for j, cell := range row {
			if cell != b[i][j] {
				return false
			}
		}
	}
	return true
}

// RawSection represents one section of a sectioned CSV file after raw
// parsing. The name is empty for the synthetic section of a sectionless
// sheet. Column-consistency policies have already been applied, so rows
// reflect any padding performed during parsing.
type RawSection struct {
	// name is the section name after any configured case folding, "" if
	// sectionless.
	name string
	// rows are the data rows of the section.
	rows [][]string
	// columnCount is the widest row in the section, 0 if there are no rows.
	columnCount int
}

// NewRawSection create new RawSection. The column count is derived from the
// widest row.
func NewRawSection(name string, rows [][]string) RawSection {
	columnCount := 0
	for _, row := range rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
	}
	return RawSection{
		name:        name,
		rows:        copyRows(rows),
		columnCount: columnCount,
	}
}

// Name return section name.
func (s RawSection) Name() string {
	return s.name
}

// Rows return a copy of the section's data rows.
func (s RawSection) Rows() [][]string {
	return copyRows(s.rows)
}

// RowCount returns the number of data rows.
func (s RawSection) RowCount() int {
	return len(s.rows)
}

// ColumnCount returns the widest row width in the section.
func (s RawSection) ColumnCount() int {
	return s.columnCount
}

// IsEmpty reports whether the section has no rows with any non-blank cell.
func (s RawSection) IsEmpty() bool {
	for _, row := range s.rows {
		for _, cell := range row {
			if trimCell(cell) != "" {
				return false
			}
		}
	}
	return true
}

// Equal compare RawSection.
func (s RawSection) Equal(s2 RawSection) bool {
	if s.name != s2.name || s.columnCount != s2.columnCount {
		return false
	}
	return rowsEqual(s.rows, s2.rows)
}

// RawDocument represents a fully raw-parsed sectioned CSV file.
type RawDocument struct {
	// delimiter is the cell delimiter the file was parsed with.
	delimiter rune
	// sheetType records whether section markers were present.
	sheetType SheetType
	// sections are the parsed sections in file order. A sectionless sheet
	// has a single section with an empty name.
	sections []RawSection
}

// NewRawDocument create new RawDocument.
func NewRawDocument(delimiter rune, sheetType SheetType, sections []RawSection) RawDocument {
	dup := make([]RawSection, len(sections))
	copy(dup, sections)
	return RawDocument{
		delimiter: delimiter,
		sheetType: sheetType,
		sections:  dup,
	}
}

// Delimiter returns the delimiter the document was parsed with.
func (d RawDocument) Delimiter() rune {
	return d.delimiter
}

// SheetType returns the detected sheet type.
func (d RawDocument) SheetType() SheetType {
	return d.sheetType
}

// Sections returns the parsed sections in file order.
func (d RawDocument) Sections() []RawSection {
	dup := make([]RawSection, len(d.sections))
	copy(dup, d.sections)
	return dup
}

// SectionCount returns the number of sections.
func (d RawDocument) SectionCount() int {
	return len(d.sections)
}

// Equal compare RawDocument.
func (d RawDocument) Equal(d2 RawDocument) bool {
	if d.delimiter != d2.delimiter || d.sheetType != d2.sheetType {
		return false
	}
	if len(d.sections) != len(d2.sections) {
		return false
	}
	for i, section := range d.sections {
		if !section.Equal(d2.sections[i]) {
			return false
		}
	}
	return true
}
