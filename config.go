package samplesheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter represents the cell delimiter of a sample sheet
type Delimiter int

const (
	// DelimiterAuto sniffs the delimiter from the document text
	DelimiterAuto Delimiter = iota
	// DelimiterComma represents comma-separated cells
	DelimiterComma
	// DelimiterTab represents tab-separated cells
	DelimiterTab
	// DelimiterSemicolon represents semicolon-separated cells
	DelimiterSemicolon
)

// String returns the string representation of Delimiter
func (d Delimiter) String() string {
	switch d {
	case DelimiterComma:
		return "comma"
	case DelimiterTab:
		return "tab"
	case DelimiterSemicolon:
		return "semicolon"
	default:
		return "auto"
	}
}

// Rune returns the delimiter character, or 0 for DelimiterAuto.
func (d Delimiter) Rune() rune {
	switch d {
	case DelimiterComma:
		return ','
	case DelimiterTab:
		return '\t'
	case DelimiterSemicolon:
		return ';'
	default:
		return 0
	}
}

func parseDelimiter(s string) (Delimiter, error) {
	switch s {
	case "auto":
		return DelimiterAuto, nil
	case "comma":
		return DelimiterComma, nil
	case "tab":
		return DelimiterTab, nil
	case "semicolon":
		return DelimiterSemicolon, nil
	default:
		return DelimiterAuto, fmt.Errorf("samplesheet: unknown delimiter %q", s)
	}
}

// CaseMode represents how names are folded before comparison
type CaseMode int

const (
	// CaseInsensitive folds names to lowercase before comparison
	CaseInsensitive CaseMode = iota
	// CaseSensitive compares names exactly as written
	CaseSensitive
)

// String returns the string representation of CaseMode
func (m CaseMode) String() string {
	switch m {
	case CaseSensitive:
		return "sensitive"
	default:
		return "insensitive"
	}
}

// Fold normalizes s according to the mode.
func (m CaseMode) Fold(s string) string {
	if m == CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func parseCaseMode(s string) (CaseMode, error) {
	switch s {
	case "insensitive":
		return CaseInsensitive, nil
	case "sensitive":
		return CaseSensitive, nil
	default:
		return CaseInsensitive, fmt.Errorf("samplesheet: unknown case mode %q", s)
	}
}

// ColumnConsistency represents the width policy applied to each section's rows
type ColumnConsistency int

const (
	// ColumnConsistencyStrictPerSection requires every non-empty row in a
	// section to match the width of the section's first non-empty row
	ColumnConsistencyStrictPerSection ColumnConsistency = iota
	// ColumnConsistencyStrictGlobal requires every section's column count to
	// match the first section's column count
	ColumnConsistencyStrictGlobal
	// ColumnConsistencyLoose performs no width checks
	ColumnConsistencyLoose
	// ColumnConsistencyPadWithWarning right-pads short rows to the section
	// width and logs one warning per padded section
	ColumnConsistencyPadWithWarning
	// ColumnConsistencyPadSilently right-pads short rows without logging
	ColumnConsistencyPadSilently
)

// String returns the string representation of ColumnConsistency
func (c ColumnConsistency) String() string {
	switch c {
	case ColumnConsistencyStrictGlobal:
		return "strictGlobal"
	case ColumnConsistencyLoose:
		return "loose"
	case ColumnConsistencyPadWithWarning:
		return "padWithWarning"
	case ColumnConsistencyPadSilently:
		return "padSilently"
	default:
		return "strictPerSection"
	}
}

func parseColumnConsistency(s string) (ColumnConsistency, error) {
	switch s {
	case "strictPerSection":
		return ColumnConsistencyStrictPerSection, nil
	case "strictGlobal":
		return ColumnConsistencyStrictGlobal, nil
	case "loose":
		return ColumnConsistencyLoose, nil
	case "padWithWarning":
		return ColumnConsistencyPadWithWarning, nil
	case "padSilently":
		return ColumnConsistencyPadSilently, nil
	default:
		return ColumnConsistencyStrictPerSection, fmt.Errorf("samplesheet: unknown column consistency %q", s)
	}
}

// ParserConfiguration controls how sample sheet text is sectioned and bound.
//
// Example:
//
//	cfg := NewParserConfiguration().
//		WithDelimiter(DelimiterTab).
//		WithColumnConsistency(ColumnConsistencyPadWithWarning)
//
//	sheet, err := ParseAviti(data, cfg)
type ParserConfiguration struct {
	// Delimiter pins the cell delimiter, or sniffs it when DelimiterAuto
	Delimiter Delimiter
	// RequireSectionHeaders rejects data rows that appear before any
	// [Section] header instead of collecting them into an unnamed section
	RequireSectionHeaders bool
	// IgnoreEmptyLines drops rows whose cells are all empty
	IgnoreEmptyLines bool
	// CommentPrefixes lists prefixes that mark a row as a comment
	CommentPrefixes []string
	// SectionHeaderCase folds section names for comparison
	SectionHeaderCase CaseMode
	// ColumnHeaderCase folds column header names for comparison
	ColumnHeaderCase CaseMode
	// KeyCase folds key-value keys for comparison
	KeyCase CaseMode
	// ColumnConsistency selects the per-section width policy
	ColumnConsistency ColumnConsistency
	// Logger receives warnings for soft conditions; nil means slog.Default()
	Logger *slog.Logger
}

// NewParserConfiguration creates a configuration with default settings:
// delimiter sniffing, empty lines ignored, "#" comments, case-insensitive
// name folding, and the strict per-section width policy.
func NewParserConfiguration() ParserConfiguration {
	return ParserConfiguration{
		Delimiter:             DelimiterAuto,
		RequireSectionHeaders: false,
		IgnoreEmptyLines:      true,
		CommentPrefixes:       []string{"#"},
		SectionHeaderCase:     CaseInsensitive,
		ColumnHeaderCase:      CaseInsensitive,
		KeyCase:               CaseInsensitive,
		ColumnConsistency:     ColumnConsistencyStrictPerSection,
	}
}

// WithDelimiter pins the cell delimiter.
func (c ParserConfiguration) WithDelimiter(delimiter Delimiter) ParserConfiguration {
	c.Delimiter = delimiter
	return c
}

// WithRequireSectionHeaders sets whether data rows may appear before the
// first [Section] header.
func (c ParserConfiguration) WithRequireSectionHeaders(require bool) ParserConfiguration {
	c.RequireSectionHeaders = require
	return c
}

// WithIgnoreEmptyLines sets whether all-empty rows are dropped.
func (c ParserConfiguration) WithIgnoreEmptyLines(ignore bool) ParserConfiguration {
	c.IgnoreEmptyLines = ignore
	return c
}

// WithCommentPrefixes replaces the comment prefixes.
func (c ParserConfiguration) WithCommentPrefixes(prefixes ...string) ParserConfiguration {
	c.CommentPrefixes = append([]string(nil), prefixes...)
	return c
}

// WithSectionHeaderCase sets the fold mode for section names.
func (c ParserConfiguration) WithSectionHeaderCase(mode CaseMode) ParserConfiguration {
	c.SectionHeaderCase = mode
	return c
}

// WithColumnHeaderCase sets the fold mode for column header names.
func (c ParserConfiguration) WithColumnHeaderCase(mode CaseMode) ParserConfiguration {
	c.ColumnHeaderCase = mode
	return c
}

// WithKeyCase sets the fold mode for key-value keys.
func (c ParserConfiguration) WithKeyCase(mode CaseMode) ParserConfiguration {
	c.KeyCase = mode
	return c
}

// WithColumnConsistency sets the per-section width policy.
func (c ParserConfiguration) WithColumnConsistency(policy ColumnConsistency) ParserConfiguration {
	c.ColumnConsistency = policy
	return c
}

// WithLogger sets the logger for soft-condition warnings.
func (c ParserConfiguration) WithLogger(logger *slog.Logger) ParserConfiguration {
	c.Logger = logger
	return c
}

// logger returns the configured logger, falling back to slog.Default().
func (c ParserConfiguration) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// candidateDelimiters returns the delimiters the sniffer may choose from.
func (c ParserConfiguration) candidateDelimiters() []rune {
	if r := c.Delimiter.Rune(); r != 0 {
		return []rune{r}
	}
	return []rune{',', '\t', ';'}
}

// WriterConfiguration controls how a sample sheet model is rendered to text.
type WriterConfiguration struct {
	// Delimiter separates cells; DelimiterAuto falls back to comma
	Delimiter Delimiter
	// IncludeEmptyLines inserts a blank line between sections
	IncludeEmptyLines bool
}

// NewWriterConfiguration creates a configuration with default settings
// (comma delimiter, blank lines between sections).
func NewWriterConfiguration() WriterConfiguration {
	return WriterConfiguration{
		Delimiter:         DelimiterComma,
		IncludeEmptyLines: true,
	}
}

// WithDelimiter sets the cell delimiter.
func (c WriterConfiguration) WithDelimiter(delimiter Delimiter) WriterConfiguration {
	c.Delimiter = delimiter
	return c
}

// WithIncludeEmptyLines sets whether sections are separated by a blank line.
func (c WriterConfiguration) WithIncludeEmptyLines(include bool) WriterConfiguration {
	c.IncludeEmptyLines = include
	return c
}

// delimiterRune returns the delimiter character, coercing auto to comma.
func (c WriterConfiguration) delimiterRune() rune {
	if r := c.Delimiter.Rune(); r != 0 {
		return r
	}
	return ','
}

// parserConfigurationYAML mirrors ParserConfiguration with the string enum
// forms used in configuration files. Pointer fields distinguish absent keys
// from explicit false.
type parserConfigurationYAML struct {
	Delimiter             string   `yaml:"delimiter"`
	RequireSectionHeaders *bool    `yaml:"requireSectionHeaders"`
	IgnoreEmptyLines      *bool    `yaml:"ignoreEmptyLines"`
	CommentPrefixes       []string `yaml:"commentPrefixes"`
	SectionHeaderCase     string   `yaml:"sectionHeaderCase"`
	ColumnHeaderCase      string   `yaml:"columnHeaderCase"`
	KeyCase               string   `yaml:"keyCase"`
	ColumnConsistency     string   `yaml:"columnConsistency"`
}

// ParserConfigurationFromYAML builds a ParserConfiguration from YAML data.
// Absent keys keep their defaults; unknown keys and unknown enum strings are
// rejected.
func ParserConfigurationFromYAML(data []byte) (ParserConfiguration, error) {
	cfg := NewParserConfiguration()

	var raw parserConfigurationYAML
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to parse configuration YAML: %w", err)
	}

	if raw.Delimiter != "" {
		delimiter, err := parseDelimiter(raw.Delimiter)
		if err != nil {
			return cfg, err
		}
		cfg.Delimiter = delimiter
	}
	if raw.RequireSectionHeaders != nil {
		cfg.RequireSectionHeaders = *raw.RequireSectionHeaders
	}
	if raw.IgnoreEmptyLines != nil {
		cfg.IgnoreEmptyLines = *raw.IgnoreEmptyLines
	}
	if raw.CommentPrefixes != nil {
		cfg.CommentPrefixes = append([]string(nil), raw.CommentPrefixes...)
	}
	if raw.SectionHeaderCase != "" {
		mode, err := parseCaseMode(raw.SectionHeaderCase)
		if err != nil {
			return cfg, err
		}
		cfg.SectionHeaderCase = mode
	}
	if raw.ColumnHeaderCase != "" {
		mode, err := parseCaseMode(raw.ColumnHeaderCase)
		if err != nil {
			return cfg, err
		}
		cfg.ColumnHeaderCase = mode
	}
	if raw.KeyCase != "" {
		mode, err := parseCaseMode(raw.KeyCase)
		if err != nil {
			return cfg, err
		}
		cfg.KeyCase = mode
	}
	if raw.ColumnConsistency != "" {
		policy, err := parseColumnConsistency(raw.ColumnConsistency)
		if err != nil {
			return cfg, err
		}
		cfg.ColumnConsistency = policy
	}
	return cfg, nil
}

// LoadParserConfiguration reads a YAML configuration file from path.
func LoadParserConfiguration(path string) (ParserConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewParserConfiguration(), fmt.Errorf("failed to read configuration file: %w", err)
	}
	return ParserConfigurationFromYAML(data)
}
