package samplesheet

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nao1215/samplesheet/domain/model"
)

// Folded section names the Illumina v1 binder recognizes.
const (
	illuminaSectionReads    = "reads"
	illuminaSectionSettings = "settings"
)

// illuminaSettingsPrefixes marks keys that classify a section as settings
// even when the section carries another name.
var illuminaSettingsPrefixes = []string{"setting", "config", "param"}

// parseIlluminaV1Document binds a structured document to the Illumina v1
// model. Reads resolution runs first and consumes its section, settings
// classification consumes qualifying sections next, and the remaining header
// sections merge into the sheet header. The data section binds positionally
// into samples.
func parseIlluminaV1Document(doc model.StructuredDocument, cfg ParserConfiguration) (*model.IlluminaV1SampleSheet, error) {
	sections := doc.HeaderSections()

	reads, sections := parseIlluminaReads(sections, cfg)
	settings, sections := parseIlluminaSettings(sections)
	header := parseIlluminaHeader(sections, cfg)

	samples, err := parseIlluminaSamples(doc.DataSection(), cfg)
	if err != nil {
		return nil, err
	}

	sheet := model.NewIlluminaV1SampleSheet(header, reads, settings, samples)
	cfg.logger().Debug("parsed Illumina v1 sample sheet", "samples", len(samples))
	return sheet, nil
}

// parseIlluminaReads resolves read lengths and returns the sections left for
// later classification. A section named "reads" always wins and is consumed
// even when its content fails to parse; without one, the first section whose
// rows form a bare read-length column is consumed instead.
func parseIlluminaReads(sections []model.HeaderSection, cfg ParserConfiguration) ([]int, []model.HeaderSection) {
	for i, section := range sections {
		if section.Name() == illuminaSectionReads {
			return readLengthsFromNamedSection(section, cfg), removeSection(sections, i)
		}
	}
	for i, section := range sections {
		if lengths, ok := readLengthsByHeuristic(section); ok {
			return lengths, removeSection(sections, i)
		}
	}
	return nil, sections
}

// readLengthsFromNamedSection parses a [Reads] section. Each row must carry a
// single non-blank cell with an integer; values outside [1, 1000] are dropped
// silently and any row that cannot parse degrades the whole result to absent
// with a warning, never an error.
func readLengthsFromNamedSection(section model.HeaderSection, cfg ParserConfiguration) []int {
	var lengths []int
	for _, row := range section.Rows() {
		cells := nonBlankCells(row)
		if len(cells) == 0 {
			continue
		}
		if len(cells) > 1 {
			cfg.logger().Warn("invalid row in reads section", "cells", cells)
			return nil
		}
		length, err := strconv.Atoi(cells[0])
		if err != nil {
			cfg.logger().Warn("could not parse read length", "value", cells[0])
			return nil
		}
		if length >= 1 && length <= 1000 {
			lengths = append(lengths, length)
		}
	}
	return lengths
}

// readLengthsByHeuristic reports whether the section is a bare read-length
// column without carrying the "reads" name. Every row must be a single cell,
// or two cells repeating the same value, parsing as an integer in [25, 500].
// A second cell with any other content disqualifies the section, so a
// key-value row like ("150", "") never passes for a read length.
func readLengthsByHeuristic(section model.HeaderSection) ([]int, bool) {
	rows := section.Rows()
	if len(rows) == 0 {
		return nil, false
	}
	lengths := make([]int, 0, len(rows))
	for _, row := range rows {
		cell := strings.TrimSpace(row[0])
		switch {
		case len(row) == 1:
		case len(row) == 2 && strings.TrimSpace(row[1]) == cell:
		default:
			return nil, false
		}
		length, err := strconv.Atoi(cell)
		if err != nil || length < 25 || length > 500 {
			return nil, false
		}
		lengths = append(lengths, length)
	}
	return lengths, true
}

// parseIlluminaSettings merges every settings-like section into one map and
// returns the sections left over. The result is nil when no section
// qualifies.
func parseIlluminaSettings(sections []model.HeaderSection) (*model.CaseInsensitiveMap, []model.HeaderSection) {
	var settings *model.CaseInsensitiveMap
	remaining := make([]model.HeaderSection, 0, len(sections))
	for _, section := range sections {
		if !isIlluminaSettingsSection(section) {
			remaining = append(remaining, section)
			continue
		}
		if settings == nil {
			settings = model.NewCaseInsensitiveMap()
		}
		section.KeyValues().Range(func(key, value string) bool {
			settings.Set(key, value)
			return true
		})
	}
	return settings, remaining
}

// isIlluminaSettingsSection reports whether the section binds to settings:
// either it carries the "settings" name or every key it holds starts with a
// settings-like prefix.
func isIlluminaSettingsSection(section model.HeaderSection) bool {
	if section.Name() == illuminaSectionSettings {
		return true
	}
	keys := section.KeyValues().Keys()
	if len(keys) == 0 {
		return false
	}
	for _, key := range keys {
		if !hasAnyPrefix(strings.ToLower(key), illuminaSettingsPrefixes) {
			return false
		}
	}
	return true
}

// parseIlluminaHeader merges the key-value pairs of the remaining sections in
// document order, later sections overwriting earlier ones, and binds known
// field names onto the header. Unrecognized keys flow into the header's extra
// metadata. Without any pair a minimal header with the GenerateFASTQ workflow
// is synthesized.
func parseIlluminaHeader(sections []model.HeaderSection, cfg ParserConfiguration) *model.IlluminaHeader {
	merged := model.NewCaseInsensitiveMap()
	for _, section := range sections {
		section.KeyValues().Range(func(key, value string) bool {
			merged.Set(key, value)
			return true
		})
	}

	if merged.Len() == 0 {
		cfg.logger().Warn("no header section found, creating minimal header")
		header := model.NewIlluminaHeader().WithField("Workflow", "GenerateFASTQ")
		return &header
	}

	header := model.NewIlluminaHeader()
	merged.Range(func(key, value string) bool {
		header = header.WithField(key, value)
		return true
	})
	return &header
}

// parseIlluminaSamples binds data section records into samples. Binding is
// all-or-nothing: the first invalid record fails the whole parse.
func parseIlluminaSamples(data model.DataSection, cfg ParserConfiguration) ([]model.IlluminaSample, error) {
	headers := data.Headers()
	records := data.Records()
	if len(headers) == 0 || len(records) == 0 {
		cfg.logger().Warn("no data section found or data section is empty")
		return []model.IlluminaSample{}, nil
	}

	samples := make([]model.IlluminaSample, 0, len(records))
	for i, record := range records {
		sample, err := bindIlluminaSample(headers, record, cfg)
		if err != nil {
			return nil, stampRecordNumber(err, i+1)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// bindIlluminaSample zips one record against the column headers. Cells beyond
// the header width are ignored, blank cells leave fields absent, and a lane
// cell that fails to parse degrades to absent with a warning. Unknown columns
// with a value land in the sample's extra metadata.
func bindIlluminaSample(headers []string, record []string, cfg ParserConfiguration) (model.IlluminaSample, error) {
	sampleID := ""
	if idx, ok := columnIndex(headers, "sampleid"); ok && idx < len(record) {
		sampleID = strings.TrimSpace(record[idx])
	}
	sample, err := model.NewIlluminaSample(sampleID)
	if err != nil {
		return model.IlluminaSample{}, err
	}

	for col, cell := range record {
		if col >= len(headers) {
			break
		}
		value := strings.TrimSpace(cell)
		if value == "" {
			continue
		}
		switch model.NormalizeFieldName(headers[col]) {
		case "sampleid":
			// Bound above.
		case "lane":
			lane, err := strconv.Atoi(value)
			if err != nil {
				cfg.logger().Warn("invalid lane value, leaving lane unset", "value", value)
				continue
			}
			sample = sample.WithLane(lane)
		default:
			next, err := sample.WithField(headers[col], value)
			if err != nil {
				return model.IlluminaSample{}, err
			}
			sample = next
		}
	}

	if err := sample.Validate(); err != nil {
		return model.IlluminaSample{}, err
	}
	return sample, nil
}

// removeSection returns sections without the entry at index i.
func removeSection(sections []model.HeaderSection, i int) []model.HeaderSection {
	remaining := make([]model.HeaderSection, 0, len(sections)-1)
	remaining = append(remaining, sections[:i]...)
	return append(remaining, sections[i+1:]...)
}

// nonBlankCells returns the trimmed non-blank cells of row in order.
func nonBlankCells(row []string) []string {
	cells := make([]string, 0, len(row))
	for _, cell := range row {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			cells = append(cells, trimmed)
		}
	}
	return cells
}

// columnIndex finds the first header whose normalized form matches name.
func columnIndex(headers []string, name string) (int, bool) {
	for i, header := range headers {
		if model.NormalizeFieldName(header) == name {
			return i, true
		}
	}
	return 0, false
}

// stampRecordNumber sets the 1-based record number on validation errors that
// lack one, so callers see which row failed.
func stampRecordNumber(err error, record int) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) && verr.Record == 0 {
		return &model.ValidationError{Record: record, Field: verr.Field, Reason: verr.Reason}
	}
	return err
}
