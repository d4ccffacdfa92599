package samplesheet

import (
	"fmt"
	"strings"

	"github.com/nao1215/samplesheet/domain/model"
)

// Folded section names the AVITI binder recognizes.
const (
	avitiSectionRunValues = "runvalues"
	avitiSectionSettings  = "settings"
)

var (
	// avitiRunValuesKeywords classifies an unnamed section as RunValues when
	// any of its keys matches.
	avitiRunValuesKeywords = map[string]bool{
		"keyname":    true,
		"runid":      true,
		"experiment": true,
		"date":       true,
		"instrument": true,
		"flowcell":   true,
		"flow":       true,
		"cell":       true,
	}

	// avitiSampleKeywords marks keys that belong to a sample table, which a
	// settings section must not carry.
	avitiSampleKeywords = map[string]bool{
		"samplename": true,
		"index1":     true,
		"index2":     true,
		"lane":       true,
		"project":    true,
	}

	// avitiSettingsPrefixes marks keys that classify a section as settings.
	avitiSettingsPrefixes = []string{"adapter", "setting", "config", "param"}

	// Cell spellings that mark the optional column header row of a settings
	// section, matched by substring.
	avitiSettingNameHeaders  = []string{"settingname", "setting", "name", "key"}
	avitiSettingValueHeaders = []string{"value", "val"}
)

// parseAvitiDocument binds a structured document to the AVITI model. Header
// sections classify independently as RunValues, Settings, or neither; the
// data section binds positionally into samples.
func parseAvitiDocument(doc model.StructuredDocument, cfg ParserConfiguration) (*model.AvitiSampleSheet, error) {
	var runValues *model.CaseInsensitiveMap
	var settings []model.AvitiSetting

	for _, section := range doc.HeaderSections() {
		switch {
		case isAvitiRunValuesSection(section, cfg):
			runValues = mergeAvitiRunValues(runValues, section)
		case isAvitiSettingsSection(section, cfg):
			entries, err := avitiSettingEntries(section, cfg)
			if err != nil {
				return nil, err
			}
			if settings == nil {
				settings = []model.AvitiSetting{}
			}
			settings = append(settings, entries...)
		default:
			cfg.logger().Debug("ignoring unrecognized header section", "section", section.Name())
		}
	}

	samples, err := parseAvitiSamples(doc.DataSection(), cfg)
	if err != nil {
		return nil, err
	}

	sheet := model.NewAvitiSampleSheet(runValues, settings, samples)
	cfg.logger().Debug("parsed AVITI sample sheet", "samples", len(samples))
	return sheet, nil
}

// isAvitiRunValuesSection reports whether the section binds to RunValues: it
// carries the "runvalues" name or any of its keys is a run-value keyword.
func isAvitiRunValuesSection(section model.HeaderSection, cfg ParserConfiguration) bool {
	if section.Name() == avitiSectionRunValues {
		return true
	}
	for _, key := range section.KeyValues().Keys() {
		if avitiRunValuesKeywords[cfg.KeyCase.Fold(key)] {
			return true
		}
	}
	return false
}

// isAvitiSettingsSection reports whether the section binds to Settings: it
// carries the "settings" name, any key starts with a settings-like prefix,
// or none of its keys looks like a sample-table column.
func isAvitiSettingsSection(section model.HeaderSection, cfg ParserConfiguration) bool {
	if section.Name() == avitiSectionSettings {
		return true
	}
	keys := section.KeyValues().Keys()
	if len(keys) == 0 {
		return false
	}
	sampleish := false
	for _, key := range keys {
		folded := cfg.KeyCase.Fold(key)
		if hasAnyPrefix(folded, avitiSettingsPrefixes) {
			return true
		}
		if avitiSampleKeywords[folded] {
			sampleish = true
		}
	}
	return !sampleish
}

// mergeAvitiRunValues folds the section's key-value pairs into the run-value
// map, creating it on first use. The literal column header pair written by
// the AVITI writer ("Keyname", "Value") is not a run value and is skipped.
func mergeAvitiRunValues(runValues *model.CaseInsensitiveMap, section model.HeaderSection) *model.CaseInsensitiveMap {
	if runValues == nil {
		runValues = model.NewCaseInsensitiveMap()
	}
	section.KeyValues().Range(func(key, value string) bool {
		if strings.EqualFold(key, "keyname") && strings.EqualFold(value, "value") {
			return true
		}
		runValues.Set(key, value)
		return true
	})
	return runValues
}

// avitiSettingEntries converts section rows into settings entries: two
// meaningful cells form a plain setting, a third cell scopes the setting to
// lanes (kept verbatim, AVITI writes specs like "1+2"), and more than three
// is a format violation. Single-cell rows are skipped.
func avitiSettingEntries(section model.HeaderSection, cfg ParserConfiguration) ([]model.AvitiSetting, error) {
	rows := section.Rows()
	entries := make([]model.AvitiSetting, 0, len(rows))
	for i, row := range rows {
		cells := nonBlankCells(row)
		if i == 0 && isSettingsHeaderRow(cells) {
			cfg.logger().Debug("skipping header row in settings section", "cells", cells)
			continue
		}
		switch {
		case len(cells) == 2:
			entries = append(entries, model.NewAvitiSetting(cells[0], cells[1]))
		case len(cells) == 3:
			entries = append(entries, model.NewAvitiSettingWithLane(cells[0], cells[1], cells[2]))
		case len(cells) > 3:
			return nil, &FormatError{
				SectionName: section.Name(),
				RowIndex:    i + 1,
				Reason:      fmt.Sprintf("settings row has %d values, expected name and value with an optional lane", len(cells)),
			}
		}
	}
	return entries, nil
}

// isSettingsHeaderRow reports whether cells look like the column header row
// some files put at the top of [Settings], such as "SettingName,Value".
func isSettingsHeaderRow(cells []string) bool {
	if len(cells) < 2 {
		return false
	}
	return containsAny(strings.ToLower(cells[0]), avitiSettingNameHeaders) &&
		containsAny(strings.ToLower(cells[1]), avitiSettingValueHeaders)
}

func containsAny(s string, substrings []string) bool {
	for _, substring := range substrings {
		if strings.Contains(s, substring) {
			return true
		}
	}
	return false
}

// parseAvitiSamples binds data section records into samples. Binding is
// all-or-nothing: the first invalid record fails the whole parse.
func parseAvitiSamples(data model.DataSection, cfg ParserConfiguration) ([]model.AvitiSample, error) {
	headers := data.Headers()
	records := data.Records()
	if len(headers) == 0 || len(records) == 0 {
		cfg.logger().Warn("no samples section found or samples section is empty")
		return []model.AvitiSample{}, nil
	}

	samples := make([]model.AvitiSample, 0, len(records))
	for i, record := range records {
		sample, err := bindAvitiSample(headers, record)
		if err != nil {
			return nil, stampRecordNumber(err, i+1)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// bindAvitiSample zips one record against the column headers. SampleName,
// Index1, and Index2 bind at construction so the model can enforce its
// required-field and index-sequence rules; Index2 stays an empty string when
// its column is missing. Unknown columns with a value land in the sample's
// extra metadata.
func bindAvitiSample(headers []string, record []string) (model.AvitiSample, error) {
	cellFor := func(name string) string {
		if idx, ok := columnIndex(headers, name); ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	sample, err := model.NewAvitiSample(cellFor("samplename"), cellFor("index1"), cellFor("index2"))
	if err != nil {
		return model.AvitiSample{}, err
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
		case "samplename", "index1", "index2":
			// Bound at construction.
		case "lane":
			sample = sample.WithLane(value)
		case "project":
			sample = sample.WithProject(value)
		case "externalid":
			sample = sample.WithExternalID(value)
		case "description":
			sample = sample.WithDescription(value)
		default:
			sample = sample.WithExtraMetadata(headers[col], value)
		}
	}
	return sample, nil
}
