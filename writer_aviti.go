package samplesheet

import (
	"sort"
	"strings"

	"github.com/nao1215/samplesheet/domain/model"
)

// avitiSettingsWidth is the row width the AVITI software expects for the
// [Settings] table once any entry is lane-scoped.
const avitiSettingsWidth = 5

// avitiOptionalColumns lists the optional [Samples] columns in emission
// order. A column is emitted only when at least one sample carries a value.
var avitiOptionalColumns = []struct {
	header string
	value  func(model.AvitiSample) (string, bool)
}{
	{"Lane", model.AvitiSample.Lane},
	{"Project", model.AvitiSample.Project},
	{"ExternalId", model.AvitiSample.ExternalID},
	{"Description", model.AvitiSample.Description},
}

// writeAvitiDocument serializes the sheet back to AVITI sectioned CSV text.
// Sections come out as [RunValues], [Settings], then [Samples]; the first two
// are omitted when empty while [Samples] is always present, header row
// included even without records.
func writeAvitiDocument(sheet *model.AvitiSampleSheet, cfg WriterConfiguration) string {
	delimiter := cfg.delimiterRune()
	var sb strings.Builder
	wroteSection := false

	startSection := func(marker string) {
		if wroteSection && cfg.IncludeEmptyLines {
			sb.WriteByte('\n')
		}
		wroteSection = true
		sb.WriteString(marker)
		sb.WriteByte('\n')
	}

	if runValues := sheet.RunValues(); runValues != nil && runValues.Len() > 0 {
		startSection("[RunValues]")
		appendRow(&sb, []string{"Keyname", "Value"}, delimiter)
		runValues.Range(func(key, value string) bool {
			appendRow(&sb, []string{key, value}, delimiter)
			return true
		})
	}

	if settings := sheet.Settings(); len(settings) > 0 {
		startSection("[Settings]")
		writeAvitiSettings(&sb, settings, delimiter)
	}

	startSection("[Samples]")
	writeAvitiSamples(&sb, sheet.Samples(), delimiter)

	return sb.String()
}

// writeAvitiSettings emits the settings table. Without lane-scoped entries
// the table is two columns wide; with any, header and rows widen to the
// five-column layout the instrument software reads lanes from.
func writeAvitiSettings(sb *strings.Builder, settings []model.AvitiSetting, delimiter rune) {
	hasLanes := false
	for _, setting := range settings {
		if _, ok := setting.Lane(); ok {
			hasLanes = true
			break
		}
	}

	if !hasLanes {
		appendRow(sb, []string{"SettingName", "Value"}, delimiter)
		for _, setting := range settings {
			appendRow(sb, []string{setting.Name(), setting.Value()}, delimiter)
		}
		return
	}

	appendRow(sb, padCells([]string{"SettingName", "Value", "Lane"}, avitiSettingsWidth), delimiter)
	for _, setting := range settings {
		lane, _ := setting.Lane()
		appendRow(sb, padCells([]string{setting.Name(), setting.Value(), lane}, avitiSettingsWidth), delimiter)
	}
}

// writeAvitiSamples emits the samples table.
func writeAvitiSamples(sb *strings.Builder, samples []model.AvitiSample, delimiter rune) {
	for _, row := range avitiSampleRows(samples) {
		appendRow(sb, row, delimiter)
	}
}

// avitiSampleRows builds the samples table. The column set is the three
// required columns, the optional columns used by at least one sample, and
// the sorted union of all extra metadata keys; every row comes out at the
// full table width.
func avitiSampleRows(samples []model.AvitiSample) [][]string {
	used := make(map[string]bool, len(avitiOptionalColumns))
	for _, column := range avitiOptionalColumns {
		for _, sample := range samples {
			if _, ok := column.value(sample); ok {
				used[column.header] = true
				break
			}
		}
	}

	headers := []string{"SampleName", "Index1", "Index2"}
	for _, column := range avitiOptionalColumns {
		if used[column.header] {
			headers = append(headers, column.header)
		}
	}
	metadata := make([]*model.CaseInsensitiveMap, 0, len(samples))
	for _, sample := range samples {
		metadata = append(metadata, sample.ExtraMetadata())
	}
	extraHeaders := collectExtraKeys(metadata)
	headers = append(headers, extraHeaders...)

	rows := make([][]string, 0, len(samples)+1)
	rows = append(rows, headers)
	for _, sample := range samples {
		row := make([]string, 0, len(headers))
		row = append(row, sample.SampleName(), sample.Index1(), sample.Index2())
		for _, column := range avitiOptionalColumns {
			if !used[column.header] {
				continue
			}
			value, _ := column.value(sample)
			row = append(row, value)
		}
		extras := sample.ExtraMetadata()
		for _, key := range extraHeaders {
			value, _ := extras.Get(key)
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return rows
}

// collectExtraKeys gathers the union of extra metadata keys across records,
// keeping the casing of the first occurrence, sorted for a stable column
// order.
func collectExtraKeys(metadata []*model.CaseInsensitiveMap) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, extras := range metadata {
		extras.Range(func(key, value string) bool {
			folded := strings.ToLower(key)
			if !seen[folded] {
				seen[folded] = true
				keys = append(keys, key)
			}
			return true
		})
	}
	sort.Strings(keys)
	return keys
}
