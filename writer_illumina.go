package samplesheet

import (
	"strconv"
	"strings"

	"github.com/nao1215/samplesheet/domain/model"
)

// illuminaMinimumPadding is the lowest number of trailing delimiters the IEM
// software expects after a section marker.
const illuminaMinimumPadding = 10

// illuminaHeaderFields lists the canonical [Header] keys in emission order.
var illuminaHeaderFields = []struct {
	name  string
	value func(model.IlluminaHeader) (string, bool)
}{
	{"IEMFileVersion", model.IlluminaHeader.IEMFileVersion},
	{"Investigator Name", model.IlluminaHeader.InvestigatorName},
	{"Experiment Name", model.IlluminaHeader.ExperimentName},
	{"Date", model.IlluminaHeader.Date},
	{"Workflow", model.IlluminaHeader.Workflow},
	{"Application", model.IlluminaHeader.Application},
	{"Instrument Type", model.IlluminaHeader.InstrumentType},
	{"Assay", model.IlluminaHeader.Assay},
	{"Index Adapters", model.IlluminaHeader.IndexAdapters},
	{"Description", model.IlluminaHeader.Description},
	{"Chemistry", model.IlluminaHeader.Chemistry},
	{"Run", model.IlluminaHeader.Run},
}

// illuminaDataColumns lists the canonical optional [Data] columns in emission
// order. Lane is handled separately because it leads the table when present,
// and Sample_ID is always emitted.
var illuminaDataColumns = []struct {
	header string
	value  func(model.IlluminaSample) (string, bool)
}{
	{"Sample_Name", model.IlluminaSample.SampleName},
	{"Sample_Plate", model.IlluminaSample.SamplePlate},
	{"Sample_Well", model.IlluminaSample.SampleWell},
	{"Index_Plate_Well", model.IlluminaSample.IndexPlateWell},
	{"Inline_ID", model.IlluminaSample.InlineID},
	{"I7_Index_ID", model.IlluminaSample.I7IndexID},
	{"index", model.IlluminaSample.Index},
	{"I5_Index_ID", model.IlluminaSample.I5IndexID},
	{"index2", model.IlluminaSample.Index2},
	{"Sample_Project", model.IlluminaSample.SampleProject},
	{"Description", model.IlluminaSample.Description},
}

// illuminaSection is one serialized section before assembly.
type illuminaSection struct {
	name string
	rows [][]string
}

// writeIlluminaV1Document serializes the sheet back to Illumina v1 sectioned
// CSV text. Sections come out as [Header], [Reads], [Settings], then [Data];
// empty sections are omitted except [Data], which always carries its column
// header row. Section markers and the blank separator lines between sections
// are padded with trailing delimiters, a quirk the IEM software insists on.
func writeIlluminaV1Document(sheet *model.IlluminaV1SampleSheet, cfg WriterConfiguration) string {
	delimiter := cfg.delimiterRune()

	sections := make([]illuminaSection, 0, 4)
	if rows := illuminaHeaderRows(sheet.Header()); len(rows) > 0 {
		sections = append(sections, illuminaSection{name: "Header", rows: rows})
	}
	if reads := sheet.Reads(); len(reads) > 0 {
		rows := make([][]string, 0, len(reads))
		for _, length := range reads {
			rows = append(rows, []string{strconv.Itoa(length)})
		}
		sections = append(sections, illuminaSection{name: "Reads", rows: rows})
	}
	if settings := sheet.Settings(); settings != nil && settings.Len() > 0 {
		rows := make([][]string, 0, settings.Len())
		settings.Range(func(key, value string) bool {
			rows = append(rows, []string{key, value})
			return true
		})
		sections = append(sections, illuminaSection{name: "Settings", rows: rows})
	}
	sections = append(sections, illuminaSection{name: "Data", rows: illuminaDataRows(sheet.Samples())})

	width := illuminaMinimumPadding + 1
	for _, section := range sections {
		for _, row := range section.rows {
			if len(row) > width {
				width = len(row)
			}
		}
	}
	padding := strings.Repeat(string(delimiter), width-1)

	var sb strings.Builder
	for i, section := range sections {
		if i > 0 && cfg.IncludeEmptyLines {
			sb.WriteString(padding)
			sb.WriteByte('\n')
		}
		sb.WriteString("[" + section.name + "]")
		sb.WriteString(padding)
		sb.WriteByte('\n')
		for _, row := range section.rows {
			appendRow(&sb, row, delimiter)
		}
	}
	return sb.String()
}

// illuminaHeaderRows emits the set canonical header fields in their vendor
// casing followed by the extra metadata pairs in insertion order.
func illuminaHeaderRows(header *model.IlluminaHeader) [][]string {
	if header == nil {
		return nil
	}
	var rows [][]string
	for _, field := range illuminaHeaderFields {
		if value, ok := field.value(*header); ok {
			rows = append(rows, []string{field.name, value})
		}
	}
	header.ExtraMetadata().Range(func(key, value string) bool {
		rows = append(rows, []string{key, value})
		return true
	})
	return rows
}

// illuminaDataRows builds the [Data] table. The column set is Lane when any
// sample carries one, Sample_ID always, the canonical columns used by at
// least one sample, and the sorted union of all extra metadata keys. The
// header row is emitted even without records.
func illuminaDataRows(samples []model.IlluminaSample) [][]string {
	hasLane := false
	for _, sample := range samples {
		if _, ok := sample.Lane(); ok {
			hasLane = true
			break
		}
	}
	used := make(map[string]bool, len(illuminaDataColumns))
	for _, column := range illuminaDataColumns {
		for _, sample := range samples {
			if _, ok := column.value(sample); ok {
				used[column.header] = true
				break
			}
		}
	}

	var headers []string
	if hasLane {
		headers = append(headers, "Lane")
	}
	headers = append(headers, "Sample_ID")
	for _, column := range illuminaDataColumns {
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
		if hasLane {
			if lane, ok := sample.Lane(); ok {
				row = append(row, strconv.Itoa(lane))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, sample.SampleID())
		for _, column := range illuminaDataColumns {
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
