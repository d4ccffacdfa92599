// Package samplesheet parses and writes sequencing sample sheets: the
// sectioned CSV files that configure Illumina (IEM v1) and Element
// Biosciences AVITI runs.
//
// samplesheet turns loosely structured vendor files into validated, immutable
// typed models and serializes them back into the exact layout the instrument
// software expects. Parsing runs in three stages: raw sectioning (delimiter
// sniffing, [Section] markers, column consistency), deterministic
// classification of key-value header sections versus the tabular data
// section, and vendor-specific binding into typed sheets.
//
// # Features
//
//   - Parse Illumina v1 (IEM) and Element AVITI sample sheets from strings,
//     readers, or files
//   - Automatic handling of compressed files (gzip, bzip2, xz, zstandard)
//     plus Excel (XLSX) workbooks and Parquet sample tables
//   - Immutable sheet models with fluent copy-on-write modifiers and
//     builders for staged edits
//   - Unknown header fields and sample columns are preserved in
//     case-insensitive extra-metadata maps and round-trip losslessly
//   - Writers reproduce vendor idiosyncrasies such as Illumina's trailing
//     delimiter padding and AVITI's lane-scoped settings layout
//   - Load parsed sheets into in-memory SQLite for SQL querying, or export
//     them as JSON
//
// # Basic Usage
//
// The simplest entry points are the Parse functions:
//
//	sheet, err := samplesheet.ParseAvitiFile("RunManifest.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, sample := range sheet.Samples() {
//	    fmt.Println(sample.SampleName(), sample.Index1())
//	}
//
// Writing a sheet back produces instrument-ready text:
//
//	text, err := samplesheet.WriteAvitiToString(sheet)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(text)
//
// # Configuration
//
// Parsing behavior is controlled by ParserConfiguration, passed as an
// optional trailing argument. The zero configuration sniffs the delimiter,
// folds section and column names case-insensitively, and checks column
// widths per section:
//
//	cfg := samplesheet.NewParserConfiguration().
//	    WithDelimiter(samplesheet.DelimiterComma).
//	    WithColumnConsistency(samplesheet.ColumnConsistencyPadSilently)
//	sheet, err := samplesheet.ParseAviti(data, cfg)
//
// Configurations can also be loaded from YAML files with
// LoadParserConfiguration.
//
// # Editing Sheets
//
// Sheet models are immutable; With* methods return modified copies:
//
//	updated, err := sheet.WithSampleRemoved("Sample01")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For staged multi-step edits, the builders in domain/model seed from an
// existing sheet and snapshot on Build:
//
//	builder := model.NewAvitiSampleSheetBuilderFromSheet(sheet)
//	builder.AddSample(sample).AddSetting(model.NewAvitiSetting("AdapterTrim", "true"))
//	rebuilt, err := builder.Build()
//
// # Error Handling
//
// Structural failures surface as *FormatError values matching
// ErrFormatViolation via errors.Is; per-record validation failures surface
// as *model.ValidationError carrying the 1-based record number. Soft
// conditions, such as an unparsable optional lane number, degrade to absent
// values with a log warning instead of failing the parse.
package samplesheet
