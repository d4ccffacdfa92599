package samplesheet

import (
	"fmt"
	"io"

	"github.com/nao1215/samplesheet/domain/model"
)

// ParseAviti parses Element Biosciences AVITI sample sheet text into a typed
// sheet.
//
// Example usage:
//
//	sheet, err := samplesheet.ParseAviti(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, sample := range sheet.Samples() {
//		fmt.Println(sample.SampleName())
//	}
func ParseAviti(data string, opts ...ParserConfiguration) (*model.AvitiSampleSheet, error) {
	cfg := buildParserConfiguration(opts)
	doc, err := parseStructured(data, cfg)
	if err != nil {
		return nil, err
	}
	return parseAvitiDocument(doc, cfg)
}

// ParseAvitiReader parses an AVITI sample sheet from the reader.
func ParseAvitiReader(r io.Reader, opts ...ParserConfiguration) (*model.AvitiSampleSheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample sheet: %w", err)
	}
	return ParseAviti(string(data), opts...)
}

// ParseAvitiFile parses an AVITI sample sheet file. The container format and
// compression are detected from the path: plain or compressed CSV/TSV text
// (.gz, .bz2, .xz, .zst), Excel workbooks (.xlsx), and Parquet sample tables
// (.parquet). Paths with any other extension fail with ErrUnsupportedFormat.
func ParseAvitiFile(path string, opts ...ParserConfiguration) (*model.AvitiSampleSheet, error) {
	cfg := buildParserConfiguration(opts)
	format, _ := detectFileFormat(path)
	switch format {
	case FileFormatCSV:
		data, err := readDocumentBytes(path)
		if err != nil {
			return nil, err
		}
		return ParseAviti(string(data), cfg)
	case FileFormatXLSX:
		doc, err := structuredDocumentFromXLSX(path, cfg)
		if err != nil {
			return nil, err
		}
		return parseAvitiDocument(doc, cfg)
	case FileFormatParquet:
		return parseAvitiParquet(path, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseIlluminaV1 parses Illumina v1 (IEM) sample sheet text into a typed
// sheet.
func ParseIlluminaV1(data string, opts ...ParserConfiguration) (*model.IlluminaV1SampleSheet, error) {
	cfg := buildParserConfiguration(opts)
	doc, err := parseStructured(data, cfg)
	if err != nil {
		return nil, err
	}
	return parseIlluminaV1Document(doc, cfg)
}

// ParseIlluminaV1Reader parses an Illumina v1 sample sheet from the reader.
func ParseIlluminaV1Reader(r io.Reader, opts ...ParserConfiguration) (*model.IlluminaV1SampleSheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample sheet: %w", err)
	}
	return ParseIlluminaV1(string(data), opts...)
}

// ParseIlluminaV1File parses an Illumina v1 sample sheet file. Format and
// compression routing matches ParseAvitiFile.
func ParseIlluminaV1File(path string, opts ...ParserConfiguration) (*model.IlluminaV1SampleSheet, error) {
	cfg := buildParserConfiguration(opts)
	format, _ := detectFileFormat(path)
	switch format {
	case FileFormatCSV:
		data, err := readDocumentBytes(path)
		if err != nil {
			return nil, err
		}
		return ParseIlluminaV1(string(data), cfg)
	case FileFormatXLSX:
		doc, err := structuredDocumentFromXLSX(path, cfg)
		if err != nil {
			return nil, err
		}
		return parseIlluminaV1Document(doc, cfg)
	case FileFormatParquet:
		return parseIlluminaV1Parquet(path, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// WriteAvitiToString serializes the sheet to AVITI sectioned CSV text.
func WriteAvitiToString(sheet *model.AvitiSampleSheet, opts ...WriterConfiguration) (string, error) {
	if sheet == nil {
		return "", ErrNilSheet
	}
	return writeAvitiDocument(sheet, buildWriterConfiguration(opts)), nil
}

// WriteAvitiToFile serializes the sheet to the file at path. A .xlsx path
// produces an Excel workbook; any other path is written as delimited text,
// compressed when it carries a .gz, .xz, or .zst suffix.
func WriteAvitiToFile(sheet *model.AvitiSampleSheet, path string, opts ...WriterConfiguration) error {
	text, err := WriteAvitiToString(sheet, opts...)
	if err != nil {
		return err
	}
	return writeDocumentText(path, text, buildWriterConfiguration(opts))
}

// WriteIlluminaV1ToString serializes the sheet to Illumina v1 sectioned CSV
// text.
func WriteIlluminaV1ToString(sheet *model.IlluminaV1SampleSheet, opts ...WriterConfiguration) (string, error) {
	if sheet == nil {
		return "", ErrNilSheet
	}
	return writeIlluminaV1Document(sheet, buildWriterConfiguration(opts)), nil
}

// WriteIlluminaV1ToFile serializes the sheet to the file at path. Format and
// compression routing matches WriteAvitiToFile.
func WriteIlluminaV1ToFile(sheet *model.IlluminaV1SampleSheet, path string, opts ...WriterConfiguration) error {
	text, err := WriteIlluminaV1ToString(sheet, opts...)
	if err != nil {
		return err
	}
	return writeDocumentText(path, text, buildWriterConfiguration(opts))
}

// buildParserConfiguration applies the default configuration when none is
// provided.
func buildParserConfiguration(opts []ParserConfiguration) ParserConfiguration {
	if len(opts) > 0 {
		return opts[0]
	}
	return NewParserConfiguration()
}

// buildWriterConfiguration applies the default configuration when none is
// provided.
func buildWriterConfiguration(opts []WriterConfiguration) WriterConfiguration {
	if len(opts) > 0 {
		return opts[0]
	}
	return NewWriterConfiguration()
}

// parseStructured runs the format-independent half of the pipeline: raw
// sectioning followed by header and data classification.
func parseStructured(text string, cfg ParserConfiguration) (model.StructuredDocument, error) {
	raw, err := parseRawDocument(text, cfg)
	if err != nil {
		return model.StructuredDocument{}, err
	}
	return structureDocument(raw, cfg), nil
}
