package samplesheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat represents the container format of a sample sheet file.
type FileFormat int

const (
	// FileFormatCSV represents delimited text files
	FileFormatCSV FileFormat = iota
	// FileFormatXLSX represents Excel workbooks
	FileFormatXLSX
	// FileFormatParquet represents Apache Parquet tables
	FileFormatParquet
	// FileFormatUnsupported represents everything else
	FileFormatUnsupported
)

// File extensions
const (
	// extCSV is the CSV file extension
	extCSV = ".csv"
	// extTSV is the TSV file extension
	extTSV = ".tsv"
	// extXLSX is the Excel XLSX file extension
	extXLSX = ".xlsx"
	// extParquet is the Parquet file extension
	extParquet = ".parquet"
	// extGZ is the gzip compression extension
	extGZ = ".gz"
	// extBZ2 is the bzip2 compression extension
	extBZ2 = ".bz2"
	// extXZ is the xz compression extension
	extXZ = ".xz"
	// extZSTD is the zstd compression extension
	extZSTD = ".zst"
)

// String returns the string representation of FileFormat
func (f FileFormat) String() string {
	switch f {
	case FileFormatCSV:
		return "csv"
	case FileFormatXLSX:
		return "xlsx"
	case FileFormatParquet:
		return "parquet"
	default:
		return "unsupported"
	}
}

// detectFileFormat splits a path into its container format and compression
// wrapper. Both .csv and .tsv count as CSV; the delimiter is sniffed from
// content, not the extension.
func detectFileFormat(path string) (FileFormat, Compression) {
	compression := detectCompression(path)
	base := strings.ToLower(path)
	if ext := compression.Extension(); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	switch filepath.Ext(base) {
	case extCSV, extTSV:
		return FileFormatCSV, compression
	case extXLSX:
		return FileFormatXLSX, compression
	case extParquet:
		return FileFormatParquet, compression
	default:
		return FileFormatUnsupported, compression
	}
}

// openDocumentReader opens path and layers the decompression reader matching
// its extension. The caller must invoke the returned close function.
func openDocumentReader(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sample sheet: %w", err)
	}

	reader, closeDecoder, err := detectCompression(path).newReader(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	closeAll := func() error {
		decodeErr := closeDecoder()
		if closeErr := file.Close(); closeErr != nil && decodeErr == nil {
			return closeErr
		}
		return decodeErr
	}
	return reader, closeAll, nil
}

// readDocumentBytes reads the whole file through the decompression layer.
func readDocumentBytes(path string) ([]byte, error) {
	reader, closeReader, err := openDocumentReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeReader() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample sheet: %w", err)
	}
	return data, nil
}

// writeDocumentBytes writes data to path through the compression layer
// matching its extension.
func writeDocumentBytes(path string, data []byte) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sample sheet: %w", err)
	}

	writer, closeEncoder, err := detectCompression(path).newWriter(file)
	if err != nil {
		_ = file.Close()
		return err
	}

	_, writeErr := writer.Write(data)
	encodeErr := closeEncoder()
	closeErr := file.Close()

	if writeErr != nil {
		return fmt.Errorf("failed to write sample sheet: %w", writeErr)
	}
	if encodeErr != nil {
		return fmt.Errorf("failed to finish compression: %w", encodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close sample sheet: %w", closeErr)
	}
	return nil
}

// writeDocumentText routes serialized sheet text to the container format the
// path names. Parquet output is not supported, and XLSX workbooks cannot be
// wrapped in a compression layer on the way out.
func writeDocumentText(path, text string, cfg WriterConfiguration) error {
	format, compression := detectFileFormat(path)
	switch format {
	case FileFormatXLSX:
		if compression != CompressionNone {
			return fmt.Errorf("%w: compressed XLSX output: %s", ErrUnsupportedFormat, path)
		}
		return writeXLSXDocument(path, text, cfg.delimiterRune())
	case FileFormatParquet:
		return fmt.Errorf("%w: parquet output: %s", ErrUnsupportedFormat, path)
	default:
		return writeDocumentBytes(path, []byte(text))
	}
}
