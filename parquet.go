package samplesheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	pqfile "github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"github.com/nao1215/samplesheet/domain/model"
)

// parseAvitiParquet parses a Parquet sample table as an AVITI sheet. The
// table carries samples only; run values and settings come back absent.
func parseAvitiParquet(path string, cfg ParserConfiguration) (*model.AvitiSampleSheet, error) {
	doc, err := structuredDocumentFromParquet(path, cfg)
	if err != nil {
		return nil, err
	}
	return parseAvitiDocument(doc, cfg)
}

// parseIlluminaV1Parquet parses a Parquet sample table as an Illumina v1
// sheet. The table carries samples only; header, reads, and settings come
// back defaulted or absent.
func parseIlluminaV1Parquet(path string, cfg ParserConfiguration) (*model.IlluminaV1SampleSheet, error) {
	doc, err := structuredDocumentFromParquet(path, cfg)
	if err != nil {
		return nil, err
	}
	return parseIlluminaV1Document(doc, cfg)
}

// structuredDocumentFromParquet loads a Parquet sample table as a document
// holding a single unnamed data section, column names from the file schema.
func structuredDocumentFromParquet(path string, cfg ParserConfiguration) (model.StructuredDocument, error) {
	headers, records, err := readParquetTable(path)
	if err != nil {
		return model.StructuredDocument{}, err
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, headers)
	rows = append(rows, records...)
	section := newDataSection(model.NewRawSection("", rows), cfg)
	return model.NewStructuredDocument(',', model.SheetTypeSectionless, nil, section), nil
}

// readParquetTable reads a Parquet file into its column names and string
// records. Parquet needs random access, so the whole file is buffered in
// memory first.
func readParquetTable(path string) ([]string, [][]string, error) {
	data, err := readDocumentBytes(path)
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, errors.New("empty parquet file")
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	if table.NumRows() == 0 {
		return nil, nil, errors.New("no records found in parquet file")
	}

	schema := table.Schema()
	headers := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		headers[i] = field.Name
	}

	tableReader := array.NewTableReader(table, 0)
	defer tableReader.Release()

	var records [][]string
	for tableReader.Next() {
		batch := tableReader.Record()
		numRows := batch.NumRows()
		for i := int64(0); i < numRows; i++ {
			row := make([]string, batch.NumCols())
			for j, column := range batch.Columns() {
				row[j] = formatArrowValue(column, int(i))
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading table records: %w", err)
	}

	return headers, records, nil
}

// formatArrowValue renders one column value as the cell text the binders
// expect. Nulls become empty cells rather than the arrow null marker.
func formatArrowValue(column arrow.Array, row int) string {
	if column.IsNull(row) {
		return ""
	}
	return column.ValueStr(row)
}
