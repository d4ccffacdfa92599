package samplesheet

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/samplesheet/domain/model"
)

// structuredDocumentFromXLSX reads the first worksheet of an Excel workbook
// and runs it through the sectioning pipeline. One worksheet row maps to one
// document row; section markers and key-value layout behave exactly as they
// do in delimited text, and delimiter sniffing is skipped.
func structuredDocumentFromXLSX(path string, cfg ParserConfiguration) (model.StructuredDocument, error) {
	data, err := readDocumentBytes(path)
	if err != nil {
		return model.StructuredDocument{}, err
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return model.StructuredDocument{}, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = workbook.Close() // Ignore close error
	}()

	sheetNames := workbook.GetSheetList()
	if len(sheetNames) == 0 {
		return model.StructuredDocument{}, errors.New("no sheets found in XLSX file")
	}

	rows, err := workbook.GetRows(sheetNames[0])
	if err != nil {
		return model.StructuredDocument{}, fmt.Errorf("failed to read sheet %s: %w", sheetNames[0], err)
	}

	delimiter := cfg.Delimiter.Rune()
	if delimiter == 0 {
		delimiter = ','
	}
	raw, err := rawDocumentFromRows(squareRows(rows), delimiter, cfg)
	if err != nil {
		return model.StructuredDocument{}, err
	}
	return structureDocument(raw, cfg), nil
}

// squareRows pads every row to the width of the widest row. excelize drops
// trailing empty cells from GetRows, which would otherwise trip column
// consistency checks that the equivalent delimited text passes.
func squareRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	squared := make([][]string, len(rows))
	for i, row := range rows {
		squared[i] = padCells(row, width)
	}
	return squared
}

// writeXLSXDocument writes serialized sample sheet text into a fresh Excel
// workbook at path, one worksheet row per text row.
func writeXLSXDocument(path, text string, delimiter rune) error {
	workbook := excelize.NewFile()
	defer func() {
		_ = workbook.Close() // Ignore close error
	}()

	for i, row := range tokenizeRows(text, delimiter) {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell coordinates: %w", err)
			}
			if err := workbook.SetCellValue("Sheet1", cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX file: %w", err)
	}
	return nil
}
