package samplesheet

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Register the pure-Go SQLite driver

	"github.com/nao1215/samplesheet/domain/model"
)

// OpenAvitiDB loads the sheet into an in-memory SQLite database for SQL
// querying. Three tables are always created: "samples" with the same column
// set the CSV writer emits, "run_values" (keyname, value), and "settings"
// (setting_name, value, lane). Absent optional values come back as NULL.
//
// The caller is responsible for closing the returned connection.
//
// Example usage:
//
//	db, err := samplesheet.OpenAvitiDB(ctx, sheet)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//	rows, err := db.QueryContext(ctx, "SELECT SampleName FROM samples WHERE Lane = '1'")
func OpenAvitiDB(ctx context.Context, sheet *model.AvitiSampleSheet) (*sql.DB, error) {
	if sheet == nil {
		return nil, ErrNilSheet
	}
	db, err := openMemoryDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := loadAvitiTables(ctx, db, sheet); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenIlluminaV1DB loads the sheet into an in-memory SQLite database for SQL
// querying. Four tables are always created: "samples" with the same column
// set the CSV writer emits, "header" (key, value), "reads" (read_number,
// length), and "settings" (key, value). Absent optional values come back as
// NULL.
//
// The caller is responsible for closing the returned connection.
func OpenIlluminaV1DB(ctx context.Context, sheet *model.IlluminaV1SampleSheet) (*sql.DB, error) {
	if sheet == nil {
		return nil, ErrNilSheet
	}
	db, err := openMemoryDB(ctx)
	if err != nil {
		return nil, err
	}
	if err := loadIlluminaV1Tables(ctx, db, sheet); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// openMemoryDB opens and validates a fresh in-memory SQLite database. The
// pool is capped at a single connection: each in-memory connection is its
// own database, so the loaded tables must stay on the connection that
// created them.
func openMemoryDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}
	return db, nil
}

// loadAvitiTables creates and fills the run_values, settings, and samples
// tables.
func loadAvitiTables(ctx context.Context, db *sql.DB, sheet *model.AvitiSampleSheet) error {
	if err := createSheetTable(ctx, db, "run_values", []string{`"keyname" TEXT`, `"value" TEXT`}); err != nil {
		return err
	}
	if runValues := sheet.RunValues(); runValues != nil {
		rows := make([][]any, 0, runValues.Len())
		runValues.Range(func(key, value string) bool {
			rows = append(rows, []any{key, value})
			return true
		})
		if err := insertSheetRows(ctx, db, "run_values", 2, rows); err != nil {
			return err
		}
	}

	if err := createSheetTable(ctx, db, "settings", []string{`"setting_name" TEXT`, `"value" TEXT`, `"lane" TEXT`}); err != nil {
		return err
	}
	settings := sheet.Settings()
	settingRows := make([][]any, 0, len(settings))
	for _, setting := range settings {
		row := []any{setting.Name(), setting.Value(), nil}
		if lane, ok := setting.Lane(); ok {
			row[2] = lane
		}
		settingRows = append(settingRows, row)
	}
	if err := insertSheetRows(ctx, db, "settings", 3, settingRows); err != nil {
		return err
	}

	return loadRowTable(ctx, db, "samples", avitiSampleRows(sheet.Samples()))
}

// loadIlluminaV1Tables creates and fills the header, reads, settings, and
// samples tables.
func loadIlluminaV1Tables(ctx context.Context, db *sql.DB, sheet *model.IlluminaV1SampleSheet) error {
	if err := createSheetTable(ctx, db, "header", []string{`"key" TEXT`, `"value" TEXT`}); err != nil {
		return err
	}
	headerRows := make([][]any, 0)
	for _, row := range illuminaHeaderRows(sheet.Header()) {
		headerRows = append(headerRows, []any{row[0], row[1]})
	}
	if err := insertSheetRows(ctx, db, "header", 2, headerRows); err != nil {
		return err
	}

	if err := createSheetTable(ctx, db, "reads", []string{`"read_number" INTEGER`, `"length" INTEGER`}); err != nil {
		return err
	}
	reads := sheet.Reads()
	readRows := make([][]any, 0, len(reads))
	for i, length := range reads {
		readRows = append(readRows, []any{i + 1, length})
	}
	if err := insertSheetRows(ctx, db, "reads", 2, readRows); err != nil {
		return err
	}

	if err := createSheetTable(ctx, db, "settings", []string{`"key" TEXT`, `"value" TEXT`}); err != nil {
		return err
	}
	if settings := sheet.Settings(); settings != nil {
		settingRows := make([][]any, 0, settings.Len())
		settings.Range(func(key, value string) bool {
			settingRows = append(settingRows, []any{key, value})
			return true
		})
		if err := insertSheetRows(ctx, db, "settings", 2, settingRows); err != nil {
			return err
		}
	}

	return loadRowTable(ctx, db, "samples", illuminaDataRows(sheet.Samples()))
}

// loadRowTable creates a table whose columns come from the first row and
// fills it with the remaining rows. Column types are inferred from the cell
// values: INTEGER and REAL when every non-blank cell parses as such, TEXT
// otherwise. Blank cells become NULL.
func loadRowTable(ctx context.Context, db *sql.DB, name string, rows [][]string) error {
	if len(rows) == 0 {
		return createSheetTable(ctx, db, name, []string{`"column1" TEXT`})
	}

	headers := rows[0]
	types := inferColumnTypes(headers, rows[1:])
	defs := make([]string, len(headers))
	for i, header := range headers {
		defs[i] = fmt.Sprintf(`"%s" %s`, header, types[i].string())
	}
	if err := createSheetTable(ctx, db, name, defs); err != nil {
		return err
	}

	records := make([][]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]any, len(row))
		for i, cell := range row {
			if cell == "" {
				continue // absent cells stay NULL
			}
			record[i] = cell
		}
		records = append(records, record)
	}
	return insertSheetRows(ctx, db, name, len(headers), records)
}

// createSheetTable creates a table from pre-quoted column definitions.
func createSheetTable(ctx context.Context, db *sql.DB, table string, columnDefs []string) error {
	query := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS "%s" (%s)`,
		table,
		strings.Join(columnDefs, ", "),
	)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

// insertSheetRows fills a table through one prepared statement.
func insertSheetRows(ctx context.Context, db *sql.DB, table string, width int, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	placeholders := make([]string, width)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmt, err := db.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO "%s" VALUES (%s)`,
		table,
		strings.Join(placeholders, ", "),
	))
	if err != nil {
		return fmt.Errorf("failed to prepare insert for table %s: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert record into table %s: %w", table, err)
		}
	}
	return nil
}
