package samplesheet

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/nao1215/samplesheet/domain/model"
)

// discardLogger silences warning output in tests that intentionally trip
// soft conditions.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTokenizeRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want [][]string
	}{
		{
			name: "simple rows",
			text: "a,b\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "trailing newline does not add a row",
			text: "a,b\n",
			want: [][]string{{"a", "b"}},
		},
		{
			name: "quoted cell with delimiter",
			text: "\"x,y\",z",
			want: [][]string{{"x,y", "z"}},
		},
		{
			name: "doubled quote escapes one quote",
			text: "\"a\"\"b\"",
			want: [][]string{{`a"b`}},
		},
		{
			name: "quoted cell spanning lines",
			text: "\"line1\nline2\",x",
			want: [][]string{{"line1\nline2", "x"}},
		},
		{
			name: "quote inside an open cell is literal",
			text: "ab\"c,d",
			want: [][]string{{`ab"c`, "d"}},
		},
		{
			name: "blank line becomes a zero-cell row",
			text: "a\n\nb",
			want: [][]string{{"a"}, {}, {"b"}},
		},
		{
			name: "carriage return breaks rows",
			text: "a\rb",
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "crlf breaks rows once",
			text: "a,b\r\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "delimiter only yields two empty cells",
			text: ",",
			want: [][]string{{"", ""}},
		},
		{
			name: "empty input yields no rows",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tokenizeRows(tt.text, ',')
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenizeRows() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTokenizeRows_TabDelimiter(t *testing.T) {
	t.Parallel()

	got := tokenizeRows("a\tb\nc\td", '\t')
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenizeRows() = %#v, want %#v", got, want)
	}
}

func TestSniffDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		cfg  ParserConfiguration
		want rune
	}{
		{
			name: "comma majority",
			text: "a,b,c\nd,e,f",
			cfg:  NewParserConfiguration(),
			want: ',',
		},
		{
			name: "tab majority",
			text: "a\tb\nc\td",
			cfg:  NewParserConfiguration(),
			want: '\t',
		},
		{
			name: "semicolon majority",
			text: "a;b;c",
			cfg:  NewParserConfiguration(),
			want: ';',
		},
		{
			name: "pinned delimiter wins over counts",
			text: "a,b,c\nd,e,f",
			cfg:  NewParserConfiguration().WithDelimiter(DelimiterSemicolon),
			want: ';',
		},
		{
			name: "comment line tie resolved by stripping",
			text: "#require;strict;mode\na,b\nc,d",
			cfg:  NewParserConfiguration(),
			want: ',',
		},
		{
			name: "no delimiters falls back to comma",
			text: "singlecolumn\nvalues",
			cfg:  NewParserConfiguration().WithLogger(discardLogger()),
			want: ',',
		},
		{
			name: "unresolvable tie falls back to comma",
			text: "a,b\tc",
			cfg:  NewParserConfiguration().WithLogger(discardLogger()),
			want: ',',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := sniffDelimiter(tt.text, tt.cfg); got != tt.want {
				t.Errorf("sniffDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRawDocument_Sections(t *testing.T) {
	t.Parallel()

	text := "[Header]\nA,1\n\n[Data]\nSample_ID,Index\nS1,ATCG"
	doc, err := parseRawDocument(text, NewParserConfiguration())
	if err != nil {
		t.Fatalf("parseRawDocument() error = %v", err)
	}

	if doc.Delimiter() != ',' {
		t.Errorf("Delimiter() = %q, want ','", doc.Delimiter())
	}
	if doc.SheetType() != model.SheetTypeSectioned {
		t.Errorf("SheetType() = %v, want sectioned", doc.SheetType())
	}

	sections := doc.Sections()
	if len(sections) != 2 {
		t.Fatalf("SectionCount() = %d, want 2", len(sections))
	}
	if sections[0].Name() != "header" {
		t.Errorf("first section name = %q, want %q", sections[0].Name(), "header")
	}
	if sections[1].Name() != "data" {
		t.Errorf("second section name = %q, want %q", sections[1].Name(), "data")
	}
	wantRows := [][]string{{"Sample_ID", "Index"}, {"S1", "ATCG"}}
	if !reflect.DeepEqual(sections[1].Rows(), wantRows) {
		t.Errorf("data rows = %#v, want %#v", sections[1].Rows(), wantRows)
	}
}

func TestParseRawDocument_Sectionless(t *testing.T) {
	t.Parallel()

	doc, err := parseRawDocument("SampleName,Index1\nS1,ATCG", NewParserConfiguration())
	if err != nil {
		t.Fatalf("parseRawDocument() error = %v", err)
	}
	if doc.SheetType() != model.SheetTypeSectionless {
		t.Errorf("SheetType() = %v, want sectionless", doc.SheetType())
	}
	sections := doc.Sections()
	if len(sections) != 1 || sections[0].Name() != "" {
		t.Fatalf("expected one unnamed section, got %d (first name %q)", len(sections), sections[0].Name())
	}
}

func TestParseRawDocument_SingleNamedSectionIsSectioned(t *testing.T) {
	t.Parallel()

	doc, err := parseRawDocument("[Samples]\nSampleName\nS1", NewParserConfiguration())
	if err != nil {
		t.Fatalf("parseRawDocument() error = %v", err)
	}
	if doc.SheetType() != model.SheetTypeSectioned {
		t.Errorf("SheetType() = %v, want sectioned", doc.SheetType())
	}
}

func TestParseRawDocument_CommentsAndEmptyLines(t *testing.T) {
	t.Parallel()

	t.Run("comment rows dropped", func(t *testing.T) {
		t.Parallel()
		doc, err := parseRawDocument("# exported 2024-05-01\na,b\nc,d", NewParserConfiguration())
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		if got := doc.Sections()[0].RowCount(); got != 2 {
			t.Errorf("RowCount() = %d, want 2", got)
		}
	})

	t.Run("custom comment prefix", func(t *testing.T) {
		t.Parallel()
		cfg := NewParserConfiguration().WithCommentPrefixes(";;")
		doc, err := parseRawDocument(";;note\na,b", cfg)
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		if got := doc.Sections()[0].RowCount(); got != 1 {
			t.Errorf("RowCount() = %d, want 1", got)
		}
	})

	t.Run("empty lines kept when configured", func(t *testing.T) {
		t.Parallel()
		cfg := NewParserConfiguration().WithIgnoreEmptyLines(false)
		doc, err := parseRawDocument("a,b\n\nc,d", cfg)
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		if got := doc.Sections()[0].RowCount(); got != 3 {
			t.Errorf("RowCount() = %d, want 3 including the empty row", got)
		}
	})
}

func TestParseRawDocument_SectionNameFolding(t *testing.T) {
	t.Parallel()

	t.Run("insensitive folds to lowercase", func(t *testing.T) {
		t.Parallel()
		doc, err := parseRawDocument("[RunValues]\nK,V", NewParserConfiguration())
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		if got := doc.Sections()[0].Name(); got != "runvalues" {
			t.Errorf("section name = %q, want %q", got, "runvalues")
		}
	})

	t.Run("sensitive keeps original casing", func(t *testing.T) {
		t.Parallel()
		cfg := NewParserConfiguration().WithSectionHeaderCase(CaseSensitive)
		doc, err := parseRawDocument("[RunValues]\nK,V", cfg)
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		if got := doc.Sections()[0].Name(); got != "RunValues" {
			t.Errorf("section name = %q, want %q", got, "RunValues")
		}
	})

	t.Run("marker row ignores trailing cells", func(t *testing.T) {
		t.Parallel()
		doc, err := parseRawDocument("[Data],,,,\nSample_ID\nS1", NewParserConfiguration())
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		if got := doc.Sections()[0].Name(); got != "data" {
			t.Errorf("section name = %q, want %q", got, "data")
		}
	})
}

func TestParseRawDocument_RequireSectionHeaders(t *testing.T) {
	t.Parallel()

	cfg := NewParserConfiguration().WithRequireSectionHeaders(true)
	_, err := parseRawDocument("loose,row\n[Data]\nSample_ID", cfg)
	if err == nil {
		t.Fatal("parseRawDocument() expected error for data before section header")
	}
	if !errors.Is(err, ErrFormatViolation) {
		t.Errorf("error %v should match ErrFormatViolation", err)
	}

	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("error %v should be a *FormatError", err)
	}
	if ferr.RowIndex != 1 {
		t.Errorf("RowIndex = %d, want 1", ferr.RowIndex)
	}
}

func TestParseRawDocument_ColumnConsistency(t *testing.T) {
	t.Parallel()

	t.Run("strict per section rejects a short row", func(t *testing.T) {
		t.Parallel()
		_, err := parseRawDocument("[Data]\na,b,c\nd,e,f\ng,h", NewParserConfiguration())
		if err == nil {
			t.Fatal("parseRawDocument() expected width violation")
		}
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Fatalf("error %v should be a *FormatError", err)
		}
		if ferr.SectionName != "data" || ferr.RowIndex != 3 || ferr.ExpectedWidth != 3 || ferr.ActualWidth != 2 {
			t.Errorf("FormatError = %+v, want section data row 3 expected 3 got 2", ferr)
		}
	})

	t.Run("strict per section allows different widths across sections", func(t *testing.T) {
		t.Parallel()
		_, err := parseRawDocument("[Header]\nA,1\n[Data]\na,b,c\nd,e,f", NewParserConfiguration())
		if err != nil {
			t.Errorf("parseRawDocument() error = %v, want nil", err)
		}
	})

	t.Run("strict per section exempts empty rows", func(t *testing.T) {
		t.Parallel()
		cfg := NewParserConfiguration().WithIgnoreEmptyLines(false)
		_, err := parseRawDocument("a,b\n\nc,d", cfg)
		if err != nil {
			t.Errorf("parseRawDocument() error = %v, want nil", err)
		}
	})

	t.Run("strict global rejects mismatched sections", func(t *testing.T) {
		t.Parallel()
		cfg := NewParserConfiguration().WithColumnConsistency(ColumnConsistencyStrictGlobal)
		_, err := parseRawDocument("[A]\na,b\n[B]\nc,d,e", cfg)
		if err == nil {
			t.Fatal("parseRawDocument() expected global width violation")
		}
		var ferr *FormatError
		if !errors.As(err, &ferr) {
			t.Fatalf("error %v should be a *FormatError", err)
		}
		if ferr.SectionName != "b" || ferr.RowIndex != 0 || ferr.ExpectedWidth != 2 || ferr.ActualWidth != 3 {
			t.Errorf("FormatError = %+v, want section b expected 2 got 3", ferr)
		}
	})

	t.Run("loose accepts ragged rows", func(t *testing.T) {
		t.Parallel()
		cfg := NewParserConfiguration().WithColumnConsistency(ColumnConsistencyLoose)
		doc, err := parseRawDocument("a,b,c\nd", cfg)
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		rows := doc.Sections()[0].Rows()
		if len(rows[1]) != 1 {
			t.Errorf("loose mode should leave short rows untouched, got %#v", rows[1])
		}
	})

	t.Run("pad silently grows short rows", func(t *testing.T) {
		t.Parallel()
		cfg := NewParserConfiguration().WithColumnConsistency(ColumnConsistencyPadSilently)
		doc, err := parseRawDocument("a,b,c\nd", cfg)
		if err != nil {
			t.Fatalf("parseRawDocument() error = %v", err)
		}
		want := [][]string{{"a", "b", "c"}, {"d", "", ""}}
		if !reflect.DeepEqual(doc.Sections()[0].Rows(), want) {
			t.Errorf("rows = %#v, want %#v", doc.Sections()[0].Rows(), want)
		}
	})
}

func TestParseRawDocument_PadWithWarningLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := NewParserConfiguration().
		WithColumnConsistency(ColumnConsistencyPadWithWarning).
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	doc, err := parseRawDocument("a,b,c\nd", cfg)
	if err != nil {
		t.Fatalf("parseRawDocument() error = %v", err)
	}
	if got := doc.Sections()[0].Rows()[1]; len(got) != 3 {
		t.Errorf("padded row = %#v, want width 3", got)
	}
	if !strings.Contains(buf.String(), "padded short rows") {
		t.Errorf("expected a padding warning in log output, got %q", buf.String())
	}

	buf.Reset()
	cfg = cfg.WithColumnConsistency(ColumnConsistencyPadSilently)
	if _, err := parseRawDocument("a,b,c\nd", cfg); err != nil {
		t.Fatalf("parseRawDocument() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("pad silently should not log, got %q", buf.String())
	}
}

func TestParseRawDocument_EmptyInput(t *testing.T) {
	t.Parallel()

	doc, err := parseRawDocument("", NewParserConfiguration())
	if err != nil {
		t.Fatalf("parseRawDocument() error = %v", err)
	}
	if doc.SheetType() != model.SheetTypeSectionless {
		t.Errorf("SheetType() = %v, want sectionless", doc.SheetType())
	}
	if doc.SectionCount() != 1 {
		t.Errorf("SectionCount() = %d, want 1", doc.SectionCount())
	}
	if got := doc.Sections()[0].RowCount(); got != 0 {
		t.Errorf("RowCount() = %d, want 0", got)
	}
}
