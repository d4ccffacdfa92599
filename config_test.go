package samplesheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelimiterString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delimiter Delimiter
		want      string
	}{
		{DelimiterAuto, "auto"},
		{DelimiterComma, "comma"},
		{DelimiterTab, "tab"},
		{DelimiterSemicolon, "semicolon"},
		{Delimiter(99), "auto"},
	}
	for _, tt := range tests {
		if got := tt.delimiter.String(); got != tt.want {
			t.Errorf("Delimiter.String() = %v, want %v", got, tt.want)
		}
	}
}

func TestDelimiterRune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delimiter Delimiter
		want      rune
	}{
		{DelimiterAuto, 0},
		{DelimiterComma, ','},
		{DelimiterTab, '\t'},
		{DelimiterSemicolon, ';'},
	}
	for _, tt := range tests {
		if got := tt.delimiter.Rune(); got != tt.want {
			t.Errorf("Delimiter.Rune() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Delimiter
		wantErr bool
	}{
		{"auto", DelimiterAuto, false},
		{"comma", DelimiterComma, false},
		{"tab", DelimiterTab, false},
		{"semicolon", DelimiterSemicolon, false},
		{"pipe", DelimiterAuto, true},
	}
	for _, tt := range tests {
		got, err := parseDelimiter(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDelimiter(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDelimiter(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCaseModeFold(t *testing.T) {
	t.Parallel()

	if got := CaseInsensitive.Fold("RunValues"); got != "runvalues" {
		t.Errorf("CaseInsensitive.Fold() = %v, want runvalues", got)
	}
	if got := CaseSensitive.Fold("RunValues"); got != "RunValues" {
		t.Errorf("CaseSensitive.Fold() = %v, want RunValues", got)
	}
}

func TestParseCaseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    CaseMode
		wantErr bool
	}{
		{"insensitive", CaseInsensitive, false},
		{"sensitive", CaseSensitive, false},
		{"exact", CaseInsensitive, true},
	}
	for _, tt := range tests {
		got, err := parseCaseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseCaseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCaseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestColumnConsistencyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy ColumnConsistency
		want   string
	}{
		{ColumnConsistencyStrictPerSection, "strictPerSection"},
		{ColumnConsistencyStrictGlobal, "strictGlobal"},
		{ColumnConsistencyLoose, "loose"},
		{ColumnConsistencyPadWithWarning, "padWithWarning"},
		{ColumnConsistencyPadSilently, "padSilently"},
		{ColumnConsistency(99), "strictPerSection"},
	}
	for _, tt := range tests {
		if got := tt.policy.String(); got != tt.want {
			t.Errorf("ColumnConsistency.String() = %v, want %v", got, tt.want)
		}
	}
}

func TestParseColumnConsistency(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"strictPerSection", "strictGlobal", "loose", "padWithWarning", "padSilently"} {
		policy, err := parseColumnConsistency(name)
		if err != nil {
			t.Errorf("parseColumnConsistency(%q) unexpected error: %v", name, err)
			continue
		}
		if got := policy.String(); got != name {
			t.Errorf("parseColumnConsistency(%q).String() = %v, want round trip", name, got)
		}
	}
	if _, err := parseColumnConsistency("lenient"); err == nil {
		t.Error("parseColumnConsistency(lenient) expected error, got nil")
	}
}

func TestNewParserConfiguration_Defaults(t *testing.T) {
	t.Parallel()

	cfg := NewParserConfiguration()
	assert.Equal(t, DelimiterAuto, cfg.Delimiter)
	assert.False(t, cfg.RequireSectionHeaders)
	assert.True(t, cfg.IgnoreEmptyLines)
	assert.Equal(t, []string{"#"}, cfg.CommentPrefixes)
	assert.Equal(t, CaseInsensitive, cfg.SectionHeaderCase)
	assert.Equal(t, CaseInsensitive, cfg.ColumnHeaderCase)
	assert.Equal(t, CaseInsensitive, cfg.KeyCase)
	assert.Equal(t, ColumnConsistencyStrictPerSection, cfg.ColumnConsistency)
	assert.Nil(t, cfg.Logger)
}

func TestParserConfiguration_WithDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := NewParserConfiguration()
	modified := base.
		WithDelimiter(DelimiterTab).
		WithRequireSectionHeaders(true).
		WithCommentPrefixes("//", ";")

	assert.Equal(t, DelimiterAuto, base.Delimiter, "the base configuration must stay untouched")
	assert.Equal(t, []string{"#"}, base.CommentPrefixes)
	assert.Equal(t, DelimiterTab, modified.Delimiter)
	assert.True(t, modified.RequireSectionHeaders)
	assert.Equal(t, []string{"//", ";"}, modified.CommentPrefixes)
}

func TestParserConfigurationFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("full document", func(t *testing.T) {
		t.Parallel()
		data := []byte(`delimiter: semicolon
requireSectionHeaders: true
ignoreEmptyLines: false
commentPrefixes:
  - "//"
  - ";"
sectionHeaderCase: sensitive
columnHeaderCase: sensitive
keyCase: sensitive
columnConsistency: padSilently
`)
		cfg, err := ParserConfigurationFromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, DelimiterSemicolon, cfg.Delimiter)
		assert.True(t, cfg.RequireSectionHeaders)
		assert.False(t, cfg.IgnoreEmptyLines)
		assert.Equal(t, []string{"//", ";"}, cfg.CommentPrefixes)
		assert.Equal(t, CaseSensitive, cfg.SectionHeaderCase)
		assert.Equal(t, CaseSensitive, cfg.ColumnHeaderCase)
		assert.Equal(t, CaseSensitive, cfg.KeyCase)
		assert.Equal(t, ColumnConsistencyPadSilently, cfg.ColumnConsistency)
	})

	t.Run("absent keys keep defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParserConfigurationFromYAML([]byte("delimiter: tab\n"))
		require.NoError(t, err)
		assert.Equal(t, DelimiterTab, cfg.Delimiter)
		assert.True(t, cfg.IgnoreEmptyLines)
		assert.Equal(t, []string{"#"}, cfg.CommentPrefixes)
		assert.Equal(t, ColumnConsistencyStrictPerSection, cfg.ColumnConsistency)
	})

	t.Run("empty input yields defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParserConfigurationFromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, NewParserConfiguration(), cfg)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParserConfigurationFromYAML([]byte("speed: fast\n"))
		require.Error(t, err)
	})

	t.Run("unknown enum values are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := ParserConfigurationFromYAML([]byte("delimiter: pipe\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown delimiter")

		_, err = ParserConfigurationFromYAML([]byte("columnConsistency: lenient\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown column consistency")
	})
}

func TestLoadParserConfiguration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "samplesheet.yml")
	require.NoError(t, os.WriteFile(path, []byte("delimiter: comma\ncolumnConsistency: padWithWarning\n"), 0o600))

	cfg, err := LoadParserConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, DelimiterComma, cfg.Delimiter)
	assert.Equal(t, ColumnConsistencyPadWithWarning, cfg.ColumnConsistency)
}

func TestLoadParserConfiguration_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadParserConfiguration(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration file")
}
