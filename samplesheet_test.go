package samplesheet

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/samplesheet/domain/model"
)

// avitiFixtureSheet builds the sheet used by the file round-trip tests.
func avitiFixtureSheet(t *testing.T) *model.AvitiSampleSheet {
	t.Helper()
	runValues := model.NewCaseInsensitiveMap()
	runValues.Set("RunName", "Run001")
	settings := []model.AvitiSetting{model.NewAvitiSetting("Adapter", "ATCG")}
	s1, err := model.NewAvitiSample("S1", "ATCGATCG", "GGTTCCAA")
	require.NoError(t, err)
	s2, err := model.NewAvitiSample("S2", "TTGGCCAA", "")
	require.NoError(t, err)
	return model.NewAvitiSampleSheet(runValues, settings, []model.AvitiSample{s1, s2})
}

func TestParseAvitiReader(t *testing.T) {
	t.Parallel()

	sheet, err := ParseAvitiReader(strings.NewReader("[Samples]\nSampleName,Index1\nS1,ATCG"))
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.SampleCount())
}

func TestParseAvitiReader_ReadFailure(t *testing.T) {
	t.Parallel()

	broken := errors.New("disk gone")
	_, err := ParseAvitiReader(iotest.ErrReader(broken))
	require.ErrorIs(t, err, broken)
}

func TestParseIlluminaV1Reader(t *testing.T) {
	t.Parallel()

	sheet, err := ParseIlluminaV1Reader(strings.NewReader("[Data]\nSample_ID\nS1"))
	require.NoError(t, err)
	assert.Equal(t, 1, sheet.SampleCount())
}

func TestParseAvitiFile_RoundTrips(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".csv", ".csv.gz", ".csv.xz", ".csv.zst"} {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()
			sheet := avitiFixtureSheet(t)
			path := filepath.Join(t.TempDir(), "sheet"+ext)
			require.NoError(t, WriteAvitiToFile(sheet, path))

			parsed, err := ParseAvitiFile(path)
			require.NoError(t, err)
			assert.True(t, parsed.Equal(sheet), "sheet should survive the %s round trip", ext)
		})
	}
}

func TestParseAvitiFile_TabSeparated(t *testing.T) {
	t.Parallel()

	sheet := avitiFixtureSheet(t)
	path := filepath.Join(t.TempDir(), "sheet.tsv")
	require.NoError(t, WriteAvitiToFile(sheet, path, NewWriterConfiguration().WithDelimiter(DelimiterTab)))

	parsed, err := ParseAvitiFile(path)
	require.NoError(t, err, "the sniffer should recognize the tab delimiter")
	assert.True(t, parsed.Equal(sheet))
}

func TestParseAvitiFile_Bzip2(t *testing.T) {
	t.Parallel()

	sheet, err := ParseAvitiFile(filepath.Join("testdata", "aviti.csv.bz2"))
	require.NoError(t, err)
	require.Equal(t, 2, sheet.SampleCount())
	assert.Equal(t, "S1", sheet.Samples()[0].SampleName())
	assert.Equal(t, "", sheet.Samples()[1].Index2())
}

func TestParseAvitiFile_Plain(t *testing.T) {
	t.Parallel()

	sheet, err := ParseAvitiFile(filepath.Join("testdata", "aviti.csv"))
	require.NoError(t, err)
	assert.Equal(t, 2, sheet.SampleCount())
}

func TestParseIlluminaV1File_RoundTrip(t *testing.T) {
	t.Parallel()

	header := model.NewIlluminaHeader().WithField("Workflow", "GenerateFASTQ")
	sample, err := model.NewIlluminaSample("S1")
	require.NoError(t, err)
	sample = sample.WithSampleName("First").WithIndex("ATCGATCG")
	sheet := model.NewIlluminaV1SampleSheet(&header, []int{151}, nil, []model.IlluminaSample{sample})

	path := filepath.Join(t.TempDir(), "SampleSheet.csv.gz")
	require.NoError(t, WriteIlluminaV1ToFile(sheet, path))

	parsed, err := ParseIlluminaV1File(path)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(sheet))
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := ParseAvitiFile("sheet.json")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseIlluminaV1File("sheet.txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseAvitiFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ParseAvitiFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestWriteAvitiToFile_Bzip2Unsupported(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sheet.csv.bz2")
	err := WriteAvitiToFile(avitiFixtureSheet(t), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bzip2")
}

func TestWriteAvitiToFile_ParquetUnsupported(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sheet.parquet")
	err := WriteAvitiToFile(avitiFixtureSheet(t), path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseAviti_FirstConfigurationWins(t *testing.T) {
	t.Parallel()

	strict := NewParserConfiguration().WithRequireSectionHeaders(true)
	lenient := NewParserConfiguration()
	text := "SampleName,Index1\nS1,ATCG"

	_, err := ParseAviti(text, strict, lenient)
	require.ErrorIs(t, err, ErrFormatViolation, "only the first configuration applies")

	_, err = ParseAviti(text, lenient, strict)
	require.NoError(t, err)
}
