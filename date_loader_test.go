package intl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatePatternFiles(t *testing.T) {
	patterns, err := LoadDatePatternFiles(
		filepath.Join("testdata", "date_patterns.yaml"),
		filepath.Join("testdata", "date_patterns.json"),
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"en":    "y-MM-dd",
		"en-IE": "d/M/y",
		"bg":    "d.MM.y 'г'.",
		"de":    "dd.MM.y",
		"pt-BR": "dd/MM/y",
	}, patterns)
}

func TestLoadDatePatternFilesLaterWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.yml")
	require.NoError(t, os.WriteFile(first, []byte(`{"patterns": {"de": "d.M.y"}}`), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("de: dd.MM.y\n"), 0o600))

	patterns, err := LoadDatePatternFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, "dd.MM.y", patterns["de"])
}

func TestLoadDatePatternFilesErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"invalid.json": `{"en": "EEEE d MMMM"}`,
		"empty.json":   `{}`,
		"broken.yaml":  "patterns: [",
		"blank.yaml":   `{" ": "d/M/y"}`,
		"patterns.txt": "en=d/M/y",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		_, err := LoadDatePatternFiles(path)
		assert.Error(t, err, name)
	}

	_, err := LoadDatePatternFiles(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDateFormatterWithLoadedPatterns(t *testing.T) {
	patterns, err := LoadDatePatternFiles(filepath.Join("testdata", "date_patterns.yaml"))
	require.NoError(t, err)

	formatter, err := NewDateFormatter(WithDatePatterns(patterns))
	require.NoError(t, err)

	got, err := formatter.FormatDateNumeric(sampleDate, utcConfig("en", DateFormatLanguage))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", got)
}
