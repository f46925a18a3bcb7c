package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
name: spim
text_base: 4194304
max_errors: 10
format: listing
`)
	prof, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, &AsmProfile{Name: "spim", TextBase: 0x00400000, MaxErrors: 10, Format: FormatListing}, prof)
}

func TestLoadProfileDefaults(t *testing.T) {
	prof, err := LoadProfile(writeProfile(t, `name: bare`))
	require.NoError(t, err)
	assert.Equal(t, FormatText, prof.Format)
	assert.Equal(t, uint32(0), prof.TextBase)
}

func TestLoadProfileJSON(t *testing.T) {
	prof, err := LoadProfile(writeProfile(t, `{"name": "json", "format": "json", "text_base": 64}`))
	require.NoError(t, err)
	assert.Equal(t, "json", prof.Name)
	assert.Equal(t, uint32(64), prof.TextBase)
}

func TestLoadProfileErrors(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open profile")

	_, err = LoadProfile(writeProfile(t, "text_base: [1, 2]"))
	assert.ErrorContains(t, err, "failed to parse profile")

	_, err = LoadProfile(writeProfile(t, "text_base: 6"))
	assert.ErrorContains(t, err, "not a multiple of 4")

	_, err = LoadProfile(writeProfile(t, "format: srec"))
	assert.ErrorContains(t, err, "unknown format")

	_, err = LoadProfile(writeProfile(t, "max_errors: -1"))
	assert.ErrorContains(t, err, "max_errors")
}

func TestLoadProfileEmptyFile(t *testing.T) {
	prof, err := LoadProfile(writeProfile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), prof)
}

func TestLoadBundledProfile(t *testing.T) {
	prof, err := LoadProfile("spim.yaml")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00400000), prof.TextBase)
	assert.Equal(t, 20, prof.MaxErrors)
}
