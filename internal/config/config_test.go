package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultDataFile verifies students.json is the default
func TestDefaultDataFile(t *testing.T) {
	cfg := DefaultConfig()
	expected := "students.json"

	if cfg.DataFile != expected {
		t.Errorf("Default data file = %q, want %q", cfg.DataFile, expected)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.False(t, DefaultConfig().AutosaveOnExit)
}

func TestLoadWith_NoFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWith(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "students.json", cfg.DataFile)
	assert.Equal(t, "Grades", cfg.Export.Sheet)
}

func TestLoadWith_File(t *testing.T) {
	dir := t.TempDir()
	yml := `data_file: roster/grades.json
theme: amber
autosave_on_exit: true
log:
  level: debug
  file: ""
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0644))

	cfg, err := LoadWith(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "roster/grades.json", cfg.DataFile)
	assert.Equal(t, "amber", cfg.Theme)
	assert.True(t, cfg.AutosaveOnExit)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, "Grades", cfg.Export.Sheet)
}

func TestLoadWith_EnvOverride(t *testing.T) {
	t.Setenv("GRADEKEEPER_DATA_FILE", "from-env.json")
	t.Setenv("GRADEKEEPER_LOG_LEVEL", "warn")

	cfg, err := LoadWith(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.DataFile)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadWith_ExpandsEnvInPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GK_TEST_ROOT", "/srv/grades")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("data_file: $GK_TEST_ROOT/students.json\n"), 0644))

	cfg, err := LoadWith(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/grades/students.json", cfg.DataFile)
}

func TestLoadWith_InvalidTheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: purple\n"), 0644))

	_, err := LoadWith(viper.New(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataFile = " "
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Export.Sheet = ""
	assert.Error(t, cfg.Validate())
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gk", "config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := LoadWith(viper.New(), filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// refuses to clobber
	assert.Error(t, WriteDefault(path))
}
