package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/gradekeeper/internal/config"
	"github.com/jeanpaul/gradekeeper/internal/record"
	"github.com/jeanpaul/gradekeeper/internal/roster"
)

func testEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataFile = filepath.Join(dir, "students.json")
	cfg.Log.File = filepath.Join(dir, "gradekeeper.log")

	e, err := newEnv(cfg)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func seed(t *testing.T, e *env, students ...*record.Student) {
	t.Helper()
	s := roster.New()
	for _, st := range students {
		s.Add(st)
	}
	_, err := s.Save(e.cfg.DataFile)
	require.NoError(t, err)
}

func ada() *record.Student {
	s := record.New("Ada", "S1")
	s.AddCourse("Math", 90)
	s.AddCourse("CS", 80)
	return s
}

func TestCmdList_Plain(t *testing.T) {
	e := testEnv(t)
	seed(t, e, ada())

	var out bytes.Buffer
	require.NoError(t, cmdList(e, &out, []string{"-plain"}))
	assert.Contains(t, out.String(), "Name: Ada")
	assert.Contains(t, out.String(), "GPA: 85")
}

func TestCmdList_NoFile(t *testing.T) {
	e := testEnv(t)

	var out bytes.Buffer
	require.NoError(t, cmdList(e, &out, []string{"-plain"}))
	assert.Contains(t, out.String(), "Starting with an empty list.")
	assert.Contains(t, out.String(), "No students available.")
}

func TestCmdList_Malformed(t *testing.T) {
	e := testEnv(t)
	require.NoError(t, os.WriteFile(e.cfg.DataFile, []byte("{"), 0644))

	err := cmdList(e, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, roster.ErrMalformedRoster)
}

func TestCmdExportImport(t *testing.T) {
	e := testEnv(t)
	seed(t, e, ada())
	xlsx := filepath.Join(t.TempDir(), "grades.xlsx")

	var out bytes.Buffer
	require.NoError(t, cmdExport(e, &out, []string{xlsx}))
	assert.Contains(t, out.String(), "Exported 1 student(s)")
	assert.FileExists(t, xlsx)

	// import into a fresh data file
	e2 := testEnv(t)
	out.Reset()
	require.NoError(t, cmdImport(e2, &out, []string{xlsx}))
	assert.Contains(t, out.String(), "Imported 1 student(s) from 1 file(s)")

	loaded := roster.New()
	_, err := loaded.Load(e2.cfg.DataFile)
	require.NoError(t, err)
	st, res := loaded.Find("S1")
	require.True(t, res.OK())
	assert.Equal(t, ada().Courses, st.Courses)
}

func TestCmdImport_MergeAndDryRun(t *testing.T) {
	e := testEnv(t)
	seed(t, e, ada())
	xlsx := filepath.Join(t.TempDir(), "more.xlsx")
	require.NoError(t, cmdExport(e, &bytes.Buffer{}, []string{xlsx}))

	before, err := os.ReadFile(e.cfg.DataFile)
	require.NoError(t, err)

	e2 := &env{cfg: e.cfg, log: e.log, store: roster.New()}
	var out bytes.Buffer
	require.NoError(t, cmdImport(e2, &out, []string{"-merge", "-dry-run", xlsx}))
	assert.Contains(t, out.String(), "+")

	after, err := os.ReadFile(e.cfg.DataFile)
	require.NoError(t, err)
	assert.Equal(t, before, after, "dry run must not write")

	e3 := &env{cfg: e.cfg, log: e.log, store: roster.New()}
	require.NoError(t, cmdImport(e3, &bytes.Buffer{}, []string{"-merge", xlsx}))

	loaded := roster.New()
	_, err = loaded.Load(e.cfg.DataFile)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}

func TestCmdExport_Usage(t *testing.T) {
	e := testEnv(t)
	assert.Error(t, cmdExport(e, &bytes.Buffer{}, nil))
	assert.Error(t, cmdExport(e, &bytes.Buffer{}, []string{"grades.csv"}))
}

func TestCmdConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	var out bytes.Buffer
	require.NoError(t, cmdConfig(&out, []string{"init", path}))
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), path)

	assert.Error(t, cmdConfig(&out, []string{"init", path}))
	assert.Error(t, cmdConfig(&out, nil))
}
