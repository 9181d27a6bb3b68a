package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "<stdin>", displayName("-"))
	assert.Equal(t, "foo.sql", displayName("foo.sql"))
}

func TestProcessFilesSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")

	content := "-- @query q()\nselect 1;\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := processFiles([]string{path})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(docs))
	assert.Equal(t, path, docs[0].Filename)
}

func TestProcessFilesReturnsFileDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sql")

	content := "-- @query q()\nselect * from t where id = :id;\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := processFiles([]string{path})
	assert.Error(t, err)

	var fd *fileDiagnostic
	assert.True(t, asFileDiagnostic(err, &fd))
	assert.Equal(t, path, fd.filename)
}

func TestProcessFilesRejectsDoubleStdin(t *testing.T) {
	_, err := processFiles([]string{"-", "-"})
	assert.Error(t, err)
	assert.Equal(t, ErrMultipleStdin, err)
}

func asFileDiagnostic(err error, target **fileDiagnostic) bool {
	fd, ok := err.(*fileDiagnostic)
	if !ok {
		return false
	}

	*target = fd

	return true
}
