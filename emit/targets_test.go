package emit

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/annosql/annosql/ast"
)

func TestLookupDebugTarget(t *testing.T) {
	target, ok := Lookup("debug")
	assert.True(t, ok)

	out, err := target.Run([]ast.NamedDocument{})
	assert.NoError(t, err)
	assert.True(t, len(out) > 0)
}

func TestLookupUnknownTarget(t *testing.T) {
	_, ok := Lookup("does-not-exist")
	assert.False(t, ok)
}

func TestUnimplementedTargetReturnsError(t *testing.T) {
	target, ok := Lookup("rust-sqlite")
	assert.True(t, ok)

	_, err := target.Run(nil)
	assert.Error(t, err)
}

func TestHelpTextListsAllTargets(t *testing.T) {
	text := HelpText()
	assert.Contains(t, text, "debug")
	assert.Contains(t, text, "rust-sqlite")
	assert.Contains(t, text, "python-sqlite")
	assert.Contains(t, text, "python-psycopg2")
}
