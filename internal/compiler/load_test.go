package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "group.cue")
	require.NoError(t, os.WriteFile(path, []byte(groupSource), 0o644))

	specs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "group", specs[0].Name)

	p, err := Build(specs[0])
	require.NoError(t, err)
	assert.Len(t, p.Identities, 3)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.cue"))
	assert.Error(t, err)
}

func TestLoadSource_SyntaxError(t *testing.T) {
	_, err := LoadSource("bad.cue", []byte(`problem: p: {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.cue")
}
