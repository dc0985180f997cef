package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trs/internal/compiler"
)

func TestValidateValidProblems(t *testing.T) {
	out, err := execute(t, NewValidateCommand(textOpts()), filepath.Join("testdata", "problems"))
	require.NoError(t, err)
	assert.Equal(t, "✓ All problems valid (2)\n", out)
}

func TestValidateValidProblemsJSON(t *testing.T) {
	out, err := execute(t, NewValidateCommand(jsonOpts()), filepath.Join("testdata", "problems", "group.cue"))
	require.NoError(t, err)

	var res ValidationResult
	resp := decodeResponse(t, out, &res)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"group", "tiny"}, res.Problems)
}

func TestValidateInvalidProblem(t *testing.T) {
	out, err := execute(t, NewValidateCommand(textOpts()), filepath.Join("testdata", "invalid"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "problem arity")
	assert.Contains(t, out, compiler.ErrInvalidIdentity)
}

func TestValidateInvalidProblemJSON(t *testing.T) {
	out, err := execute(t, NewValidateCommand(jsonOpts()), filepath.Join("testdata", "invalid"))
	require.Error(t, err)

	var res ValidationResult
	resp := decodeResponse(t, out, &res)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, compiler.ErrInvalidIdentity, resp.Error.Code)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "arity", res.Errors[0].Problem)
}

func TestValidateLoadErrors(t *testing.T) {
	emptyDir := t.TempDir()

	schemaDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(schemaDir, "p.cue"), []byte(`problem: p: {
	signature: ["f/2"]
	identities: ["f(x,y) = f(y,x)"]
	precedense: ["f"]
}`), 0o644))

	syntaxDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(syntaxDir, "p.cue"), []byte(`problem: {`), 0o644))

	tests := []struct {
		name string
		path string
		code string
	}{
		{"not found", filepath.Join(emptyDir, "missing"), ErrCodeNotFound},
		{"no files", emptyDir, ErrCodeNoFiles},
		{"unknown field", schemaDir, ""},
		{"syntax error", syntaxDir, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewValidateCommand(jsonOpts()), tt.path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			require.NotNil(t, resp.Error)
			if tt.code != "" {
				assert.Equal(t, tt.code, resp.Error.Code)
			}
		})
	}
}
