package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceCommand_NormalForm(t *testing.T) {
	out, err := execute(t, NewReduceCommand(textOpts()),
		"-s", "f/2 i/1 e/0",
		"-r", "f(e,x) = x",
		"-r", "i(i(x)) = x",
		"f(e,i(i(y)))",
	)
	require.NoError(t, err)
	assert.Equal(t, "f(e,i(i(y))) →* y\n", out)
}

func TestReduceCommand_OrientsRules(t *testing.T) {
	// Written right to left; the path ordering turns it around.
	out, err := execute(t, NewReduceCommand(jsonOpts()), "-s", "f/2 e/0", "-r", "x = f(e,x)", "f(e,e)")
	require.NoError(t, err)

	var res ReduceResult
	decodeResponse(t, out, &res)
	assert.Equal(t, []string{"f(e,x) → x"}, res.Rules)
	assert.Equal(t, "e", res.NormalForm)
}

func TestReduceCommand_Steps(t *testing.T) {
	out, err := execute(t, NewReduceCommand(jsonOpts()),
		"-s", "f/2 i/1 e/0",
		"-r", "f(e,x) = x",
		"-r", "i(e) = e",
		"--steps",
		"f(e,i(e))",
	)
	require.NoError(t, err)

	var res ReduceResult
	decodeResponse(t, out, &res)
	assert.Equal(t, []Reduct{
		{Position: "2", Rule: "i(e) → e", Result: "f(e,e)"},
		{Position: "ε", Rule: "f(e,x) → x", Result: "i(e)"},
	}, res.Reducts)
}

func TestReduceCommand_StepsOnNormalForm(t *testing.T) {
	out, err := execute(t, NewReduceCommand(textOpts()), "-s", "f/2 e/0", "-r", "f(e,x) = x", "--steps", "f(x,e)")
	require.NoError(t, err)
	assert.Equal(t, "f(x,e) is in normal form\n", out)
}

func TestReduceCommand_AllNormalForms(t *testing.T) {
	// f(x,x) → a and f(x,y) → b overlap at the root: f(c,c) has both.
	out, err := execute(t, NewReduceCommand(jsonOpts()),
		"-s", "f/2 a/0 b/0 c/0",
		"-r", "f(x,x) = a",
		"-r", "f(x,y) = b",
		"--all",
		"f(c,c)",
	)
	require.NoError(t, err)

	var res ReduceResult
	decodeResponse(t, out, &res)
	assert.ElementsMatch(t, []string{"a", "b"}, res.NormalForms)
}

func TestReduceCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unorientable rule", []string{"-s", "f/2", "-r", "f(x,y) = f(y,x)", "f(a,b)"}, ErrCodeUnorientable},
		{"bad rule text", []string{"-s", "f/2", "-r", "f(x,y)", "f(x,y)"}, ErrCodeParse},
		{"bad term", []string{"-s", "f/2", "f(x"}, ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewReduceCommand(jsonOpts()), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestReduceCommand_StepsAndAllExclusive(t *testing.T) {
	_, err := execute(t, NewReduceCommand(textOpts()), "-s", "e/0", "--steps", "--all", "e")
	require.Error(t, err)
}
