package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Text(t *testing.T) {
	out, err := execute(t, NewParseCommand(textOpts()), "-s", "f/2 i/1 e/0", "f(x, i(x))")
	require.NoError(t, err)
	assert.Equal(t, "f(x,i(x))\n  size: 4\n  variables: x\n", out)
}

func TestParseCommand_GroundTermHasNoVariables(t *testing.T) {
	out, err := execute(t, NewParseCommand(textOpts()), "-s", "f/2 e/0", "f(e,e)")
	require.NoError(t, err)
	assert.NotContains(t, out, "variables")
}

func TestParseCommand_JSONPositions(t *testing.T) {
	out, err := execute(t, NewParseCommand(jsonOpts()), "-s", "f/2 e/0", "--positions", "f(e,x)", "y")
	require.NoError(t, err)

	var parsed []ParsedTerm
	decodeResponse(t, out, &parsed)
	require.Len(t, parsed, 2)

	assert.Equal(t, "f(e,x)", parsed[0].Term)
	assert.Equal(t, 3, parsed[0].Size)
	assert.Equal(t, []string{"x"}, parsed[0].Variables)
	assert.Equal(t, []TermPosition{
		{Position: "ε", Subterm: "f(e,x)"},
		{Position: "1", Subterm: "e"},
		{Position: "2", Subterm: "x"},
	}, parsed[0].Positions)

	assert.Equal(t, "y", parsed[1].Term)
	assert.Equal(t, []string{"y"}, parsed[1].Variables)
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"bad signature", []string{"-s", "f/x", "f(a)"}, ErrCodeSignature},
		{"duplicate symbol", []string{"-s", "f/1 f/2", "f(a)"}, ErrCodeSignature},
		{"unbalanced", []string{"-s", "f/2 e/0", "f(e,e"}, ErrCodeParse},
		{"arity", []string{"-s", "f/2 e/0", "f(e)"}, ErrCodeParse},
		{"undeclared precedence", []string{"-s", "f/2", "--precedence", "g", "f(x,y)"}, ErrCodeSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewParseCommand(jsonOpts()), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestParseCommand_RequiresSignature(t *testing.T) {
	_, err := execute(t, NewParseCommand(textOpts()), "f(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature")
}
