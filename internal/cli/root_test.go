package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "trs", cmd.Use)
	assert.Contains(t, cmd.Long, "Knuth-Bendix")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"parse", "unify", "reduce", "complete", "history", "validate", "test"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestCompleteCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	complete, _, err := cmd.Find([]string{"complete"})
	require.NoError(t, err)

	for flag, def := range map[string]string{
		"db":          "",
		"strategy":    "huet",
		"max-steps":   "10000",
		"metrics-out": "",
		"problem":     "",
	} {
		f := complete.Flags().Lookup(flag)
		require.NotNil(t, f, flag)
		assert.Equal(t, def, f.DefValue, flag)
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, NewRootCommand(), "--format", "xml", "parse", "-s", "e/0", "e")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootDispatchesWithFormat(t *testing.T) {
	out, err := execute(t, NewRootCommand(), "--format", "json", "parse", "-s", "f/2 e/0", "f(e,x)")
	require.NoError(t, err)

	var parsed []ParsedTerm
	resp := decodeResponse(t, out, &parsed)
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, parsed, 1)
	assert.Equal(t, "f(e,x)", parsed[0].Term)
}
