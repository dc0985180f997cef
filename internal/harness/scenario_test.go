package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Inline(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/tiny.yaml")
	require.NoError(t, err)

	assert.Equal(t, "tiny", sc.Name)
	assert.Equal(t, []string{"f/1", "a/0", "b/0"}, sc.Signature)
	assert.Equal(t, []string{"f(a) = b"}, sc.Identities)
	require.Len(t, sc.Assertions, 4)
	assert.Equal(t, AssertStepCount, sc.Assertions[3].Type)
	assert.Equal(t, "orient", sc.Assertions[3].Kind)
}

func TestLoadScenario_ProblemReference(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/group.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"f/2", "i/1", "e/0"}, sc.Signature)
	assert.Empty(t, sc.Precedence)
	assert.Len(t, sc.Identities, 3)
}

func TestLoadScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, sc := range scenarios {
		names[i] = sc.Name
	}
	assert.Equal(t, []string{"assoc_naive", "commutative", "divergent", "group", "tiny"}, names)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown field",
			content: `name: x
description: d
signature: [f/1]
identities: ["f(x) = x"]
assertion:
  - type: outcome
    state: saturated
`,
			wantErr: "assertion",
		},
		{
			name: "missing description",
			content: `name: x
signature: [f/1]
identities: ["f(x) = x"]
assertions: [{type: outcome, state: saturated}]
`,
			wantErr: "description is required",
		},
		{
			name: "missing identities",
			content: `name: x
description: d
signature: [f/1]
assertions: [{type: outcome, state: saturated}]
`,
			wantErr: "identities",
		},
		{
			name: "unknown assertion",
			content: `name: x
description: d
signature: [f/1]
identities: ["f(x) = x"]
assertions: [{type: trace_order}]
`,
			wantErr: "unknown assertion type",
		},
		{
			name: "bad outcome",
			content: `name: x
description: d
signature: [f/1]
identities: ["f(x) = x"]
assertions: [{type: outcome, state: done}]
`,
			wantErr: "state must be",
		},
		{
			name: "joinable without right",
			content: `name: x
description: d
signature: [f/1]
identities: ["f(x) = x"]
assertions: [{type: joinable, left: "f(x)"}]
`,
			wantErr: "left and right",
		},
		{
			name: "problem and inline identities",
			content: `name: x
description: d
problem: missing.cue
identities: ["f(x) = x"]
assertions: [{type: outcome, state: saturated}]
`,
			wantErr: "inline",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
