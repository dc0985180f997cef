package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trs/internal/ir"
)

const groupSource = `
problem: group: {
	description: "group axioms, right inverse"
	signature:   ["f/2", "i/1", "e/0"]
	precedence:  ["i", "f", "e"]
	identities: [
		"f(f(x,y),z) = f(x,f(y,z))",
		"f(x,i(x)) = e",
		"f(e,x) = x",
	]
	max_steps: 5000
}

problem: assoc: {
	signature:  ["f/2"]
	identities: ["f(f(x,y),z) = f(x,f(y,z))"]
	strategy:   "naive"
}
`

func compile(t *testing.T, src string) cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return v
}

func TestCompileProblemBasic(t *testing.T) {
	v := compile(t, groupSource)

	spec, err := CompileProblem(v.LookupPath(cue.ParsePath("problem.group")))
	require.NoError(t, err)

	assert.Equal(t, "group", spec.Name)
	assert.Equal(t, "group axioms, right inverse", spec.Description)
	assert.Equal(t, []string{"f/2", "i/1", "e/0"}, spec.Signature)
	assert.Equal(t, []string{"i", "f", "e"}, spec.Precedence)
	assert.Len(t, spec.Identities, 3)
	assert.Equal(t, "f(e,x) = x", spec.Identities[2])
	assert.Equal(t, int64(5000), spec.MaxSteps)
	assert.Empty(t, spec.Strategy)
}

func TestCompileProblems_DeclarationOrder(t *testing.T) {
	specs, err := CompileProblems(compile(t, groupSource))
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "group", specs[0].Name)
	assert.Equal(t, "assoc", specs[1].Name)
	assert.Equal(t, ir.StrategyNaive, specs[1].Strategy)
	assert.Nil(t, specs[1].Precedence)
}

func TestCompileProblems_NoProblems(t *testing.T) {
	_, err := CompileProblems(compile(t, `other: 1`))
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "problem", ce.Field)
}

func TestCompileProblem_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing identities", `problem: p: { signature: ["f/1"] }`},
		{"empty identities", `problem: p: { signature: ["f/1"], identities: [] }`},
		{"missing signature", `problem: p: { identities: ["x = x"] }`},
		{"unknown field", `problem: p: { signature: ["f/1"], identities: ["f(x) = x"], axioms: [] }`},
		{"bad strategy", `problem: p: { signature: ["f/1"], identities: ["f(x) = x"], strategy: "fast" }`},
		{"non-positive max_steps", `problem: p: { signature: ["f/1"], identities: ["f(x) = x"], max_steps: 0 }`},
		{"identity not a string", `problem: p: { signature: ["f/1"], identities: [1] }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compile(t, tt.src)
			_, err := CompileProblem(v.LookupPath(cue.ParsePath("problem.p")))
			assert.Error(t, err)
		})
	}
}

func TestCompileError_Format(t *testing.T) {
	err := &CompileError{Field: "signature", Message: "required"}
	assert.Equal(t, "signature: required", err.Error())
}
