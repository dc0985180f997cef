package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupProblem() ProblemSpec {
	return ProblemSpec{
		Name:       "group",
		Signature:  []string{"f/2", "i/1", "e/0"},
		Precedence: []string{"i", "f", "e"},
		Identities: []string{
			"f(f(x,y),z) = f(x,f(y,z))",
			"f(x,i(x)) = e",
			"f(e,x) = x",
		},
	}
}

func TestProblemHashDeterminism(t *testing.T) {
	h1, err := ProblemHash(groupProblem())
	require.NoError(t, err)
	h2, err := ProblemHash(groupProblem())
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "ProblemHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestProblemHashIgnoresName(t *testing.T) {
	a := groupProblem()
	b := groupProblem()
	b.Name = "groups"
	b.Description = "renamed"

	assert.Equal(t, mustProblemHash(t, a), mustProblemHash(t, b))
}

func TestProblemHashChangesWithContent(t *testing.T) {
	base := mustProblemHash(t, groupProblem())

	noPrec := groupProblem()
	noPrec.Precedence = nil
	assert.NotEqual(t, base, mustProblemHash(t, noPrec))

	reordered := groupProblem()
	reordered.Identities[0], reordered.Identities[1] = reordered.Identities[1], reordered.Identities[0]
	assert.NotEqual(t, base, mustProblemHash(t, reordered), "identity order is significant")
}

func TestStepID(t *testing.T) {
	step := Step{Seq: 3, Kind: StepOrient, Text: "orient", Terms: []string{"f(e,x)", "x"}}

	id1 := MustStepID("session-1", step)
	id2 := MustStepID("session-1", step)
	assert.Equal(t, id1, id2)

	assert.NotEqual(t, id1, MustStepID("session-2", step))

	step.Seq = 4
	assert.NotEqual(t, id1, MustStepID("session-1", step))
}

func TestStepIDIgnoresSnapshots(t *testing.T) {
	a := Step{Seq: 1, Kind: StepStart, Text: "start"}
	b := a
	b.Rules = []string{"f(e,x) → x"}
	assert.Equal(t, MustStepID("s", a), MustStepID("s", b))
}

func TestDomainSeparation(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, hashWithDomain(DomainProblem, data), hashWithDomain(DomainStep, data))
}

func mustProblemHash(t *testing.T, p ProblemSpec) string {
	t.Helper()
	h, err := ProblemHash(p)
	require.NoError(t, err)
	return h
}
