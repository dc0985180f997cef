package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trs/internal/term"
)

func mustSig(t *testing.T, text string) *term.Signature {
	t.Helper()
	sig, err := term.ParseSignature(text)
	require.NoError(t, err)
	return sig
}

// parseAll parses texts in one variable scope.
func parseAll(t *testing.T, sig *term.Signature, texts ...string) []*term.Term {
	t.Helper()
	p := term.NewParser(sig)
	out := make([]*term.Term, len(texts))
	for i, s := range texts {
		tm, err := p.Parse(s)
		require.NoError(t, err)
		out[i] = tm
	}
	return out
}

func TestUnify_SelfIsEmpty(t *testing.T) {
	sig := mustSig(t, "f/2 i/1 e/0")
	for _, s := range []string{"x", "e", "f(x,i(y))", "f(f(x,y),f(x,e))"} {
		t.Run(s, func(t *testing.T) {
			tm := term.MustParse(sig, s)
			sub, ok := Unify(tm, tm)
			require.True(t, ok)
			assert.NotNil(t, sub)
			assert.Empty(t, sub)
		})
	}
}

func TestUnify(t *testing.T) {
	sig := mustSig(t, "f/2 i/1 e/0")
	tests := []struct {
		name  string
		s, t  string
		ok    bool
		unify string
	}{
		{"bind variable", "x", "f(e,y)", true, "f(e,y)"},
		{"orient", "f(e,y)", "x", true, "f(e,y)"},
		{"decompose", "f(x,e)", "f(i(y),y)", true, "f(i(e),e)"},
		{"chain", "f(x,y)", "f(y,i(z))", true, "f(i(z),i(z))"},
		{"shared structure", "f(x,f(x,y))", "f(i(z),f(i(e),z))", true, "f(i(e),f(i(e),e))"},
		{"clash", "f(x,e)", "i(y)", false, ""},
		{"constant clash", "f(e,x)", "f(i(y),x)", false, ""},
		{"occurs check", "x", "i(x)", false, ""},
		{"indirect occurs check", "f(x,y)", "f(i(y),x)", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := parseAll(t, sig, tt.s, tt.t)
			sub, ok := Unify(terms[0], terms[1])
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			l, r := sub.Apply(terms[0]), sub.Apply(terms[1])
			assert.True(t, l.Equal(r), "%s applied gives %s and %s", sub, l, r)
			assert.Equal(t, tt.unify, l.String())
		})
	}
}

func TestUnify_SolvedForm(t *testing.T) {
	sig := mustSig(t, "f/2 i/1 e/0")
	terms := parseAll(t, sig, "f(x,f(y,z))", "f(i(y),f(e,x))")
	sub, ok := Unify(terms[0], terms[1])
	require.True(t, ok)

	for _, b := range sub {
		for _, other := range sub {
			assert.False(t, other.Term.Occurs(b.Var.Name()),
				"bound variable %s occurs in %s", b.Var.Name(), other)
		}
	}
	assert.Equal(t, "{x ↦ i(e), y ↦ e, z ↦ i(e)}", sub.String())
}

func TestUnifyAll(t *testing.T) {
	sig := mustSig(t, "f/2 i/1 e/0")
	terms := parseAll(t, sig, "x", "i(y)", "y", "e")
	sub, ok := UnifyAll([]Equation{
		{Left: terms[0], Right: terms[1]},
		{Left: terms[2], Right: terms[3]},
	})
	require.True(t, ok)

	x, ok := sub.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "i(e)", x.String())
}
