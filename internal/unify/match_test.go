package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trs/internal/term"
)

func TestMatch(t *testing.T) {
	sig := mustSig(t, "f/2 i/1 e/0")
	tests := []struct {
		name            string
		pattern, target string
		ok              bool
	}{
		{"variable pattern", "x", "f(y,i(z))", true},
		{"linear", "f(x,y)", "f(e,i(z))", true},
		{"non-linear agrees", "f(x,x)", "f(i(e),i(e))", true},
		{"non-linear conflict", "f(x,x)", "f(e,i(e))", false},
		{"pattern symbol against target variable", "f(e,x)", "f(y,e)", false},
		{"symbol mismatch", "i(x)", "f(x,y)", false},
		{"ground equal", "f(e,e)", "f(e,e)", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := term.MustParse(sig, tt.pattern)
			tg := term.MustParse(sig, tt.target)
			sub, ok := Match(p, tg)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, sub.Apply(p).Equal(tg), "%s(%s) = %s", sub, p, sub.Apply(p))
			}
		})
	}
}

func TestMatch_OneDirectional(t *testing.T) {
	sig := mustSig(t, "f/2 i/1 e/0")
	general := term.MustParse(sig, "f(x,y)")
	specific := term.MustParse(sig, "f(e,y)")

	_, ok := Match(general, specific)
	assert.True(t, ok)

	_, ok = Match(specific, general)
	assert.False(t, ok, "target variables never bind")

	// Unification succeeds in both directions.
	_, ok = Unify(specific, general)
	assert.True(t, ok)
}

func TestMatch_SharedNames(t *testing.T) {
	sig := mustSig(t, "f/2")
	terms := parseAll(t, sig, "f(x,y)", "f(y,x)")

	sub, ok := Match(terms[0], terms[1])
	require.True(t, ok)
	assert.Equal(t, "f(y,x)", sub.Apply(terms[0]).String())
}

func TestCanonicalize(t *testing.T) {
	sig := mustSig(t, "f/2 i/1 e/0")
	a := parseAll(t, sig, "f(q,i(p))", "p")
	b := parseAll(t, sig, "f(y,i(x))", "x")

	ca := Canonicalize(sig, a...)
	cb := Canonicalize(sig, b...)
	assert.Equal(t, "f(x,i(y))", ca[0].String())
	assert.Equal(t, "y", ca[1].String())
	assert.True(t, ca[0].Equal(cb[0]))
	assert.True(t, ca[1].Equal(cb[1]))
}

func TestCanonicalize_SkipsDeclaredNames(t *testing.T) {
	sig := mustSig(t, "f/2 x/0")
	out := Canonicalize(sig, term.MustParse(sig, "f(a,f(b,x))"))
	assert.Equal(t, "f(y,f(z,x))", out[0].String())
	assert.False(t, out[0].Arg(1).Arg(1).IsVar())
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "x", CanonicalName(0))
	assert.Equal(t, "w", CanonicalName(6))
	assert.Equal(t, "x1", CanonicalName(7))
	assert.Equal(t, "y2", CanonicalName(15))
}

func TestRenameApart(t *testing.T) {
	sig := mustSig(t, "f/2")
	terms := parseAll(t, sig, "f(x,y)", "y")
	out := RenameApart("1", terms...)
	assert.Equal(t, "f(x#1,y#1)", out[0].String())
	assert.Equal(t, "y#1", out[1].String())

	_, ok := Unify(terms[0], out[0])
	assert.True(t, ok)
}
