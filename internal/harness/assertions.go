package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/trs/internal/rewrite"
	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/unify"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Rules    []string // final rules, for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if len(e.Rules) > 0 {
		fmt.Fprintf(&buf, "\nFinal rules:\n")
		for i, r := range e.Rules {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, r)
		}
	}
	return buf.String()
}

func assertOutcome(result *Result, a Assertion) error {
	if result.Outcome == a.State {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutcome,
		Expected: a.State,
		Actual:   result.Outcome,
		Rules:    result.Rules,
	}
}

// assertRulePresent checks for a rule equal to left → right up to
// variable renaming.
func assertRulePresent(result *Result, a Assertion) error {
	want, err := term.ParseEquation(result.sig, a.Left+" = "+a.Right)
	if err != nil {
		return fmt.Errorf("rule_present: %w", err)
	}
	key := canonicalKey(result.sig, want.Left, want.Right)
	for _, r := range result.rules {
		if canonicalKey(result.sig, r.Left, r.Right) == key {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertRulePresent,
		Expected: fmt.Sprintf("rule %s → %s", a.Left, a.Right),
		Actual:   "not among the final rules",
		Rules:    result.Rules,
	}
}

func canonicalKey(sig *term.Signature, l, r *term.Term) string {
	c := unify.Canonicalize(sig, l, r)
	return c[0].Key() + ">" + c[1].Key()
}

func assertRuleCount(result *Result, a Assertion) error {
	if len(result.rules) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRuleCount,
		Expected: fmt.Sprintf("%d rules", a.Count),
		Actual:   fmt.Sprintf("%d rules", len(result.rules)),
		Rules:    result.Rules,
	}
}

// assertJoinable checks that left and right, read in one variable scope,
// have the same normal form under the final rules.
func assertJoinable(result *Result, a Assertion) error {
	p := term.NewParser(result.sig)
	l, err := p.Parse(a.Left)
	if err != nil {
		return fmt.Errorf("joinable: %w", err)
	}
	r, err := p.Parse(a.Right)
	if err != nil {
		return fmt.Errorf("joinable: %w", err)
	}

	nl, err := rewrite.NormalizeBounded(l, result.rules, 0)
	if err != nil {
		return fmt.Errorf("joinable: %w", err)
	}
	nr, err := rewrite.NormalizeBounded(r, result.rules, 0)
	if err != nil {
		return fmt.Errorf("joinable: %w", err)
	}
	if nl.Equal(nr) {
		return nil
	}
	return &AssertionError{
		Type:     AssertJoinable,
		Expected: fmt.Sprintf("%s and %s to have the same normal form", a.Left, a.Right),
		Actual:   fmt.Sprintf("%s and %s", nl, nr),
		Rules:    result.Rules,
	}
}

func assertStepCount(result *Result, a Assertion) error {
	n := 0
	for _, ev := range result.Trace {
		if ev.Kind == a.Kind {
			n++
		}
	}
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertStepCount,
		Expected: fmt.Sprintf("%d %s steps", a.Count, a.Kind),
		Actual:   fmt.Sprintf("%d", n),
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertOutcome:
			err = assertOutcome(result, a)
		case AssertRulePresent:
			err = assertRulePresent(result, a)
		case AssertRuleCount:
			err = assertRuleCount(result, a)
		case AssertJoinable:
			err = assertJoinable(result, a)
		case AssertStepCount:
			err = assertStepCount(result, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
