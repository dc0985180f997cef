package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/term"
)

// Problem is a validated problem ready for a completion session.
type Problem struct {
	Spec       ir.ProblemSpec
	Signature  *term.Signature
	Identities []term.Identity
	Hash       string
}

// Build validates spec and parses it. Every variable scope is one
// identity, so x in one axiom is unrelated to x in the next.
func Build(spec ir.ProblemSpec) (*Problem, error) {
	if verrs := Validate(&spec); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, e := range verrs {
			errs[i] = e
		}
		return nil, fmt.Errorf("problem %q: %w", spec.Name, errors.Join(errs...))
	}

	sig, err := term.ParseSignature(strings.Join(spec.Signature, " "))
	if err != nil {
		return nil, err
	}
	if len(spec.Precedence) > 0 {
		if sig, err = sig.WithPrecedence(spec.Precedence...); err != nil {
			return nil, err
		}
	}

	p := &Problem{Spec: spec, Signature: sig}
	for _, text := range spec.Identities {
		id, err := term.ParseEquation(sig, text)
		if err != nil {
			return nil, err
		}
		p.Identities = append(p.Identities, id)
	}

	if p.Hash, err = ir.ProblemHash(spec); err != nil {
		return nil, err
	}
	return p, nil
}
