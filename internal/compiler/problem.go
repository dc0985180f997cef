package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/trs/internal/ir"
)

// problemSchema is unified with every problem before it is read. The
// definition is closed, so misspelled fields are rejected.
const problemSchema = `
#Problem: {
	description?: string
	signature: [...string] & [_, ...]
	precedence?: [...string]
	identities: [...string] & [_, ...]
	strategy?: "huet" | "naive"
	max_steps?: int & >0
}
`

// CompileProblems compiles every problem under the "problem" key of v, in
// declaration order.
func CompileProblems(v cue.Value) ([]ir.ProblemSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	problems := v.LookupPath(cue.ParsePath("problem"))
	if !problems.Exists() {
		return nil, &CompileError{
			Field:   "problem",
			Message: "no problems declared",
			Pos:     v.Pos(),
		}
	}

	iter, err := problems.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var specs []ir.ProblemSpec
	for iter.Next() {
		spec, err := CompileProblem(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("problem %s: %w", iter.Label(), err)
		}
		specs = append(specs, *spec)
	}
	return specs, nil
}

// CompileProblem parses a CUE value into a ProblemSpec. The value should
// be the problem struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(src)
//	spec, err := CompileProblem(v.LookupPath(cue.ParsePath("problem.group")))
func CompileProblem(v cue.Value) (*ir.ProblemSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	schema := v.Context().CompileString(problemSchema, cue.Filename("problem_schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile problem schema: %w", err)
	}
	checked := schema.LookupPath(cue.ParsePath("#Problem")).Unify(v)
	if err := checked.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.ProblemSpec{}
	if labels := v.Path().Selectors(); len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	var err error
	if spec.Description, err = optionalString(checked, "description"); err != nil {
		return nil, err
	}
	if spec.Signature, err = stringList(checked, "signature"); err != nil {
		return nil, err
	}
	if spec.Precedence, err = stringList(checked, "precedence"); err != nil {
		return nil, err
	}
	if spec.Identities, err = stringList(checked, "identities"); err != nil {
		return nil, err
	}
	if spec.Strategy, err = optionalString(checked, "strategy"); err != nil {
		return nil, err
	}

	if ms := checked.LookupPath(cue.ParsePath("max_steps")); ms.Exists() {
		n, err := ms.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		spec.MaxSteps = n
	}
	return spec, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return "", nil
	}
	s, err := f.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// stringList reads an optional list of strings. A missing field yields nil.
func stringList(v cue.Value, field string) ([]string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return nil, nil
	}
	iter, err := f.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
