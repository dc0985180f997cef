package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/trs/internal/order"
	"github.com/roach88/trs/internal/term"
)

// SignatureOptions are the flags of commands that read terms directly
// from the command line.
type SignatureOptions struct {
	Signature  string
	Precedence []string
}

// build parses the signature flag and applies the precedence, if any.
func (o SignatureOptions) build() (*term.Signature, error) {
	if o.Signature == "" {
		return nil, errors.New("--signature is required")
	}
	sig, err := term.ParseSignature(o.Signature)
	if err != nil {
		return nil, err
	}
	if len(o.Precedence) > 0 {
		return sig.WithPrecedence(o.Precedence...)
	}
	return sig, nil
}

// failInput reports a rejected signature or term text as a command error.
func failInput(f *OutputFormatter, err error) error {
	code := ErrCodeParse
	if term.IsSignatureError(err) {
		code = ErrCodeSignature
	}
	return f.Fail(ExitCommandError, code, err.Error(), nil)
}

// orientRules parses each "l = r" with its own variable scope and orients
// it by LPO, heavier side on the left.
func orientRules(sig *term.Signature, texts []string) ([]term.Rule, error) {
	rules := make([]term.Rule, 0, len(texts))
	for _, text := range texts {
		id, err := term.ParseEquation(sig, text)
		if err != nil {
			return nil, err
		}
		l, r, ok := order.Compare(id.Left, id.Right)
		if !ok {
			return nil, fmt.Errorf("rule %q cannot be oriented by the path ordering", text)
		}
		rules = append(rules, term.Rule{Left: l, Right: r})
	}
	return rules, nil
}

func variableNames(t *term.Term) []string {
	vars := t.Variables()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name()
	}
	return names
}

func ruleStrings(rules []term.Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.String()
	}
	return out
}
