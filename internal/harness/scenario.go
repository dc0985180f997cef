package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/trs/internal/compiler"
	"github.com/roach88/trs/internal/ir"
)

// Scenario defines a completion scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Problem is an optional path to a CUE problem file, relative to the
	// scenario file. When set, ProblemName selects the problem and the
	// inline fields below must be empty.
	Problem     string `yaml:"problem,omitempty"`
	ProblemName string `yaml:"problem_name,omitempty"`

	Signature  []string `yaml:"signature,omitempty"`
	Precedence []string `yaml:"precedence,omitempty"`
	Identities []string `yaml:"identities,omitempty"`
	Strategy   string   `yaml:"strategy,omitempty"`
	MaxSteps   int64    `yaml:"max_steps,omitempty"`

	// SessionID is an optional fixed session id. If empty, the harness
	// uses testutil.DefaultSessionID.
	SessionID string `yaml:"session_id,omitempty"`

	// Assertions check the final system and the trace.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one property of a run.
type Assertion struct {
	// Type is one of outcome, rule_present, rule_count, joinable,
	// step_count.
	Type string `yaml:"type"`

	// State is the expected outcome (outcome).
	State string `yaml:"state,omitempty"`

	// Left and Right are the rule sides (rule_present) or the two terms
	// that must have the same normal form (joinable).
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`

	// Kind is the step kind to count (step_count).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of rules (rule_count) or steps
	// (step_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutcome     = "outcome"
	AssertRulePresent = "rule_present"
	AssertRuleCount   = "rule_count"
	AssertJoinable    = "joinable"
	AssertStepCount   = "step_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields. A referenced
// problem file is loaded and merged into the scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Problem != "" {
		if err := scenario.resolveProblem(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml file of dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// resolveProblem loads the referenced CUE problem into the inline fields.
func (s *Scenario) resolveProblem(baseDir string) error {
	if len(s.Signature) > 0 || len(s.Identities) > 0 || len(s.Precedence) > 0 {
		return fmt.Errorf("problem %q given together with inline signature, precedence or identities", s.Problem)
	}
	path := s.Problem
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	specs, err := compiler.LoadFile(path)
	if err != nil {
		return err
	}

	var spec *ir.ProblemSpec
	switch {
	case s.ProblemName != "":
		for i := range specs {
			if specs[i].Name == s.ProblemName {
				spec = &specs[i]
			}
		}
		if spec == nil {
			return fmt.Errorf("problem %q not found in %s", s.ProblemName, s.Problem)
		}
	case len(specs) == 1:
		spec = &specs[0]
	default:
		return fmt.Errorf("%s declares %d problems, set problem_name", s.Problem, len(specs))
	}

	s.Signature = spec.Signature
	s.Precedence = spec.Precedence
	s.Identities = spec.Identities
	if s.Strategy == "" {
		s.Strategy = spec.Strategy
	}
	if s.MaxSteps == 0 {
		s.MaxSteps = spec.MaxSteps
	}
	return nil
}

// ProblemSpec returns the problem the scenario runs.
func (s *Scenario) ProblemSpec() ir.ProblemSpec {
	return ir.ProblemSpec{
		Name:        s.Name,
		Description: s.Description,
		Signature:   s.Signature,
		Precedence:  s.Precedence,
		Identities:  s.Identities,
		Strategy:    s.Strategy,
		MaxSteps:    s.MaxSteps,
	}
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Signature) == 0 {
		return fmt.Errorf("signature is required and must be non-empty")
	}
	if len(s.Identities) == 0 {
		return fmt.Errorf("identities list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertOutcome:
		switch a.State {
		case ir.StateSaturated, ir.StateFailed, ir.StateAborted:
		default:
			return fmt.Errorf("assertions[%d]: state must be saturated, failed or aborted, got %q", index, a.State)
		}
	case AssertRulePresent, AssertJoinable:
		if a.Left == "" || a.Right == "" {
			return fmt.Errorf("assertions[%d]: left and right are required for %s", index, a.Type)
		}
	case AssertRuleCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for rule_count", index)
		}
	case AssertStepCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for step_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for step_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
