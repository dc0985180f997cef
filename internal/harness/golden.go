package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/trs/internal/ir"
)

// TraceSnapshot is the golden form of a run: the outcome, the final rules
// and every step.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	SessionID    string       `json:"session_id"`
	Outcome      string       `json:"outcome"`
	Rules        []string     `json:"rules"`
	Trace        []TraceEvent `json:"trace"`
}

// toCanonical converts the snapshot to an IRObject for canonical JSON.
// Snapshot sizes are left out; the rule strings already pin them.
func (s *TraceSnapshot) toCanonical() ir.IRObject {
	trace := make(ir.IRArray, len(s.Trace))
	for i, ev := range s.Trace {
		trace[i] = ir.IRObject{
			"seq":   ir.IRInt(ev.Seq),
			"kind":  ir.IRString(ev.Kind),
			"text":  ir.IRString(ev.Text),
			"terms": ir.Strings(ev.Terms),
		}
	}
	return ir.IRObject{
		"scenario_name": ir.IRString(s.ScenarioName),
		"session_id":    ir.IRString(s.SessionID),
		"outcome":       ir.IRString(s.Outcome),
		"rules":         ir.Strings(s.Rules),
		"trace":         trace,
	}
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// MarshalSnapshot renders the golden form of a run as canonical JSON.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		SessionID:    result.SessionID,
		Outcome:      result.Outcome,
		Rules:        result.Rules,
		Trace:        result.Trace,
	}
	return ir.MarshalCanonical(snapshot.toCanonical())
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
