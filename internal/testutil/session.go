package testutil

// DefaultSessionID is used when a scenario names no session id.
const DefaultSessionID = "test-session-default"

// FixedSessionGenerator returns the same session id every time. It
// satisfies engine.IDGenerator.
//
// engine.FixedGenerator hands out a list of ids once each; this one never
// runs out, which suits a scenario that is run repeatedly.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator for id, or for
// DefaultSessionID when id is empty.
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = DefaultSessionID
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
