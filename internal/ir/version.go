package ir

// Version constants for the history schema and engine.
const (
	// IRVersion is the history record schema version.
	IRVersion = "1"

	// EngineVersion is the trs engine version.
	EngineVersion = "0.1.0"
)
