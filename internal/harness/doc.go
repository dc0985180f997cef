// Package harness runs completion scenarios and checks their outcome.
//
// A scenario is a YAML file naming a problem (inline, or by reference to
// a CUE problem file) and a list of assertions about the completed
// system:
//
//	name: group
//	description: group axioms complete under declaration order
//	signature: [f/2, i/1, e/0]
//	identities:
//	  - f(f(x,y),z) = f(x,f(y,z))
//	  - f(x,i(x)) = e
//	  - f(e,x) = x
//	assertions:
//	  - type: outcome
//	    state: saturated
//	  - type: rule_present
//	    left: i(f(x,y))
//	    right: f(i(y),i(x))
//
// Every run uses a fresh in-memory store, a deterministic clock and a
// fixed session id. The trace is read back from the store, so a golden
// file compares exactly what the history log would hold.
package harness
