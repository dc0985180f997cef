// Package engine implements critical-pair computation and Knuth–Bendix
// completion for trs.
//
// A Session owns one completion problem: a signature, the current
// identities, the current rules and the set of critical pairs already
// produced. Complete turns the identities into a convergent rule set or
// reports the equation it could not orient.
//
// ARCHITECTURE:
//
// Completion is a state machine over two sets:
//  1. ProcessIdentities: take the smallest identity, normalize both sides,
//     drop it when they meet, otherwise orient it with the lexicographic
//     path ordering and interreduce the rule set against the new rule.
//  2. ComputeOverlaps: when no identity is left, pick the smallest unmarked
//     rule, add its critical pairs with itself and every marked rule as new
//     identities, and mark it.
//  3. Saturated: no identity and no unmarked rule remain.
//  4. Failed: an identity could not be oriented.
//
// Every transition is reported to the session's observers as an ir.Step,
// which is how the history log, the SQLite store and the metrics are fed.
//
// CONCURRENCY:
//
// A Session is not safe for concurrent use. Completion is single-threaded
// and deterministic: the same problem always produces the same steps in
// the same order. Hosts that need cancellation pass a context; it is
// checked between steps.
package engine
