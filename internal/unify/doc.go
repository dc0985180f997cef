// Package unify implements syntactic unification, matching, and
// unification modulo a set of background identities.
//
// All algorithms are pure: they never modify their input terms and return
// substitutions as ordered bindings. Plain unification is the special case
// of Solver with no identities.
package unify
