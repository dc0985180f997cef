// Package term provides the first-order term algebra for trs.
//
// The package holds the foundational types every other package builds on:
// symbols, signatures, terms, positions, identities and rules. It imports
// nothing internal.
//
// Key design constraints:
//   - Terms are immutable once constructed. Every "mutation" (substitution,
//     replacement at a position) returns a new term; subterms that did not
//     change are shared, which is safe because nothing can edit them.
//   - Equality is structural over the canonical printed form. The form is
//     computed once at construction and cached, so comparing two terms is a
//     string comparison regardless of which code path built them.
//   - A Signature is immutable once built. Symbol indices are owned by the
//     signature instance; there are no process-wide counters.
//
// Text syntax:
//
//	f(a, g(x, y))          a term; undeclared bare names are variables
//	f(x, i(x)) = e         an equation (identity or rule source)
//	f/2 i/1 e/0            a signature declaration
package term
