// Package compiler turns CUE problem files into completion problems.
//
// A problem file declares one or more problems under the "problem" key:
//
//	problem: group: {
//		description: "group axioms, right inverse"
//		signature:   ["f/2", "i/1", "e/0"]
//		precedence:  ["i", "f", "e"]
//		identities: [
//			"f(f(x,y),z) = f(x,f(y,z))",
//			"f(x,i(x)) = e",
//			"f(e,x) = x",
//		]
//	}
//
// CompileProblem checks a value against the #Problem schema and extracts
// an ir.ProblemSpec. Validate checks the parts CUE cannot: that the
// signature, precedence and identities make sense as terms. Build turns a
// valid problem into a signature and parsed identities.
package compiler
