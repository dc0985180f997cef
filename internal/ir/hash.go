package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed ids. The version suffix leaves
// room for a future change of algorithm.
const (
	DomainProblem = "trs/problem/v1"
	DomainStep    = "trs/step/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data). The null byte
// keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProblemHash identifies a problem by content: signature, precedence and
// identities, in order. The name is excluded so renaming a problem keeps
// its hash.
func ProblemHash(p ProblemSpec) (string, error) {
	obj := IRObject{
		"signature":  Strings(p.Signature),
		"precedence": Strings(p.Precedence),
		"identities": Strings(p.Identities),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ProblemHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainProblem, canonical), nil
}

// StepID computes the id of one history step. It is stable across
// replays of the same session.
func StepID(sessionID string, step Step) (string, error) {
	obj := IRObject{
		"session_id": IRString(sessionID),
		"seq":        IRInt(step.Seq),
		"kind":       IRString(string(step.Kind)),
		"text":       IRString(step.Text),
		"terms":      Strings(step.Terms),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("StepID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainStep, canonical), nil
}

// MustStepID is like StepID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustStepID(sessionID string, step Step) string {
	id, err := StepID(sessionID, step)
	if err != nil {
		panic(err)
	}
	return id
}
