// Package fastpath implements the fast-path gate (spec.md §4.7): comparing
// the current manifest's digest against a prior snapshot's stored digest to
// decide whether a full resolution run can be skipped.
package fastpath

import (
	"bytes"
	"io"
	"os"

	"github.com/trailib/supergemlock/internal/snapshot"
)

// Decision is the gate's verdict.
type Decision int

const (
	// Proceed means a full resolution run is needed.
	Proceed Decision = iota
	// Skip means the prior snapshot is still valid for manifestBytes.
	Skip
)

// Evaluate implements spec.md §4.7's five-step gate. It never mutates
// on-disk state: a missing, unreadable, or corrupt snapshot, or one
// computed from different manifest bytes, is reported as Proceed rather
// than as an error — the orchestrator always has a safe path forward.
func Evaluate(snapshotPath string, manifestBytes []byte) Decision {
	f, err := os.Open(snapshotPath)
	if err != nil {
		return Proceed
	}
	defer f.Close()

	header, err := snapshot.ReadHeader(f)
	if err != nil {
		return Proceed
	}

	current := snapshot.Digest(manifestBytes)
	if bytes.Equal(header.InputDigest[:], current[:]) {
		return Skip
	}
	return Proceed
}

// EvaluateReader is Evaluate's variant for callers that already hold an
// open snapshot reader (used by tests and by callers that want to avoid a
// second filesystem stat).
func EvaluateReader(r io.Reader, manifestBytes []byte) Decision {
	header, err := snapshot.ReadHeader(r)
	if err != nil {
		return Proceed
	}

	current := snapshot.Digest(manifestBytes)
	if bytes.Equal(header.InputDigest[:], current[:]) {
		return Skip
	}
	return Proceed
}
