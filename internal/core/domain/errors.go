package domain

import "go.trai.ch/zerr"

// Input errors (spec.md §7 class 1): the manifest is missing, unreadable,
// or grammatically invalid at the top level.
var (
	// ErrManifestNotFound is returned when the manifest file does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestUnreadable is returned when the manifest exists but cannot be read.
	ErrManifestUnreadable = zerr.New("manifest unreadable")

	// ErrInvalidRequirementLine is returned when a "gem" line's leading form
	// is not a quoted string (spec.md §4.2 rule 3), and for any manifest line
	// that matches none of the recognized forms.
	ErrInvalidRequirementLine = zerr.New("invalid requirement line")

	// ErrInvalidVersion is returned when a version string has more than
	// three components or a non-numeric component.
	ErrInvalidVersion = zerr.New("invalid version")
)

// Emission errors (spec.md §7 class 3): the lock file or snapshot can't be
// written or read back.
var (
	// ErrEmissionFailed is returned when the text lock file can't be opened or written.
	ErrEmissionFailed = zerr.New("lock file emission failed")

	// ErrSnapshotWriteFailed is returned when the binary snapshot can't be written.
	ErrSnapshotWriteFailed = zerr.New("snapshot write failed")

	// ErrSnapshotCorrupt is returned when a snapshot is truncated or its
	// magic or format version does not match. The fast-path gate treats it
	// as a miss and proceeds to full resolution (spec.md §7 class 5).
	ErrSnapshotCorrupt = zerr.New("snapshot corrupt")
)
