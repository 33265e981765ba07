// Package snapshot implements the binary snapshot writer and reader
// (spec.md §4.6): a compact binary encoding of a Resolution plus the input
// digest it was computed from, used only by the fast-path gate.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/trailib/supergemlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// magic identifies the snapshot format.
var magic = [4]byte{'G', 'R', 'L', 'K'}

// formatVersion is the only format version this package writes or accepts.
const formatVersion uint32 = 1

// sourceTag mirrors spec.md §4.6's record tag values.
type sourceTag uint8

const (
	tagRegistry sourceTag = 0
	tagGithub   sourceTag = 1
	tagGit      sourceTag = 2
	tagPath     sourceTag = 3
)

// Digest returns the SHA-256 digest of manifest bytes, used both to embed in
// a freshly-written snapshot and to compare against a stored one.
func Digest(manifestBytes []byte) [32]byte {
	return sha256.Sum256(manifestBytes)
}

// Write encodes res into the binary layout described in spec.md §4.6,
// embedding digest as the input digest.
func Write(w io.Writer, res *domain.Resolution, digest [32]byte) error {
	libs := res.Libraries()

	index := make(map[string]uint32, len(libs))
	for i, l := range libs {
		index[l.Name] = uint32(i)
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	writeU32(&buf, formatVersion)
	writeU32(&buf, uint32(len(libs)))
	buf.Write(digest[:])

	for _, lib := range libs {
		nameBytes := []byte(lib.Name)
		writeU16(&buf, uint16(len(nameBytes)))
		writeU64(&buf, lib.Version.Packed())
		writeU16(&buf, uint16(len(lib.DependencyNames)))
		buf.WriteByte(byte(tagFor(lib.Source)))
		buf.WriteByte(0) // reserved
		buf.Write(nameBytes)
		for _, dep := range lib.DependencyNames {
			// A dependency with no record in this resolution is written as
			// the placeholder index 0 (spec.md §4.6).
			idx, ok := index[dep]
			if !ok {
				idx = 0
			}
			writeU32(&buf, idx)
		}
	}

	_, err := w.Write(buf.Bytes())
	if err != nil {
		return zerr.Wrap(domain.ErrSnapshotWriteFailed, err.Error())
	}
	return nil
}

func tagFor(s domain.Source) sourceTag {
	switch s.Kind {
	case domain.SourceVCS:
		return tagGit
	case domain.SourcePath:
		return tagPath
	default:
		return tagRegistry
	}
}

// Header is the fixed-size portion of a snapshot, read independently of the
// variable-length library records (used by the fast-path gate, which only
// ever needs InputDigest).
type Header struct {
	FormatVersion uint32
	LibraryCount  uint32
	InputDigest   [32]byte
}

// ReadHeader reads and validates the fixed header of a snapshot. A bad
// magic or unsupported format version is reported as ErrSnapshotCorrupt;
// callers (the fast-path gate) treat that as "proceed", not as fatal.
func ReadHeader(r io.Reader) (Header, error) {
	var raw [44]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return Header{}, zerr.Wrap(domain.ErrSnapshotCorrupt, err.Error())
	}

	if !bytes.Equal(raw[0:4], magic[:]) {
		return Header{}, zerr.With(domain.ErrSnapshotCorrupt, "reason", "bad magic")
	}

	h := Header{
		FormatVersion: binary.LittleEndian.Uint32(raw[4:8]),
		LibraryCount:  binary.LittleEndian.Uint32(raw[8:12]),
	}
	copy(h.InputDigest[:], raw[12:44])

	if h.FormatVersion != formatVersion {
		return Header{}, zerr.With(domain.ErrSnapshotCorrupt, "reason", "unsupported format version")
	}

	return h, nil
}

// Record is one decoded library entry from the variable-length portion of a
// snapshot.
type Record struct {
	Name            string
	Version         domain.Version
	DependencyIndex []uint32
	SourceTag       sourceTag
}

// ReadRecords decodes every library record following the header. It is used
// by snapshot round-trip tests; the fast-path gate itself never needs to go
// this far (spec.md §4.7 step 4 only compares the header's input digest).
func ReadRecords(r io.Reader, count uint32) ([]Record, error) {
	out := make([]Record, 0, count)

	for i := uint32(0); i < count; i++ {
		var fixed [14]byte
		if _, err := io.ReadFull(r, fixed[:]); err != nil {
			return nil, zerr.Wrap(domain.ErrSnapshotCorrupt, err.Error())
		}

		nameLen := binary.LittleEndian.Uint16(fixed[0:2])
		packed := binary.LittleEndian.Uint64(fixed[2:10])
		depCount := binary.LittleEndian.Uint16(fixed[10:12])
		tag := sourceTag(fixed[12])

		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return nil, zerr.Wrap(domain.ErrSnapshotCorrupt, err.Error())
		}

		deps := make([]uint32, depCount)
		for j := range deps {
			var depBuf [4]byte
			if _, err := io.ReadFull(r, depBuf[:]); err != nil {
				return nil, zerr.Wrap(domain.ErrSnapshotCorrupt, err.Error())
			}
			deps[j] = binary.LittleEndian.Uint32(depBuf[:])
		}

		out = append(out, Record{
			Name:            string(nameBytes),
			Version:         unpackVersion(packed),
			DependencyIndex: deps,
			SourceTag:       tag,
		})
	}

	return out, nil
}

func unpackVersion(packed uint64) domain.Version {
	return domain.Version{
		Major: uint16(packed >> 32),
		Minor: uint16(packed >> 16),
		Patch: uint16(packed),
	}
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
