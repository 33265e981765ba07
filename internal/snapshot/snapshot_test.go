package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trailib/supergemlock/internal/core/domain"
	"github.com/trailib/supergemlock/internal/snapshot"
)

func TestWriteReadRoundTrip(t *testing.T) {
	res := domain.NewResolution()
	res.Add(domain.ResolvedLibrary{
		Name: "rails", Version: domain.Version{Major: 7, Minor: 0, Patch: 0},
		Source:          domain.Source{Kind: domain.SourceRegistry},
		DependencyNames: []string{"activesupport"},
	})
	res.Add(domain.ResolvedLibrary{Name: "activesupport", Version: domain.Version{Major: 7, Minor: 0, Patch: 0}, Source: domain.Source{Kind: domain.SourceRegistry}})

	digest := snapshot.Digest([]byte("gem 'rails', '= 7.0.0'\n"))

	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, res, digest))

	header, err := snapshot.ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), header.LibraryCount)
	assert.Equal(t, digest, header.InputDigest)

	records, err := snapshot.ReadRecords(&buf, header.LibraryCount)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rails", records[0].Name)
	assert.Equal(t, domain.Version{Major: 7, Minor: 0, Patch: 0}, records[0].Version)
	assert.Equal(t, "activesupport", records[1].Name)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, 44))
	_, err := snapshot.ReadHeader(buf)
	assert.Error(t, err)
}

func TestReadHeaderRejectsShortInput(t *testing.T) {
	buf := bytes.NewBuffer([]byte("too short"))
	_, err := snapshot.ReadHeader(buf)
	assert.Error(t, err)
}

func TestReadHeaderRejectsUnsupportedFormatVersion(t *testing.T) {
	res := domain.NewResolution()
	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, res, [32]byte{}))

	raw := buf.Bytes()
	raw[4] = 99 // corrupt format_version

	_, err := snapshot.ReadHeader(bytes.NewReader(raw))
	assert.Error(t, err)
}

func TestDigestIsSensitiveToSingleByteChange(t *testing.T) {
	a := snapshot.Digest([]byte("gem 'rack', '~> 3.0'"))
	b := snapshot.Digest([]byte("gem 'rack', '~> 3.0' "))
	assert.NotEqual(t, a, b)
}

func TestWriteEmptyResolution(t *testing.T) {
	res := domain.NewResolution()
	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, res, [32]byte{}))

	header, err := snapshot.ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), header.LibraryCount)
}
