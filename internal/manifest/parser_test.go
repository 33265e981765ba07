package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trailib/supergemlock/internal/core/domain"
	"github.com/trailib/supergemlock/internal/manifest"
)

func TestParseTrivialManifest(t *testing.T) {
	src := "source 'https://registry.example/'\ngem 'rack', '~> 3.0'\n"

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "https://registry.example/", p.RegistryURL)
	require.Len(t, p.Requirements, 1)
	req := p.Requirements[0]
	assert.Equal(t, "rack", req.Name)
	require.Len(t, req.Constraints, 1)
	assert.Equal(t, domain.OpCompatible, req.Constraints[0].Op)
	assert.Equal(t, domain.Version{Major: 3, Minor: 0}, req.Constraints[0].Version)
	assert.Equal(t, 2, req.Constraints[0].Precision)
}

func TestParseMultiConstraintMerge(t *testing.T) {
	src := `gem 'pg', '>= 1.0', '< 2.0'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	require.Len(t, p.Requirements, 1)
	req := p.Requirements[0]
	require.Len(t, req.Constraints, 2)
	assert.Equal(t, domain.OpGreaterEqual, req.Constraints[0].Op)
	assert.Equal(t, domain.OpLess, req.Constraints[1].Op)
}

func TestParseVCSPassThrough(t *testing.T) {
	src := `gem 'widget', github: 'acme/widget'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	require.Len(t, p.Requirements, 1)
	req := p.Requirements[0]
	assert.Equal(t, domain.SourceVCS, req.Source.Kind)
	assert.Equal(t, "https://github.com/acme/widget.git", req.Source.VCSURL)
}

func TestParseBranchAttachesToPrevailingVCSSource(t *testing.T) {
	src := `gem 'widget', github: 'acme/widget', branch: 'main'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	req := p.Requirements[0]
	assert.Equal(t, "main", req.Source.VCSBranch)
}

func TestParseGitOption(t *testing.T) {
	src := `gem 'widget', git: 'https://example.com/widget.git'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	req := p.Requirements[0]
	assert.Equal(t, domain.SourceVCS, req.Source.Kind)
	assert.Equal(t, "https://example.com/widget.git", req.Source.VCSURL)
}

func TestParsePathOption(t *testing.T) {
	src := `gem 'widget', path: 'vendor/widget'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	req := p.Requirements[0]
	assert.Equal(t, domain.SourcePath, req.Source.Kind)
	assert.Equal(t, "vendor/widget", req.Source.LocalPath)
}

func TestParseRequireFalseSetsOptional(t *testing.T) {
	src := `gem 'widget', require: false`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	assert.True(t, p.Requirements[0].Optional)
}

func TestParseImplicitConstraint(t *testing.T) {
	src := `gem 'rack'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	req := p.Requirements[0]
	require.Len(t, req.Constraints, 1)
	assert.Equal(t, domain.OpGreaterEqual, req.Constraints[0].Op)
	assert.Equal(t, domain.Version{}, req.Constraints[0].Version)
}

func TestParseSkipsGroupedRequirements(t *testing.T) {
	src := "gem 'rack', '~> 3.0'\ngroup :test do\n  gem 'rspec'\nend\n"

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	require.Len(t, p.Requirements, 1)
	assert.Equal(t, "rack", p.Requirements[0].Name)
	require.Len(t, p.Grouped, 1)
	assert.Equal(t, "rspec", p.Grouped[0].Name)
}

func TestParseSkipsSourceGemspecAndRubyDirectives(t *testing.T) {
	src := "source 'https://registry.example/'\ngemspec\nruby '3.2.0'\ngem 'rack'\n"

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, p.Requirements, 1)
}

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	src := "# a comment\n\ngem 'rack'\n"

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, p.Requirements, 1)
}

func TestParseMalformedConstraintIsSkippedNotFatal(t *testing.T) {
	src := `gem 'rack', '~> not-a-version'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	req := p.Requirements[0]
	// The bad constraint is dropped; falls back to the implicit one.
	require.Len(t, req.Constraints, 1)
	assert.Equal(t, domain.OpGreaterEqual, req.Constraints[0].Op)
}

func TestParseNotEqualOperatorIsRecognizedButInert(t *testing.T) {
	src := `gem 'rack', '!= 2.0.0'`

	p, err := manifest.Parse([]byte(src))
	require.NoError(t, err)

	req := p.Requirements[0]
	require.Len(t, req.Constraints, 1)
	assert.Equal(t, domain.OpNotEqual, req.Constraints[0].Op)
	assert.True(t, domain.Satisfies(domain.Version{Major: 2, Minor: 0, Patch: 0}, req.Constraints[0]))
}

func TestParseRequirementLineMustStartWithQuotedString(t *testing.T) {
	src := `gem rack`

	_, err := manifest.Parse([]byte(src))
	require.Error(t, err)
}

func TestParseEmptyManifestSucceeds(t *testing.T) {
	p, err := manifest.Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, p.Requirements)
}
