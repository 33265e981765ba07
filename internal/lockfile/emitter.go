// Package lockfile implements the text lock-file emitter (spec.md §4.5): it
// serializes a Resolution plus the manifest's root requirements into the
// exact Bundler-compatible Gemfile.lock layout.
package lockfile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/trailib/supergemlock/internal/core/domain"
)

// supportedPlatforms is the fixed PLATFORMS section content (spec.md §4.5
// item 4).
var supportedPlatforms = []string{"ruby"}

// rubyVersion is the fixed RUBY VERSION section content (spec.md §4.5 item 5).
const rubyVersion = "ruby 3.2.0p0"

// bundlerVersion is the fixed BUNDLED WITH marker (spec.md §4.5 item 7).
const bundlerVersion = "2.5.6"

// Emit renders the Gemfile.lock text for res, using registryURL for the GEM
// section header and roots for the DEPENDENCIES section. The result is
// byte-identical across runs given the same inputs (spec.md §8 property 3).
func Emit(registryURL string, res *domain.Resolution, roots []domain.RootRequirement) string {
	var b strings.Builder

	libs := res.Libraries()
	byName := make(map[string]domain.ResolvedLibrary, len(libs))
	for _, l := range libs {
		byName[l.Name] = l
	}

	writeGemSection(&b, registryURL, libs, byName)
	writeGitSection(&b, libs)
	writePathSection(&b, libs)
	writePlatformsSection(&b)
	writeRubyVersionSection(&b)
	writeDependenciesSection(&b, roots)
	writeBundledWithSection(&b)

	return b.String()
}

func writeGemSection(b *strings.Builder, registryURL string, libs []domain.ResolvedLibrary, byName map[string]domain.ResolvedLibrary) {
	registry := filterBySource(libs, domain.SourceRegistry)
	sortByName(registry)

	b.WriteString("GEM\n")
	fmt.Fprintf(b, "  remote: %s\n", registryURL)
	b.WriteString("  specs:\n")
	for _, lib := range registry {
		fmt.Fprintf(b, "    %s (%s)\n", lib.Name, lib.Version.String())

		deps := append([]string(nil), lib.DependencyNames...)
		sort.Strings(deps)
		for _, dep := range deps {
			depLib, ok := byName[dep]
			if !ok {
				continue
			}
			fmt.Fprintf(b, "      %s (= %s)\n", dep, depLib.Version.String())
		}
	}
	b.WriteString("\n")
}

func writeGitSection(b *strings.Builder, libs []domain.ResolvedLibrary) {
	vcsLibs := filterBySource(libs, domain.SourceVCS)
	if len(vcsLibs) == 0 {
		return
	}
	sortByName(vcsLibs)

	b.WriteString("GIT\n")
	for _, lib := range vcsLibs {
		fmt.Fprintf(b, "  remote: %s\n", lib.Source.VCSURL)
		fmt.Fprintf(b, "  revision: %s\n", placeholderRevision)
		if lib.Source.VCSBranch != "" {
			fmt.Fprintf(b, "  branch: %s\n", lib.Source.VCSBranch)
		}
		if lib.Source.VCSTag != "" {
			fmt.Fprintf(b, "  tag: %s\n", lib.Source.VCSTag)
		}
		if lib.Source.VCSRef != "" {
			fmt.Fprintf(b, "  ref: %s\n", lib.Source.VCSRef)
		}
		b.WriteString("  specs:\n")
		fmt.Fprintf(b, "    %s (%s)\n", lib.Name, lib.Version.String())
	}
	b.WriteString("\n")
}

// placeholderRevision stands in for a real VCS commit identifier, which
// requires an out-of-band mechanism this version doesn't have (spec.md §9).
const placeholderRevision = "0000000000000000000000000000000000000000"

func writePathSection(b *strings.Builder, libs []domain.ResolvedLibrary) {
	pathLibs := filterBySource(libs, domain.SourcePath)
	if len(pathLibs) == 0 {
		return
	}
	sortByName(pathLibs)

	b.WriteString("PATH\n")
	for _, lib := range pathLibs {
		fmt.Fprintf(b, "  remote: %s\n", lib.Source.LocalPath)
		b.WriteString("  specs:\n")
		fmt.Fprintf(b, "    %s (%s)\n", lib.Name, lib.Version.String())
	}
	b.WriteString("\n")
}

func writePlatformsSection(b *strings.Builder) {
	b.WriteString("PLATFORMS\n")
	for _, p := range supportedPlatforms {
		fmt.Fprintf(b, "  %s\n", p)
	}
	b.WriteString("\n")
}

func writeRubyVersionSection(b *strings.Builder) {
	b.WriteString("RUBY VERSION\n")
	fmt.Fprintf(b, "   %s\n", rubyVersion)
	b.WriteString("\n")
}

func writeDependenciesSection(b *strings.Builder, roots []domain.RootRequirement) {
	sorted := append([]domain.RootRequirement(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	b.WriteString("DEPENDENCIES\n")
	for _, r := range sorted {
		b.WriteString("  ")
		b.WriteString(r.Name)
		if text := renderConstraints(r.Constraints); text != "" {
			fmt.Fprintf(b, " (%s)", text)
		}
		if !r.Source.IsRegistry() {
			b.WriteString("!")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeBundledWithSection(b *strings.Builder) {
	b.WriteString("BUNDLED WITH\n")
	fmt.Fprintf(b, "   %s\n", bundlerVersion)
}

// renderConstraints renders cs in parenthesized, comma-separated form. The
// implicit ">= 0.0.0" fallback the parser adds when a requirement line
// carries no explicit constraint (spec.md §4.2 rule 6) is never rendered —
// matching the reference lock format, where an unconstrained dependency
// prints with no version clause at all.
func renderConstraints(cs []domain.Constraint) string {
	if isImplicitDefault(cs) {
		return ""
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = string(c.Op) + " " + renderVersionAtPrecision(c.Version, c.Precision)
	}
	return strings.Join(parts, ", ")
}

// renderVersionAtPrecision renders v using only as many dot-separated
// components as were written in the manifest, so a constraint written as
// "~> 3.0" round-trips as "3.0" rather than the fully-qualified "3.0.0"
// domain.Version.String always produces.
func renderVersionAtPrecision(v domain.Version, precision int) string {
	switch precision {
	case 1:
		return strconv.Itoa(int(v.Major))
	case 2:
		return strconv.Itoa(int(v.Major)) + "." + strconv.Itoa(int(v.Minor))
	default:
		return v.String()
	}
}

func isImplicitDefault(cs []domain.Constraint) bool {
	if len(cs) != 1 {
		return false
	}
	c := cs[0]
	return c.Op == domain.OpGreaterEqual && c.Version == (domain.Version{})
}

func filterBySource(libs []domain.ResolvedLibrary, kind domain.SourceKind) []domain.ResolvedLibrary {
	out := make([]domain.ResolvedLibrary, 0, len(libs))
	for _, l := range libs {
		if l.Source.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

func sortByName(libs []domain.ResolvedLibrary) {
	sort.Slice(libs, func(i, j int) bool { return libs[i].Name < libs[j].Name })
}
