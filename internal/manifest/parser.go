// Package manifest implements the grammar and parser for the manifest file
// (spec.md §4.2). It turns the line-oriented textual format into a
// []domain.RootRequirement plus the registry URL declared by the manifest's
// "source" directive, which the lock-file emitter needs for its GEM header
// even though the directive itself contributes no requirement.
package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/trailib/supergemlock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Parsed is the result of parsing a manifest.
type Parsed struct {
	// RegistryURL is the argument of the manifest's "source" directive, if
	// any. Used only for the GEM section's "remote:" header.
	RegistryURL string

	// Requirements are the active (non-grouped) root requirements, in the
	// order they appeared in the manifest.
	Requirements []domain.RootRequirement

	// Grouped carries requirements declared inside a "group ... do ... end"
	// block. They are metadata only in this version — not added to the
	// resolver's work set (spec.md §4.2 rule 2, §9 open question).
	Grouped []domain.RootRequirement
}

var (
	sourceLineRE = regexp.MustCompile(`^source\s+(.+)$`)
	gemspecRE    = regexp.MustCompile(`^gemspec\b`)
	rubyRE       = regexp.MustCompile(`^ruby\b`)
	groupOpenRE  = regexp.MustCompile(`^group\b.*\bdo$`)
	groupCloseRE = regexp.MustCompile(`^end$`)
	gemLineRE    = regexp.MustCompile(`^gem\s+(.+)$`)
)

// Parse reads and parses manifest bytes into a Parsed result. I/O errors and
// truly unparseable "gem" lines are class-1 input errors (spec.md §7);
// malformed individual constraints inside an otherwise-valid line are
// recovered locally.
func Parse(data []byte) (*Parsed, error) {
	p := &Parsed{}
	groupDepth := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case sourceLineRE.MatchString(line):
			m := sourceLineRE.FindStringSubmatch(line)
			p.RegistryURL = unquote(strings.TrimSpace(m[1]))
			continue
		case gemspecRE.MatchString(line), rubyRE.MatchString(line):
			continue
		case groupOpenRE.MatchString(line):
			groupDepth++
			continue
		case groupCloseRE.MatchString(line):
			if groupDepth > 0 {
				groupDepth--
			}
			continue
		case gemLineRE.MatchString(line):
			m := gemLineRE.FindStringSubmatch(line)
			req, err := parseGemLine(m[1])
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to parse requirement line"), "line", fmt.Sprintf("%d", lineNo))
			}
			if groupDepth > 0 {
				p.Grouped = append(p.Grouped, *req)
			} else {
				p.Requirements = append(p.Requirements, *req)
			}
		default:
			// Any other top-level line is a class-1 parse error
			// (spec.md §4.2 rule 3 generalizes: the grammar only
			// recognizes the forms above).
			return nil, zerr.With(domain.ErrInvalidRequirementLine, "line", fmt.Sprintf("%d: %s", lineNo, line))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(domain.ErrManifestUnreadable, err.Error())
	}

	return p, nil
}

// parseGemLine parses the argument list of a "gem" requirement line
// (everything after the leading "gem" keyword).
func parseGemLine(rest string) (*domain.RootRequirement, error) {
	args := splitTopLevelCommas(rest)
	if len(args) == 0 {
		return nil, zerr.New("requirement line has no arguments")
	}

	nameTok := strings.TrimSpace(args[0])
	if !isQuotedString(nameTok) {
		// rule 3: a requirement line whose leading form is not a quoted
		// string is a parse error.
		return nil, domain.ErrInvalidRequirementLine
	}

	req := &domain.RootRequirement{
		Name:   unquote(nameTok),
		Source: domain.Source{Kind: domain.SourceRegistry},
	}

	for _, raw := range args[1:] {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		applyArgument(req, tok)
	}

	if len(req.Constraints) == 0 {
		// rule 6: implicit ">= 0.0.0".
		req.Constraints = []domain.Constraint{{Op: domain.OpGreaterEqual, Version: domain.Version{}}}
	}

	return req, nil
}

// applyArgument classifies and applies a single trailing argument of a
// "gem" line: either a bare constraint string or a "key: value" option
// (spec.md §4.2 rule 4).
func applyArgument(req *domain.RootRequirement, tok string) {
	if key, value, ok := splitOption(tok); ok {
		applyOption(req, key, value)
		return
	}

	if isQuotedString(tok) {
		inner := unquote(tok)
		if strings.ContainsAny(inner, ":/") {
			// rule 4 tail: has ':' or '/' but isn't recognized
			// "key: value" syntax — ignored for constraint purposes.
			return
		}
		c, err := ParseConstraintExpr(inner)
		if err != nil {
			// rule 8: malformed individual constraint is skipped, not fatal.
			return
		}
		req.Constraints = append(req.Constraints, c)
	}
}

// applyOption applies one recognized "key: value" option (spec.md §4.2 rule 5).
func applyOption(req *domain.RootRequirement, key, value string) {
	value = unquote(strings.TrimSpace(value))

	switch key {
	case "require":
		if strings.EqualFold(value, "false") {
			req.Optional = true
		}
	case "github":
		req.Source = domain.Source{Kind: domain.SourceVCS, VCSURL: githubURL(value)}
	case "git":
		req.Source = domain.Source{Kind: domain.SourceVCS, VCSURL: value}
	case "path":
		req.Source = domain.Source{Kind: domain.SourcePath, LocalPath: value}
	case "branch":
		req.Source.VCSBranch = value
	case "tag":
		req.Source.VCSTag = value
	case "ref":
		req.Source.VCSRef = value
	default:
		// all other options are ignored (spec.md §4.2 rule 5).
	}
}

// githubURL synthesizes the HTTPS clone URL for a "user/repo" shorthand.
func githubURL(userRepo string) string {
	return "https://github.com/" + strings.Trim(userRepo, "/") + ".git"
}
