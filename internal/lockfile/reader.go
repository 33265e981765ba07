package lockfile

import (
	"bufio"
	"strings"
)

// fourSpaceIndent is the indent of a top-level spec line inside a
// GEM/GIT/PATH specs block. Nested dependency lines use six-space indent
// and are excluded below.
const fourSpaceIndent = "    "

// Summary is a minimal decoding of an existing Gemfile.lock, used by the
// "install" subcommand to describe a reused lock file without re-running
// resolution (spec.md §6: "if a lock file exists, re-use it").
type Summary struct {
	Libraries []string // "name (version)" pairs, in file order.
}

// Summarize extracts the top-level "name (version)" lines from every specs
// block in text.
func Summarize(text string) Summary {
	var libs []string
	inSpecs := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "specs:":
			inSpecs = true
			continue
		case trimmed == "" || !strings.HasPrefix(line, " "):
			inSpecs = false
			continue
		}

		if !inSpecs {
			continue
		}
		if !strings.HasPrefix(line, fourSpaceIndent) || strings.HasPrefix(line, fourSpaceIndent+" ") {
			// Six-space (or deeper) indent: a nested dependency line, not a
			// top-level spec.
			continue
		}

		libs = append(libs, trimmed)
	}

	return Summary{Libraries: libs}
}
