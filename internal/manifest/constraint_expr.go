package manifest

import (
	"strings"

	"github.com/trailib/supergemlock/internal/core/domain"
)

// operatorPrefixes is checked in order so that multi-character operators
// ("~>", ">=", "<=", "!=") are matched before their single-character
// prefixes ("<", ">").
var operatorPrefixes = []struct {
	prefix string
	op     domain.ConstraintOp
}{
	{"~>", domain.OpCompatible},
	{">=", domain.OpGreaterEqual},
	{"<=", domain.OpLessEqual},
	{"!=", domain.OpNotEqual},
	{">", domain.OpGreater},
	{"<", domain.OpLess},
	{"=", domain.OpEqual},
}

// ParseConstraintExpr parses a single constraint expression such as
// "~> 3.0", ">= 1.0", or "= 7.0.0" (spec.md §3).
func ParseConstraintExpr(expr string) (domain.Constraint, error) {
	expr = strings.TrimSpace(expr)

	for _, oc := range operatorPrefixes {
		if !strings.HasPrefix(expr, oc.prefix) {
			continue
		}
		versionText := strings.TrimSpace(expr[len(oc.prefix):])
		v, err := domain.ParseVersion(versionText)
		if err != nil {
			return domain.Constraint{}, err
		}
		return domain.Constraint{
			Op:        oc.op,
			Version:   v,
			Precision: len(strings.Split(versionText, ".")),
		}, nil
	}

	// No operator prefix: bare version string implies "=".
	v, err := domain.ParseVersion(expr)
	if err != nil {
		return domain.Constraint{}, err
	}
	return domain.Constraint{Op: domain.OpEqual, Version: v}, nil
}
