package domain

// CatalogDependency is a (name, constraints) pair attached to a single
// CatalogEntry. Name is interned: the same dependency (e.g. "activesupport")
// recurs across every version of its dependents, so a real catalog holds
// many thousands of CatalogDependency values that would otherwise each
// allocate their own copy of the same few hundred distinct names.
type CatalogDependency struct {
	Name        InternedString
	Constraints []Constraint
}

// CatalogEntry is one known (name, version) record with its direct
// dependencies. Entries sharing a name form the available set for that
// library (spec.md §3). Once inserted into the catalog cache, entries are
// immutable.
type CatalogEntry struct {
	Name         string
	Version      Version
	Dependencies []CatalogDependency
}
