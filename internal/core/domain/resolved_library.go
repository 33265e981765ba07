package domain

// ResolvedLibrary is one library selected by the resolver. DependencyNames
// is the ordered list of direct dependency names of the selected version;
// the emitter resolves each name to a version via the Resolution map at
// emission time rather than holding a back-reference, which sidesteps any
// cyclic ownership between mutually dependent libraries (spec.md §9).
type ResolvedLibrary struct {
	Name            string
	Version         Version
	Source          Source
	DependencyNames []string
}
