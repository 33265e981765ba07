// Package resolver implements the parallel resolver (spec.md §4.4): a
// worker-pool that computes the resolved set over the transitive closure
// of a manifest's root requirements against a populated catalog.
package resolver

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trailib/supergemlock/internal/catalog"
	"github.com/trailib/supergemlock/internal/core/domain"
)

// maxEmptyObservations bounds how many consecutive empty pops a worker
// tolerates (with backoff) before concluding the queue has drained for
// good and exiting (spec.md §4.4 "Worker loop").
const maxEmptyObservations = 4

// Resolve computes a Resolution for reqs against cache. It never returns a
// hard conflict error in this version: a name with no known versions, or no
// version satisfying its merged constraints, is silently dropped (spec.md
// §4.4 step 5, §7 class 4) — conservative behavior documented for the
// seeded-catalog reference implementation.
func Resolve(reqs []domain.RootRequirement, cache *catalog.Cache) *domain.Resolution {
	res := newResolveState(reqs, cache)
	res.run()
	return res.resolution
}

type resolveState struct {
	cache *catalog.Cache

	// byName indexes root requirements by name for constraint lookup and
	// source resolution (spec.md §4.4 step 2 and step 6).
	byName map[string][]domain.RootRequirement

	resMu      sync.Mutex
	resolution *domain.Resolution

	queueMu sync.Mutex
	queue   []string // LIFO: appended and popped from the tail.

	done atomic.Bool
}

func newResolveState(reqs []domain.RootRequirement, cache *catalog.Cache) *resolveState {
	byName := make(map[string][]domain.RootRequirement, len(reqs))
	queue := make([]string, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))

	for _, r := range reqs {
		byName[r.Name] = append(byName[r.Name], r)
		if !seen[r.Name] {
			seen[r.Name] = true
			queue = append(queue, r.Name)
		}
	}

	return &resolveState{
		cache:      cache,
		byName:     byName,
		resolution: domain.NewResolution(),
		queue:      queue,
	}
}

func (s *resolveState) run() {
	workers := workerCount(len(s.byName))

	if workers <= 1 {
		s.workerLoop()
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			s.workerLoop()
		}()
	}
	wg.Wait()
}

// workerCount implements spec.md §4.4's scheduling model: parallel OS
// threads, count min(available_parallelism, |root_requirements|); falls
// back to a single-threaded path when that minimum is 1.
func workerCount(rootCount int) int {
	if rootCount <= 0 {
		return 1
	}
	n := runtime.GOMAXPROCS(0)
	if rootCount < n {
		n = rootCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// workerLoop is the per-worker drain loop (spec.md §4.4 "Worker loop").
func (s *resolveState) workerLoop() {
	empty := 0
	for {
		name, ok := s.popWork()
		if !ok {
			empty++
			if empty >= maxEmptyObservations {
				return
			}
			s.backoff(empty)
			continue
		}
		empty = 0
		s.resolveOne(name)
	}
}

func (s *resolveState) backoff(attempt int) {
	// Bounded spin for the first attempt, then a short sleep — avoids a
	// syscall in the common case where another worker is about to enqueue
	// more work.
	if attempt == 1 {
		for i := 0; i < 1000; i++ {
			runtime.Gosched()
		}
		return
	}
	time.Sleep(time.Duration(attempt) * time.Millisecond)
}

func (s *resolveState) popWork() (string, bool) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if len(s.queue) == 0 {
		return "", false
	}
	last := len(s.queue) - 1
	name := s.queue[last]
	s.queue = s.queue[:last]
	return name, true
}

func (s *resolveState) pushWork(name string) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	s.queue = append(s.queue, name)
}

// resolveOne implements spec.md §4.4's per-name resolution steps 1-7.
func (s *resolveState) resolveOne(name string) {
	s.resMu.Lock()
	if s.resolution.Has(name) {
		s.resMu.Unlock()
		return
	}
	s.resMu.Unlock()

	constraints := s.mergedRootConstraints(name)

	available := s.cache.VersionsFor(name)
	if len(available) == 0 {
		// step 3: silently dropped — no-op.
		return
	}

	selected, ok := selectMax(available, constraints)
	if !ok {
		// step 5: no version satisfies — dropped, not a hard conflict.
		return
	}

	lib := domain.ResolvedLibrary{
		Name:            name,
		Version:         selected.Version,
		Source:          s.sourceFor(name),
		DependencyNames: dependencyNames(selected),
	}

	s.resMu.Lock()
	if s.resolution.Has(name) {
		s.resMu.Unlock()
		return
	}
	s.resolution.Add(lib)
	s.resMu.Unlock()

	for _, dep := range lib.DependencyNames {
		s.pushWork(dep)
	}
}

// mergedRootConstraints collects every constraint declared by root
// requirements with this name. Transitive constraints are not re-merged
// for conflict detection in this version (spec.md §4.4 step 2, §9 open
// question).
func (s *resolveState) mergedRootConstraints(name string) []domain.Constraint {
	var out []domain.Constraint
	for _, r := range s.byName[name] {
		out = append(out, r.Constraints...)
	}
	return out
}

// sourceFor resolves the source to use for a selected library: the matching
// root requirement's source if any, else the default registry source.
func (s *resolveState) sourceFor(name string) domain.Source {
	reqs := s.byName[name]
	if len(reqs) == 0 {
		return domain.Source{Kind: domain.SourceRegistry}
	}
	return reqs[0].Source
}

// selectMax picks the entry whose version is the maximum among those
// satisfying every constraint in cs (spec.md §4.4 step 4).
func selectMax(available []domain.CatalogEntry, cs []domain.Constraint) (domain.CatalogEntry, bool) {
	var best domain.CatalogEntry
	found := false

	for _, entry := range available {
		if !domain.SatisfyAll(entry.Version, cs) {
			continue
		}
		if !found || best.Version.Less(entry.Version) {
			best = entry
			found = true
		}
	}

	return best, found
}

func dependencyNames(entry domain.CatalogEntry) []string {
	names := make([]string, len(entry.Dependencies))
	for i, d := range entry.Dependencies {
		names[i] = d.Name.String()
	}
	return names
}
