// Package app implements the orchestrator (spec.md §4.8): the fixed
// sequence of fast-path check, parse, catalog population, resolve, and
// emit that a single CLI invocation runs end to end.
package app

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trailib/supergemlock/internal/catalog"
	"github.com/trailib/supergemlock/internal/core/domain"
	"github.com/trailib/supergemlock/internal/core/ports"
	"github.com/trailib/supergemlock/internal/fastpath"
	"github.com/trailib/supergemlock/internal/lockfile"
	"github.com/trailib/supergemlock/internal/manifest"
	"github.com/trailib/supergemlock/internal/resolver"
	"github.com/trailib/supergemlock/internal/snapshot"
	"go.trai.ch/zerr"
)

// ManifestPath and SnapshotPath are the fixed relative paths the
// orchestrator reads and writes (spec.md §6).
const (
	ManifestPath = "Gemfile"
	LockPath     = "Gemfile.lock"
	SnapshotPath = "Gemfile.lock.bin"
)

// Orchestrator wires C2-C7 into the single sequence described in spec.md
// §4.8.
type Orchestrator struct {
	catalogSource ports.CatalogSource
	logger        ports.Logger
}

// New returns an Orchestrator reading library availability from source and
// reporting timing and outcome through logger.
func New(source ports.CatalogSource, logger ports.Logger) *Orchestrator {
	return &Orchestrator{catalogSource: source, logger: logger}
}

// Result summarizes a single Run for callers that want to report it (e.g.
// the install/update subcommands).
type Result struct {
	// Skipped is true when the fast-path gate matched and no resolution
	// ran.
	Skipped bool
	// Libraries is the resolved set, in Resolution insertion order. Empty
	// when Skipped is true.
	Libraries []domain.ResolvedLibrary
}

// Run executes the orchestrator against the manifest at ManifestPath,
// honoring the fast-path gate unless force is true.
func (o *Orchestrator) Run(ctx context.Context, force bool) (Result, error) {
	start := time.Now()
	defer func() {
		o.logger.Info("orchestrator run finished", "elapsed", time.Since(start))
	}()

	manifestBytes, err := os.ReadFile(ManifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, zerr.Wrap(domain.ErrManifestNotFound, err.Error())
		}
		return Result{}, zerr.Wrap(domain.ErrManifestUnreadable, err.Error())
	}

	if !force {
		if fastpath.Evaluate(SnapshotPath, manifestBytes) == fastpath.Skip {
			o.logger.Info("fast-path hit, skipping resolution")
			return Result{Skipped: true}, nil
		}
	}

	var parsed *manifest.Parsed
	var digest [32]byte

	// Manifest parsing and digest computation both derive from the same
	// byte slice already in memory; running them on separate goroutines
	// overlaps two independent CPU-bound passes.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		digest = snapshot.Digest(manifestBytes)
		return nil
	})
	g.Go(func() error {
		p, err := manifest.Parse(manifestBytes)
		if err != nil {
			return err
		}
		parsed = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	entries, err := o.catalogSource.Entries(ctx)
	if err != nil {
		return Result{}, zerr.Wrap(err, "failed to populate catalog")
	}

	cache := catalog.New()
	cache.Populate(entries)

	res := resolver.Resolve(parsed.Requirements, cache)

	lockText := lockfile.Emit(parsed.RegistryURL, res, parsed.Requirements)
	if err := os.WriteFile(LockPath, []byte(lockText), 0o644); err != nil {
		return Result{}, zerr.Wrap(domain.ErrEmissionFailed, err.Error())
	}

	snapFile, err := os.Create(SnapshotPath)
	if err != nil {
		return Result{}, zerr.Wrap(domain.ErrSnapshotWriteFailed, err.Error())
	}
	defer snapFile.Close()
	if err := snapshot.Write(snapFile, res, digest); err != nil {
		return Result{}, err
	}

	o.logger.Info("resolution complete", "library_count", res.Len())

	return Result{Libraries: res.Libraries()}, nil
}

// InstallResult is the outcome of Install.
type InstallResult struct {
	// Reused is true when an existing lock file was found and returned
	// as-is, without running resolution.
	Reused bool
	// Libraries is the "name (version)" pairs from the reused lock file.
	// Populated only when Reused is true.
	Libraries []string
	// Result is populated only when Reused is false (a full resolution ran).
	Result Result
}

// Install implements the gembundle "install" subcommand (spec.md §6): reuse
// an existing lock file if one is present, otherwise run full resolution.
func (o *Orchestrator) Install(ctx context.Context) (InstallResult, error) {
	existing, err := os.ReadFile(LockPath)
	if err == nil {
		return InstallResult{Reused: true, Libraries: lockfile.Summarize(string(existing)).Libraries}, nil
	}
	if !os.IsNotExist(err) {
		return InstallResult{}, zerr.Wrap(domain.ErrEmissionFailed, err.Error())
	}

	result, err := o.Run(ctx, true)
	if err != nil {
		return InstallResult{}, err
	}
	return InstallResult{Result: result}, nil
}

// Update implements the gembundle "update" subcommand (spec.md §6): ignore
// any existing lock and run full resolution. names is accepted for
// forward-compatible CLI parity but does not scope resolution to a subset
// of libraries in this version (spec.md §9 open question on per-library
// update semantics is not resolved here).
func (o *Orchestrator) Update(ctx context.Context, _ []string) (Result, error) {
	return o.Run(ctx, true)
}

// CheckResult is the outcome of Check.
type CheckResult struct {
	LockFileExists bool
}

// Check implements the gembundle "check" subcommand (spec.md §6): in this
// version, an existence check only.
func (o *Orchestrator) Check() CheckResult {
	_, err := os.Stat(LockPath)
	return CheckResult{LockFileExists: err == nil}
}
