package commands

import (
	"context"
	"slices"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/rios0rios0/cargo-outdated/internal/domain/entities"
	"github.com/rios0rios0/cargo-outdated/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/cargo-outdated/internal/infrastructure/repositories"
)

// Outdated is the interface for the outdated-dependency scan.
type Outdated interface {
	Execute(ctx context.Context, settings *entities.Settings, opts OutdatedOptions) (*entities.OutdatedReport, error)
}

// OutdatedOptions holds runtime options for a single scan.
type OutdatedOptions struct {
	ManifestPath string // Cargo.toml or a directory below the project root; empty means the working directory
}

// OutdatedCommand orchestrates the scan:
// load workspace -> query the registry for every dependency -> collect stale ones.
type OutdatedCommand struct {
	workspace  repositories.WorkspaceRepository
	registries *infraRepos.RegistryFactories
}

// NewOutdatedCommand creates a new OutdatedCommand.
func NewOutdatedCommand(
	workspace repositories.WorkspaceRepository,
	registries *infraRepos.RegistryFactories,
) *OutdatedCommand {
	return &OutdatedCommand{
		workspace:  workspace,
		registries: registries,
	}
}

// Execute loads the workspace and checks every registry dependency against
// the latest published release. Setup failures abort the run; a failed
// lookup only drops that dependency from the report.
func (it *OutdatedCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts OutdatedOptions,
) (*entities.OutdatedReport, error) {
	packages, err := it.workspace.Load(ctx, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	registry, err := it.registries.Get(settings.Registry)
	if err != nil {
		return nil, err
	}

	logger.Infof(
		"Checking %d dependencies across %d packages against %s",
		packages.DependencyCount(), len(packages), settings.Registry.URL,
	)

	report, err := it.scan(ctx, registry, settings, packages)
	if err != nil {
		return nil, err
	}

	if report.Skipped > 0 {
		logger.Warnf("%d dependencies could not be checked (run with --verbose for details)", report.Skipped)
	}
	logger.Debugf("Scan complete: %d outdated, %d skipped", report.Len(), report.Skipped)
	return report, nil
}

// scan fans out one task per package and one per dependency within it. All
// registry calls share a single semaphore, so the number of requests in
// flight never exceeds settings.Workers().
func (it *OutdatedCommand) scan(
	ctx context.Context,
	registry repositories.RegistryRepository,
	settings *entities.Settings,
	packages entities.PackageDependencySet,
) (*entities.OutdatedReport, error) {
	names := packages.PackageNames()
	results := make([][]entities.OutdatedFinding, len(names))
	sem := semaphore.NewWeighted(int64(settings.Workers()))

	var skipped atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	for i, name := range names {
		group.Go(func() error {
			findings, err := it.scanPackage(groupCtx, sem, registry, settings, name, packages[name], &skipped)
			if err != nil {
				return err
			}
			results[i] = findings
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	report := entities.NewOutdatedReport()
	for _, findings := range results {
		report.Merge(findings...)
	}
	report.Skipped = int(skipped.Load())
	return report, nil
}

// scanPackage checks the dependencies of one package. Each task writes only
// its own slot, and the slots keep declaration order.
func (it *OutdatedCommand) scanPackage(
	ctx context.Context,
	sem *semaphore.Weighted,
	registry repositories.RegistryRepository,
	settings *entities.Settings,
	pkg string,
	set *entities.DependencySet,
	skipped *atomic.Int64,
) ([]entities.OutdatedFinding, error) {
	deps := set.Items()
	slots := make([]*entities.OutdatedFinding, len(deps))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, dep := range deps {
		if dep.IsLocalPath() {
			logger.Debugf("[%s] Skipping local dependency %s", pkg, dep.Name)
			continue
		}
		if settings.IsIgnored(dep.Name) {
			logger.Debugf("[%s] Skipping ignored dependency %s", pkg, dep.Name)
			continue
		}

		group.Go(func() error {
			if err := sem.Acquire(groupCtx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			info, err := registry.FetchLatest(groupCtx, dep.Name, entities.SelectionOptions{
				SkipPrereleases: settings.MatchReleaseChannel && !dep.Requirement.HasPrerelease(),
			})
			if err != nil {
				logger.Debugf("[%s] Failed to check %s: %v", pkg, dep.Name, err)
				skipped.Add(1)
				return nil
			}
			if info.IsEmpty() {
				logger.Debugf("[%s] No eligible release of %s, comparing against %s", pkg, dep.Name, info.Version)
			}

			if finding, outdated := entities.Evaluate(pkg, dep, info); outdated {
				slots[i] = &finding
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	findings := make([]entities.OutdatedFinding, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			findings = append(findings, *slot)
		}
	}
	return slices.Compact(findings), nil
}
