package usecase

import (
	"context"
	"strings"

	"github.com/NickStees/drupal-update/pkg/domain/interfaces"
	"github.com/NickStees/drupal-update/pkg/domain/model"
	"github.com/NickStees/drupal-update/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type updateUseCase struct {
	pm      interfaces.PackageManager
	cfg     model.RunConfig
	patches model.PatchIndex
}

// NewUpdate creates a new instance of UpdateUseCase
func NewUpdate(pm interfaces.PackageManager, cfg model.RunConfig, patches model.PatchIndex) interfaces.UpdateUseCase {
	return &updateUseCase{
		pm:      pm,
		cfg:     cfg,
		patches: patches,
	}
}

// Run lists outdated packages, attempts each update one at a time and
// collects the results into a report. Contributed packages are processed in
// listing order; the core framework family is folded into a single row at
// the end. Per-package failures never abort the run.
func (uc *updateUseCase) Run(ctx context.Context) (*model.Report, error) {
	logger := ctxlog.From(ctx)

	packages, err := uc.pm.ListOutdated(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list outdated packages")
	}

	contributed, core := splitCore(packages)

	logger.Info("Listed outdated packages",
		"total", len(packages),
		"contributed", len(contributed),
		"core_family", len(core),
		"type", uc.cfg.Type,
		"core_enabled", uc.cfg.Core,
	)

	report := model.NewReport()

	for _, pkg := range contributed {
		pkg.Patches = uc.patches.For(pkg.Name)
		uc.record(report, pkg, uc.processPackage(ctx, pkg))
	}

	if uc.cfg.Core {
		if corePkg, ok := pickCoreRecord(core); ok {
			corePkg.Patches = uc.patches.For(corePkg.Name)
			uc.record(report, corePkg, uc.processCore(ctx, corePkg))
		}
	} else if len(core) > 0 {
		logger.Info("Core updates disabled, leaving core family untouched", "packages", packageNames(core))
	}

	return report, nil
}

// record appends the row and derives the highlight bullet when the outcome
// warrants one.
func (uc *updateUseCase) record(report *model.Report, pkg model.Package, outcome model.Outcome) {
	switch outcome.Kind {
	case model.OutcomePatchFailure:
		report.Highlightf("%s failed to apply a patch: %s", pkg.Name, outcome.Detail)
	case model.OutcomeDependencyError:
		report.Highlightf("%s has an unresolved dependency.", pkg.Name)
	}
	report.Add(pkg, outcome)
}

// processPackage applies a single contributed package update and classifies
// the result.
func (uc *updateUseCase) processPackage(ctx context.Context, pkg model.Package) model.Outcome {
	logger := ctxlog.From(ctx)

	if skip, reason := skipPackage(uc.cfg, pkg); skip {
		logger.Info("Skipping package", "package", pkg.Name, "reason", reason)
		return model.NewOutcome(model.OutcomeSkipped)
	}

	logger.Info("Updating package",
		"package", pkg.Name,
		"from", pkg.Version,
		"to", pkg.Latest,
		"status", pkg.LatestStatus,
	)

	var res *model.CommandResult
	var err error
	if pkg.LatestStatus == model.StatusUpdatePossible {
		// The update command refuses to cross the version constraint, so the
		// constraint itself has to be rewritten to the proposed version.
		res, err = uc.pm.Require(ctx, pkg.Name+":"+pkg.Latest)
	} else {
		res, err = uc.pm.Update(ctx, pkg.Name)
	}
	if err != nil {
		logger.Error("Failed to invoke package manager", "package", pkg.Name, "error", err)
		return model.NewOutcome(model.OutcomeUnknown)
	}

	return uc.classify(ctx, pkg, res)
}

// processCore applies the core framework update. The whole family moves
// together: either through a wildcard update within the current constraints
// or, for a major jump, by pinning the canonical core packages to the
// proposed version.
func (uc *updateUseCase) processCore(ctx context.Context, pkg model.Package) model.Outcome {
	logger := ctxlog.From(ctx)

	if skip, reason := skipPackage(uc.cfg, pkg); skip {
		logger.Info("Skipping core update", "package", pkg.Name, "reason", reason)
		return model.NewOutcome(model.OutcomeSkipped)
	}

	logger.Info("Updating core framework",
		"package", pkg.Name,
		"from", pkg.Version,
		"to", pkg.Latest,
		"status", pkg.LatestStatus,
	)

	var res *model.CommandResult
	var err error
	if uc.cfg.Type == types.UpdateTypeAll && pkg.LatestStatus == model.StatusUpdatePossible {
		res, err = uc.pm.Require(ctx,
			model.CoreRecommendedPackage+":"+pkg.Latest,
			model.CoreScaffoldPackage+":"+pkg.Latest,
			model.CoreProjectMessage+":"+pkg.Latest,
		)
	} else {
		res, err = uc.pm.Update(ctx, model.CoreWildcard)
	}
	if err != nil {
		logger.Error("Failed to invoke package manager", "package", pkg.Name, "error", err)
		return model.NewOutcome(model.OutcomeUnknown)
	}

	return uc.classify(ctx, pkg, res)
}

// classify maps a finished command to an outcome. Exit 0 is success. Exit 1
// is ambiguous: dev snapshots and updates that still reached the lock file
// count as success, and a patch descriptor found in the output turns the
// result into a patch failure regardless. Exit 2 is a dependency conflict.
// Anything else is unknown.
func (uc *updateUseCase) classify(ctx context.Context, pkg model.Package, res *model.CommandResult) model.Outcome {
	logger := ctxlog.From(ctx)
	logger.Debug("Classifying update result",
		"package", pkg.Name,
		"exit_code", res.ExitCode,
		"output_bytes", len(res.Output),
	)

	switch res.ExitCode {
	case 0:
		return model.NewOutcome(model.OutcomeSuccess)

	case 1:
		outcome := model.NewOutcome(model.OutcomeError)
		if pkg.IsDevSnapshot() {
			// Dev snapshots never settle on a comparable version, so a
			// nonzero exit alone is not a failure.
			outcome = model.NewOutcome(model.OutcomeSuccess)
		} else if ok, err := uc.pm.LockContains(pkg.Latest); err != nil {
			logger.Warn("Failed to inspect lock file", "package", pkg.Name, "error", err)
		} else if ok {
			// The lock file already carries the proposed version, so the
			// update itself went through.
			outcome = model.NewOutcome(model.OutcomeSuccess)
		}
		if detail, ok := matchPatch(res.Output, pkg.Patches); ok {
			outcome = model.NewPatchFailure(detail)
		}
		return outcome

	case 2:
		return model.NewOutcome(model.OutcomeDependencyError)

	default:
		logger.Warn("Unrecognized exit code", "package", pkg.Name, "exit_code", res.ExitCode)
		return model.NewOutcome(model.OutcomeUnknown)
	}
}

// matchPatch scans the captured output for each patch descriptor in
// declaration order, case-insensitively. The last matching descriptor wins
// so that a later patch overriding an earlier one is the one reported.
func matchPatch(output string, patches []string) (string, bool) {
	lower := strings.ToLower(output)
	var match string
	var found bool
	for _, desc := range patches {
		if strings.Contains(lower, strings.ToLower(desc)) {
			match = desc
			found = true
		}
	}
	return match, found
}

// skipPackage decides whether a package must be left untouched under the
// given configuration.
func skipPackage(cfg model.RunConfig, pkg model.Package) (bool, string) {
	if cfg.Excluded(pkg.Name) {
		return true, "excluded"
	}
	if cfg.Type != types.UpdateTypeAll && pkg.LatestStatus != string(cfg.Type) {
		return true, "outside requested update type"
	}
	return false, ""
}

// splitCore partitions the listing into contributed packages and core family
// records, both in listing order.
func splitCore(packages []model.Package) (contributed, core []model.Package) {
	for _, pkg := range packages {
		if pkg.IsCoreFamily() {
			core = append(core, pkg)
		} else {
			contributed = append(contributed, pkg)
		}
	}
	return contributed, core
}

// pickCoreRecord selects the record that represents the core family in the
// report: drupal/core-recommended when present, then drupal/core, then the
// first family record listed.
func pickCoreRecord(core []model.Package) (model.Package, bool) {
	if len(core) == 0 {
		return model.Package{}, false
	}
	for _, name := range []string{model.CoreRecommendedPackage, model.CorePackage} {
		for _, pkg := range core {
			if pkg.Name == name {
				return pkg, true
			}
		}
	}
	return core[0], true
}

func packageNames(packages []model.Package) []string {
	names := make([]string, 0, len(packages))
	for _, pkg := range packages {
		names = append(names, pkg.Name)
	}
	return names
}
