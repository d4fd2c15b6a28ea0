package usecase

import (
	"context"

	"github.com/NickStees/drupal-update/pkg/domain/interfaces"
	"github.com/NickStees/drupal-update/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type checkUseCase struct {
	pm      interfaces.PackageManager
	cfg     model.RunConfig
	patches model.PatchIndex
}

// NewCheck creates a new instance of CheckUseCase
func NewCheck(pm interfaces.PackageManager, cfg model.RunConfig, patches model.PatchIndex) interfaces.CheckUseCase {
	return &checkUseCase{
		pm:      pm,
		cfg:     cfg,
		patches: patches,
	}
}

// List returns the outdated packages an update run would act on, without
// touching anything. Excluded and out-of-scope packages are filtered out and
// the core family is folded into its single representative record.
func (uc *checkUseCase) List(ctx context.Context) ([]model.Package, error) {
	logger := ctxlog.From(ctx)

	packages, err := uc.pm.ListOutdated(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list outdated packages")
	}

	contributed, core := splitCore(packages)

	var actionable []model.Package
	for _, pkg := range contributed {
		if skip, reason := skipPackage(uc.cfg, pkg); skip {
			logger.Debug("Omitting package from listing", "package", pkg.Name, "reason", reason)
			continue
		}
		pkg.Patches = uc.patches.For(pkg.Name)
		actionable = append(actionable, pkg)
	}

	if uc.cfg.Core {
		if corePkg, ok := pickCoreRecord(core); ok {
			if skip, reason := skipPackage(uc.cfg, corePkg); skip {
				logger.Debug("Omitting core family from listing", "package", corePkg.Name, "reason", reason)
			} else {
				corePkg.Patches = uc.patches.For(corePkg.Name)
				actionable = append(actionable, corePkg)
			}
		}
	}

	logger.Info("Collected actionable packages", "outdated", len(packages), "actionable", len(actionable))

	return actionable, nil
}
