package interfaces

import (
	"context"

	"github.com/NickStees/drupal-update/pkg/domain/model"
)

// UpdateUseCase defines the interface for the update run
type UpdateUseCase interface {
	// Run applies the requested updates package by package and returns the
	// accumulated summary report. Per-package failures are recorded in the
	// report; the returned error covers only run-level failures.
	Run(ctx context.Context) (*model.Report, error)
}

// CheckUseCase defines operations for the read-only outdated listing
type CheckUseCase interface {
	// List returns the outdated packages that the current configuration would
	// act on, without invoking any update command.
	List(ctx context.Context) ([]model.Package, error)
}
