package interfaces

import (
	"context"

	"github.com/NickStees/drupal-update/pkg/domain/model"
)

// PackageManager defines operations for driving composer against a project
type PackageManager interface {
	// ListOutdated returns the locked packages with newer versions available,
	// in composer's listing order.
	ListOutdated(ctx context.Context) ([]model.Package, error)

	// Update runs a generic update for the given package names or wildcard
	// patterns. A non-zero exit lands in the result, not in the error; the
	// error is reserved for failures to run composer at all.
	Update(ctx context.Context, packages ...string) (*model.CommandResult, error)

	// Require pins exact versions via composer require. Each requirement is a
	// "name:version" pair.
	Require(ctx context.Context, requirements ...string) (*model.CommandResult, error)

	// LockContains reports whether the lock file currently contains the given
	// version string anywhere in its text.
	LockContains(version string) (bool, error)
}
