package types

import "github.com/m-mizutani/goerr/v2"

// UpdateType selects which outdated packages the run is allowed to touch.
type UpdateType string

const (
	// UpdateTypeSemverSafe updates only packages whose newer version already
	// satisfies the declared constraint (no major bumps).
	UpdateTypeSemverSafe UpdateType = "semver-safe-update"

	// UpdateTypeAll also updates packages that need a constraint change.
	UpdateTypeAll UpdateType = "all"
)

// Validate checks that the value is one of the supported update types.
func (t UpdateType) Validate() error {
	switch t {
	case UpdateTypeSemverSafe, UpdateTypeAll:
		return nil
	default:
		return goerr.New("invalid update type, must be \"semver-safe-update\" or \"all\"",
			goerr.V("type", string(t)))
	}
}

func (t UpdateType) String() string {
	return string(t)
}
