package model

import (
	"slices"

	"github.com/NickStees/drupal-update/pkg/domain/types"
)

// RunConfig is the resolved configuration of a single run. It is built once
// from flags and environment inputs and passed explicitly to every component
// that needs it.
type RunConfig struct {
	// Type selects which outdated packages are acted on. Packages whose
	// latest-status does not match are skipped unless Type is "all".
	Type types.UpdateType

	// Core enables updating the core framework family. When false, core
	// packages are left untouched and omitted from the report.
	Core bool

	// Exclude lists package names that must never be updated.
	Exclude []string

	// Output is an optional path for writing the Markdown report to a file
	// in addition to stdout.
	Output string
}

// Excluded reports whether the package name is on the exclude list.
func (c RunConfig) Excluded(name string) bool {
	return slices.Contains(c.Exclude, name)
}
