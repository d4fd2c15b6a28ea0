package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// LatestStatus values reported by composer's outdated listing.
const (
	StatusUpToDate         = "up-to-date"
	StatusSemverSafeUpdate = "semver-safe-update"
	StatusUpdatePossible   = "update-possible"
)

// Core family packages. Drupal pins these to one shared version, so they are
// always updated together and reported as a single row.
const (
	CorePackage            = "drupal/core"
	CoreRecommendedPackage = "drupal/core-recommended"
	CoreScaffoldPackage    = "drupal/core-composer-scaffold"
	CoreProjectMessage     = "drupal/core-project-message"
	CoreWildcard           = "drupal/core-*"
)

const drupalVendorPrefix = "drupal/"

// OutdatedList is the document produced by `composer outdated --locked --format=json`.
type OutdatedList struct {
	Locked []Package `json:"locked"`
}

// Package represents one locked package from composer's outdated listing.
// Patches is attached afterwards from the project manifest; composer does not
// report it.
type Package struct {
	Name         string    `json:"name"`
	Homepage     string    `json:"homepage,omitempty"`
	Version      string    `json:"version"`
	Latest       string    `json:"latest"`
	LatestStatus string    `json:"latest-status"`
	Abandoned    Abandoned `json:"abandoned,omitempty"`
	Patches      []string  `json:"-"`
}

// IsCoreFamily reports whether the package belongs to the Drupal core family.
func (p Package) IsCoreFamily() bool {
	return p.Name == CorePackage || strings.HasPrefix(p.Name, drupalVendorPrefix+"core-")
}

// IsDevSnapshot reports whether the proposed version is a development branch
// snapshot. Snapshot versions are not byte-comparable against lock contents.
func (p Package) IsDevSnapshot() bool {
	return strings.HasPrefix(p.Latest, "dev-")
}

// ProjectURL returns the package homepage, falling back to the Drupal project
// page for drupal/* packages and the Packagist page for everything else.
func (p Package) ProjectURL() string {
	if p.Homepage != "" {
		return p.Homepage
	}
	if short, ok := strings.CutPrefix(p.Name, drupalVendorPrefix); ok {
		return "https://www.drupal.org/project/" + short
	}
	return "https://packagist.org/packages/" + p.Name
}

// ReleaseURL returns the release page for the proposed version, or "" when the
// proposed version is a development snapshot and has no release page.
func (p Package) ReleaseURL() string {
	if p.IsDevSnapshot() {
		return ""
	}
	if short, ok := strings.CutPrefix(p.Name, drupalVendorPrefix); ok {
		return fmt.Sprintf("https://www.drupal.org/project/%s/releases/%s", short, p.Latest)
	}
	return fmt.Sprintf("https://packagist.org/packages/%s#%s", p.Name, p.Latest)
}

// Abandoned mirrors composer's abandoned field, which is either a boolean or
// the name of a suggested replacement package.
type Abandoned struct {
	Flag        bool
	Replacement string
}

// UnmarshalJSON accepts both the boolean and the replacement-string form.
func (a *Abandoned) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		a.Flag = flag
		a.Replacement = ""
		return nil
	}

	var replacement string
	if err := json.Unmarshal(data, &replacement); err == nil {
		a.Flag = true
		a.Replacement = replacement
		return nil
	}

	return goerr.New("abandoned must be a boolean or a package name",
		goerr.V("value", string(data)))
}

func (a Abandoned) String() string {
	switch {
	case !a.Flag:
		return "no"
	case a.Replacement != "":
		return "yes, use " + a.Replacement
	default:
		return "yes"
	}
}
