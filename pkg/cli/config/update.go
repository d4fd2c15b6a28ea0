package config

import (
	"strings"
	"unicode"

	"github.com/NickStees/drupal-update/pkg/domain/model"
	"github.com/NickStees/drupal-update/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Update holds update run configuration
type Update struct {
	Type    string
	Core    bool
	Exclude string
	Output  string
}

// Flags returns CLI flags for update configuration
func (c *Update) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "type",
			Aliases:     []string{"t"},
			Usage:       "Update scope (semver-safe-update, all)",
			Value:       string(types.UpdateTypeSemverSafe),
			Destination: &c.Type,
			Sources:     cli.EnvVars("INPUT_TYPE", "DRUPAL_UPDATE_TYPE"),
		},
		&cli.BoolFlag{
			Name:        "core",
			Aliases:     []string{"c"},
			Usage:       "Update the Drupal core package family",
			Value:       true,
			Destination: &c.Core,
			Sources:     cli.EnvVars("INPUT_CORE", "DRUPAL_UPDATE_CORE"),
		},
		&cli.StringFlag{
			Name:        "exclude",
			Aliases:     []string{"e"},
			Usage:       "Package names to leave untouched (comma or space separated)",
			Destination: &c.Exclude,
			Sources:     cli.EnvVars("INPUT_EXCLUDE", "DRUPAL_UPDATE_EXCLUDE"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the Markdown report to this file as well (.md)",
			Destination: &c.Output,
		},
	}
}

// Validate checks the configuration values
func (c *Update) Validate() error {
	if err := types.UpdateType(c.Type).Validate(); err != nil {
		return err
	}
	if c.Output != "" && !strings.HasSuffix(c.Output, ".md") {
		return goerr.New("output file must have a .md extension", goerr.V("output", c.Output))
	}
	return nil
}

// RunConfig builds the resolved run configuration
func (c *Update) RunConfig() (model.RunConfig, error) {
	if err := c.Validate(); err != nil {
		return model.RunConfig{}, err
	}

	return model.RunConfig{
		Type:    types.UpdateType(c.Type),
		Core:    c.Core,
		Exclude: c.ExcludeList(),
		Output:  c.Output,
	}, nil
}

// ExcludeList parses the exclude flag into package names
func (c *Update) ExcludeList() []string {
	return strings.FieldsFunc(c.Exclude, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
