package config

import "github.com/urfave/cli/v3"

// Composer holds composer invocation configuration
type Composer struct {
	Dir    string
	Bin    string
	Prefix string
	Auth   string `masq:"secret"`
}

// Flags returns CLI flags for composer configuration
func (c *Composer) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Project directory holding composer.json",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("DRUPAL_UPDATE_DIR"),
		},
		&cli.StringFlag{
			Name:        "composer",
			Usage:       "Composer executable",
			Value:       "composer",
			Destination: &c.Bin,
			Sources:     cli.EnvVars("DRUPAL_UPDATE_COMPOSER"),
		},
		&cli.StringFlag{
			Name:        "prefix",
			Aliases:     []string{"p"},
			Usage:       "Command prefix prepended to every composer invocation (e.g. \"ddev\")",
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("INPUT_PREFIX", "DRUPAL_UPDATE_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "composer-auth",
			Usage:       "COMPOSER_AUTH credential JSON for private package repositories",
			Destination: &c.Auth,
			Sources:     cli.EnvVars("COMPOSER_AUTH"),
		},
	}
}
