package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/NickStees/drupal-update/pkg/cli/config"
	"github.com/NickStees/drupal-update/pkg/controller/actions"
	"github.com/NickStees/drupal-update/pkg/domain/model"
	"github.com/NickStees/drupal-update/pkg/infra/composer"
	"github.com/NickStees/drupal-update/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdCheck() *cli.Command {
	var (
		updateCfg    config.Update
		composerCfg  config.Composer
		failOutdated bool
	)

	flags := append(updateCfg.Flags(), composerCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "fail-outdated",
		Usage:       "Exit with an error when actionable updates exist",
		Destination: &failOutdated,
		Sources:     cli.EnvVars("DRUPAL_UPDATE_FAIL_OUTDATED"),
	})

	return &cli.Command{
		Name:  "check",
		Usage: "List actionable updates without changing anything",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			cfg, err := updateCfg.RunConfig()
			if err != nil {
				return err
			}

			prefix := composer.SplitPrefix(composerCfg.Prefix)
			if err := composer.Preflight(composerCfg.Dir, composerCfg.Bin, prefix); err != nil {
				return err
			}

			manifest, err := composer.LoadManifest(composerCfg.Dir)
			if err != nil {
				return err
			}

			pm := composer.NewClient(composerCfg.Dir,
				composer.WithBin(composerCfg.Bin),
				composer.WithPrefix(composerCfg.Prefix),
				composer.WithAuth(composerCfg.Auth),
			)

			packages, err := usecase.NewCheck(pm, cfg, manifest.Patches).List(ctx)
			if err != nil {
				return err
			}

			markdown := model.ListingMarkdown(packages)

			fmt.Fprint(os.Stdout, markdown)

			if cfg.Output != "" {
				if err := os.WriteFile(cfg.Output, []byte(markdown), 0644); err != nil {
					return goerr.Wrap(err, "failed to write report file", goerr.V("path", cfg.Output))
				}
				logger.Info("Wrote report file", "path", cfg.Output)
			}

			if actions.Hosted() {
				if err := actions.NewPublisher().Publish(ctx, markdown); err != nil {
					return err
				}
			}

			if failOutdated && len(packages) > 0 {
				return goerr.New("actionable updates exist", goerr.V("count", len(packages)))
			}

			return nil
		},
	}
}
