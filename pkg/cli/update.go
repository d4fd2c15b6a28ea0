package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/NickStees/drupal-update/pkg/cli/config"
	"github.com/NickStees/drupal-update/pkg/controller/actions"
	"github.com/NickStees/drupal-update/pkg/controller/console"
	"github.com/NickStees/drupal-update/pkg/infra/composer"
	"github.com/NickStees/drupal-update/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdUpdate() *cli.Command {
	var (
		updateCfg   config.Update
		composerCfg config.Composer
	)

	flags := append(updateCfg.Flags(), composerCfg.Flags()...)

	return &cli.Command{
		Name:    "update",
		Aliases: []string{"up"},
		Usage:   "Apply available updates and print a Markdown report",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			cfg, err := updateCfg.RunConfig()
			if err != nil {
				return err
			}

			logger.Debug("Resolved configuration",
				"update", updateCfg,
				"composer", composerCfg,
			)

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

			report, err := usecase.NewUpdate(pm, cfg, manifest.Patches).Run(ctx)
			if err != nil {
				return err
			}

			markdown := report.Markdown()

			// The report document owns stdout.
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

			console.NewPrinter(os.Stderr).Summarize(report)

			return nil
		},
	}
}
