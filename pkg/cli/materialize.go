package cli

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/algorandfoundation/devportal-actions/pkg/assets"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/algorandfoundation/devportal-actions/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMaterialize() *cli.Command {
	var (
		profiles  []string
		workspace string
		sourceDir string
	)

	return &cli.Command{
		Name:  "materialize",
		Usage: "Copy bundled documentation config files into the workspace",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "profile",
				Usage:       "Config profile to materialize (typedoc, sphinx)",
				Value:       []string{"typedoc"},
				Destination: &profiles,
				Sources:     cli.EnvVars("DEVPORTAL_CONFIG_PROFILE"),
			},
			&cli.StringFlag{
				Name:        "workspace",
				Usage:       "Directory receiving the config files",
				Value:       ".",
				Destination: &workspace,
				Sources:     cli.EnvVars("GITHUB_WORKSPACE"),
			},
			&cli.StringFlag{
				Name:        "source-dir",
				Usage:       "Read config files from this directory instead of the bundled set",
				Destination: &sourceDir,
				Sources:     cli.EnvVars("DEVPORTAL_CONFIG_SOURCE_DIR"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			var files []model.ConfigFile
			for _, name := range profiles {
				profile, ok := model.ConfigProfiles[name]
				if !ok {
					return goerr.New("unknown config profile",
						goerr.T(model.ErrTagUsage),
						goerr.V("profile", name),
					)
				}
				files = append(files, profile...)
			}

			var source fs.FS = assets.Defaults
			if sourceDir != "" {
				source = os.DirFS(sourceDir)
			}

			logger.Info("Materializing config files",
				slog.Any("profiles", profiles),
				slog.String("workspace", workspace),
				slog.String("source_dir", sourceDir),
			)

			results, err := usecase.NewMaterializer(source).Materialize(ctx, &model.MaterializeInput{
				WorkDir: workspace,
				Files:   files,
			})
			if err != nil {
				return err
			}

			for _, r := range results {
				if !r.Skipped {
					logger.Info("Config file written", slog.String("path", r.Destination))
				}
			}
			return nil
		},
	}
}
