package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/algorandfoundation/devportal-actions/pkg/infra/command"
	"github.com/algorandfoundation/devportal-actions/pkg/usecase"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const manifestUsage = "Usage: devportal manifest <docs_path> <repository> <commit_sha>"

func cmdManifest() *cli.Command {
	return &cli.Command{
		Name:      "manifest",
		Usage:     "Detect the documentation generator and write manifest.json",
		ArgsUsage: "<docs_path> <repository> <commit_sha>",
		Action: func(ctx context.Context, c *cli.Command) error {
			args := c.Args()
			input := &model.ManifestInput{
				DocsPath:   args.Get(0),
				Repository: args.Get(1),
				Commit:     args.Get(2),
			}
			if input.DocsPath == "" || input.Repository == "" || input.Commit == "" {
				_, _ = fmt.Fprintln(os.Stderr, manifestUsage)
				return goerr.New("missing manifest arguments",
					goerr.T(model.ErrTagUsage),
					goerr.V("args", args.Slice()),
				)
			}

			detector := usecase.NewGeneratorDetector(command.NewRunner())
			manifest, err := usecase.NewManifest(detector).Generate(ctx, input)
			if err != nil {
				return err
			}

			_, _ = color.New(color.FgGreen).Fprintf(os.Stderr, "Generated %s (%s %s)\n",
				filepath.Join(input.DocsPath, model.ManifestFileName),
				manifest.Generator.Tool,
				manifest.Generator.Version,
			)
			return nil
		},
	}
}
