package cli

import (
	"context"

	"github.com/algorandfoundation/devportal-actions/pkg/cli/config"
	githubcontroller "github.com/algorandfoundation/devportal-actions/pkg/controller/github"
	infragithub "github.com/algorandfoundation/devportal-actions/pkg/infra/github"
	"github.com/algorandfoundation/devportal-actions/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdNotify() *cli.Command {
	var dispatchCfg config.Dispatch

	return &cli.Command{
		Name:  "notify",
		Usage: "Send a docs_updated repository dispatch to the DevPortal",
		Flags: dispatchCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			input := dispatchCfg.Input()

			if !input.TestMode && dispatchCfg.EventPath != "" {
				details, err := githubcontroller.LoadEventFile(ctx, input.EventName, dispatchCfg.EventPath)
				if err != nil {
					logger.Warn("Ignoring unreadable event payload",
						"path", dispatchCfg.EventPath,
						"error", err,
					)
				} else {
					input.EventDetails = input.EventDetails.Merge(details)
				}
			}

			client, err := infragithub.NewClient(input.Token,
				infragithub.WithBaseURL(input.APIURL),
				infragithub.WithUserAgent(input.Name+"-docs"),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			return usecase.NewNotifier(client).Notify(ctx, input)
		},
	}
}
