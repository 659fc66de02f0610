package config

import (
	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Dispatch holds the DevPortal notification configuration. Values normally
// come from the GitHub Actions environment.
type Dispatch struct {
	Repository string
	Owner      string
	Name       string
	SHA        string
	EventName  string
	EventPath  string
	Token      string `masq:"secret"`

	DispatchRepo string
	DocsBranch   string
	ServerURL    string
	APIURL       string
	TestMode     bool

	Event model.EventDetails
}

// Flags returns CLI flags for dispatch configuration
func (c *Dispatch) Flags() []cli.Flag {
	str := func(name, env, usage string, dst *string) cli.Flag {
		return &cli.StringFlag{
			Name:        name,
			Usage:       usage,
			Destination: dst,
			Sources:     cli.EnvVars(env),
		}
	}

	return []cli.Flag{
		str("repository", "GITHUB_REPOSITORY", "Source repository (owner/name)", &c.Repository),
		str("repository-owner", "GITHUB_REPOSITORY_OWNER", "Source repository owner", &c.Owner),
		str("repository-name", "GITHUB_REPOSITORY_NAME", "Source repository short name", &c.Name),
		str("sha", "GITHUB_SHA", "Commit SHA that triggered the workflow", &c.SHA),
		str("event-name", "GITHUB_EVENT_NAME", "Triggering event name", &c.EventName),
		str("event-path", "GITHUB_EVENT_PATH", "Path to the triggering event payload", &c.EventPath),
		str("token", "DEVPORTAL_DISPATCH_TOKEN", "Token for the DevPortal repository dispatch. Notification is skipped if empty", &c.Token),

		str("release-tag-name", "GITHUB_EVENT_RELEASE_TAG_NAME", "Release tag", &c.Event.ReleaseTagName),
		str("release-name", "GITHUB_EVENT_RELEASE_NAME", "Release name", &c.Event.ReleaseName),
		str("release-url", "GITHUB_EVENT_RELEASE_HTML_URL", "Release page URL", &c.Event.ReleaseURL),
		str("release-created-at", "GITHUB_EVENT_RELEASE_CREATED_AT", "Release creation time", &c.Event.ReleaseCreatedAt),
		str("head-commit-url", "GITHUB_EVENT_HEAD_COMMIT_URL", "Head commit URL", &c.Event.HeadCommitURL),
		str("head-commit-timestamp", "GITHUB_EVENT_HEAD_COMMIT_TIMESTAMP", "Head commit timestamp", &c.Event.HeadCommitTimestamp),
		str("reason", "GITHUB_EVENT_INPUTS_REASON", "Reason for a manual update", &c.Event.InputsReason),

		&cli.StringFlag{
			Name:        "devportal-repo",
			Usage:       "DevPortal repository receiving the dispatch",
			Value:       model.DefaultDispatchRepo,
			Destination: &c.DispatchRepo,
			Sources:     cli.EnvVars("DEVPORTAL_REPO"),
		},
		&cli.StringFlag{
			Name:        "docs-branch",
			Usage:       "Branch holding the built documentation",
			Value:       model.DefaultDocsBranch,
			Destination: &c.DocsBranch,
			Sources:     cli.EnvVars("DOCS_BRANCH"),
		},
		&cli.StringFlag{
			Name:        "server-url",
			Usage:       "GitHub server URL",
			Value:       model.DefaultServerURL,
			Destination: &c.ServerURL,
			Sources:     cli.EnvVars("GITHUB_SERVER_URL"),
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "GitHub REST API URL of the DevPortal repository",
			Value:       model.DefaultAPIURL,
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("DEVPORTAL_API_URL"),
		},
		&cli.BoolFlag{
			Name:        "test-mode",
			Usage:       "Print the payload instead of sending the dispatch",
			Destination: &c.TestMode,
			Sources:     cli.EnvVars("DEVPORTAL_TEST_MODE"),
		},
	}
}

// Input builds the notifier input from the collected values
func (c *Dispatch) Input() *model.NotifyInput {
	return &model.NotifyInput{
		Repository:   c.Repository,
		Owner:        c.Owner,
		Name:         c.Name,
		SHA:          c.SHA,
		EventName:    c.EventName,
		Token:        c.Token,
		DispatchRepo: c.DispatchRepo,
		DocsBranch:   c.DocsBranch,
		ServerURL:    c.ServerURL,
		APIURL:       c.APIURL,
		TestMode:     c.TestMode,
		EventDetails: c.Event,
	}
}
