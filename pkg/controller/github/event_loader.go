package github

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// LoadEventFile reads the workflow event payload at path and extracts EventDetails.
// An empty path yields empty details.
func LoadEventFile(ctx context.Context, eventName, path string) (model.EventDetails, error) {
	if path == "" {
		return model.EventDetails{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.EventDetails{}, goerr.Wrap(err, "failed to read event payload", goerr.V("path", path))
	}

	return LoadEventDetails(ctx, eventName, data)
}

// LoadEventDetails extracts EventDetails from a GitHub event payload
func LoadEventDetails(ctx context.Context, eventName string, payload []byte) (model.EventDetails, error) {
	logger := ctxlog.From(ctx)

	switch eventName {
	case "release", "push", "workflow_dispatch":
	default:
		logger.Debug("Event payload not used for this event", "event_name", eventName)
		return model.EventDetails{}, nil
	}

	event, err := github.ParseWebHook(eventName, payload)
	if err != nil {
		return model.EventDetails{}, goerr.Wrap(err, "failed to parse event payload", goerr.V("event_name", eventName))
	}

	switch ev := event.(type) {
	case *github.ReleaseEvent:
		return releaseDetails(ev), nil
	case *github.PushEvent:
		return pushDetails(ev), nil
	case *github.WorkflowDispatchEvent:
		return workflowDispatchDetails(ev)
	default:
		return model.EventDetails{}, nil
	}
}

func releaseDetails(ev *github.ReleaseEvent) model.EventDetails {
	release := ev.GetRelease()
	return model.EventDetails{
		ReleaseTagName:   release.GetTagName(),
		ReleaseName:      release.GetName(),
		ReleaseURL:       release.GetHTMLURL(),
		ReleaseCreatedAt: formatTimestamp(release.GetCreatedAt()),
	}
}

func pushDetails(ev *github.PushEvent) model.EventDetails {
	commit := ev.GetHeadCommit()
	return model.EventDetails{
		HeadCommitURL:       commit.GetURL(),
		HeadCommitTimestamp: formatTimestamp(commit.GetTimestamp()),
	}
}

func workflowDispatchDetails(ev *github.WorkflowDispatchEvent) (model.EventDetails, error) {
	if len(ev.Inputs) == 0 {
		return model.EventDetails{}, nil
	}

	var inputs struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(ev.Inputs, &inputs); err != nil {
		return model.EventDetails{}, goerr.Wrap(err, "failed to parse workflow_dispatch inputs")
	}

	return model.EventDetails{InputsReason: inputs.Reason}, nil
}

func formatTimestamp(ts github.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}
