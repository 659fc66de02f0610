package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/interfaces"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/schema"
	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const bannerRule = "=========================================================="

type notifier struct {
	client interfaces.DispatchClient
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// NotifierOption configures the notifier use case
type NotifierOption func(*notifier)

// WithNotifierOutput sets the writers used for the test mode payload and banner
func WithNotifierOutput(stdout, stderr io.Writer) NotifierOption {
	return func(uc *notifier) {
		uc.stdout = stdout
		uc.stderr = stderr
	}
}

// WithNotifierClock replaces time.Now
func WithNotifierClock(now func() time.Time) NotifierOption {
	return func(uc *notifier) {
		uc.now = now
	}
}

// NewNotifier creates a new instance of NotifierUseCase
func NewNotifier(client interfaces.DispatchClient, opts ...NotifierOption) interfaces.NotifierUseCase {
	uc := &notifier{
		client: client,
		stdout: os.Stdout,
		stderr: os.Stderr,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Notify sends the docs_updated dispatch. A missing token skips the notification without error.
func (uc *notifier) Notify(ctx context.Context, input *model.NotifyInput) error {
	logger := ctxlog.From(ctx)
	logger.Info("Notifying DevPortal of documentation update")

	if input.TestMode {
		return uc.simulate(ctx, input)
	}

	if err := validateNotifyInput(input); err != nil {
		return err
	}

	if input.Token == "" {
		logger.Warn("DEVPORTAL_DISPATCH_TOKEN is not set, skipping DevPortal notification")
		return nil
	}

	payload, err := BuildDispatchPayload(input, uc.now())
	if err != nil {
		return err
	}
	if err := schema.ValidateDispatch(payload); err != nil {
		return err
	}

	dispatchRepo := orDefault(input.DispatchRepo, model.DefaultDispatchRepo)
	owner, repo, ok := splitRepository(dispatchRepo)
	if !ok {
		return goerr.New("dispatch repository must be in owner/name form",
			goerr.T(model.ErrTagUsage),
			goerr.V("dispatch_repo", dispatchRepo),
		)
	}

	logger.Info("Sending dispatch",
		"repository", input.Repository,
		"version", payload.ClientPayload.Version,
		"trigger", payload.ClientPayload.TriggerEvent,
		"dispatch_repository", dispatchRepo,
		"docs_branch", payload.ClientPayload.Branch,
	)
	logger.Debug("Dispatch payload", "payload", payload)

	result, err := uc.client.Dispatch(ctx, owner, repo, payload)
	if err != nil {
		logger.Error("Dispatch request failed", "error", err)
		return goerr.Wrap(err, "unexpected response from DevPortal dispatch",
			goerr.T(model.ErrTagUnexpectedResponse),
			goerr.V("status", 0),
		)
	}

	return classifyDispatch(ctx, result, dispatchRepo)
}

// simulate reports the minimal payload without sending anything
func (uc *notifier) simulate(ctx context.Context, input *model.NotifyInput) error {
	payload := model.TestModePayload{
		SourceRepo:   input.Repository,
		Ref:          input.SHA,
		TriggerEvent: input.EventName,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal test mode payload")
	}

	warn := color.New(color.FgYellow, color.Bold)
	_, _ = warn.Fprintln(uc.stderr, bannerRule)
	_, _ = warn.Fprintln(uc.stderr, "TEST MODE: DevPortal dispatch is INTENTIONALLY SKIPPED.")
	_, _ = warn.Fprintln(uc.stderr, "Payload verification (if this were a production run):")
	_, _ = fmt.Fprintln(uc.stdout, string(data))
	_, _ = warn.Fprintln(uc.stderr, bannerRule)

	ctxlog.From(ctx).Warn("Test mode, dispatch skipped",
		"repository", input.Repository,
		"ref", input.SHA,
		"event", input.EventName,
	)
	return nil
}

func validateNotifyInput(input *model.NotifyInput) error {
	var missing []string
	for _, field := range []struct {
		env   string
		value string
	}{
		{"GITHUB_REPOSITORY", input.Repository},
		{"GITHUB_REPOSITORY_OWNER", input.Owner},
		{"GITHUB_REPOSITORY_NAME", input.Name},
		{"GITHUB_SHA", input.SHA},
		{"GITHUB_EVENT_NAME", input.EventName},
	} {
		if field.value == "" {
			missing = append(missing, field.env)
		}
	}

	if len(missing) > 0 {
		return goerr.New("missing required environment variables",
			goerr.T(model.ErrTagUsage),
			goerr.V("missing", strings.Join(missing, ", ")),
		)
	}
	return nil
}

// BuildDispatchPayload derives the dispatch payload from the triggering event.
// now is used when the event carries no timestamp.
func BuildDispatchPayload(input *model.NotifyInput, now time.Time) (*model.DispatchPayload, error) {
	serverURL := strings.TrimSuffix(orDefault(input.ServerURL, model.DefaultServerURL), "/")
	fallbackCommitURL := fmt.Sprintf("%s/%s/commit/%s", serverURL, input.Repository, input.SHA)
	nowStr := model.FormatTimestamp(now)

	client := model.ClientPayload{
		SourceRepo:  input.Repository,
		SourceOwner: input.Owner,
		SourceName:  input.Name,
		Ref:         input.SHA,
		Branch:      orDefault(input.DocsBranch, model.DefaultDocsBranch),
	}

	if input.EventName == model.EventNameRelease {
		tag := input.ReleaseTagName
		if tag == "" {
			return nil, goerr.New("release event missing tag name", goerr.T(model.ErrTagUsage))
		}

		client.Version = NormalizeReleaseVersion(tag)
		client.TriggerEvent = model.TriggerEventRelease
		client.TriggerReason = fmt.Sprintf("Release %s: %s", tag, model.ReleaseNameOrDefault(input.ReleaseName))
		client.CommitURL = orDefault(input.ReleaseURL, fallbackCommitURL)
		client.Timestamp = orDefault(input.ReleaseCreatedAt, nowStr)
	} else {
		client.Version = model.VersionLatest
		client.TriggerEvent = model.TriggerEventManual
		client.TriggerReason = orDefault(input.InputsReason, model.DefaultManualReason)
		client.CommitURL = orDefault(input.HeadCommitURL, fallbackCommitURL)
		client.Timestamp = orDefault(input.HeadCommitTimestamp, nowStr)
	}

	return &model.DispatchPayload{
		EventType:     model.DispatchEventType,
		ClientPayload: client,
	}, nil
}

// NormalizeReleaseVersion strips one leading "v" from tag and prefixes exactly one "v"
func NormalizeReleaseVersion(tag string) string {
	return "v" + strings.TrimPrefix(tag, "v")
}

func classifyDispatch(ctx context.Context, result *model.DispatchResult, dispatchRepo string) error {
	logger := ctxlog.From(ctx)

	switch result.StatusCode {
	case http.StatusNoContent:
		logger.Info("DevPortal notification sent successfully", "dispatch_repository", dispatchRepo)
		return nil

	case http.StatusNotFound:
		return goerr.New("DevPortal repository not found or token lacks access",
			goerr.T(model.ErrTagRepoAccess),
			goerr.V("repository", dispatchRepo),
			goerr.V("status", result.StatusCode),
		)

	case http.StatusUnauthorized, http.StatusForbidden:
		return goerr.New("authentication failed, check DEVPORTAL_DISPATCH_TOKEN (token must have repo scope and access to the target repository)",
			goerr.T(model.ErrTagAuth),
			goerr.V("repository", dispatchRepo),
			goerr.V("status", result.StatusCode),
		)

	default:
		logger.Error("Unexpected response from DevPortal dispatch",
			"status", result.StatusCode,
			"body", result.Body,
		)
		return goerr.New(fmt.Sprintf("unexpected response: HTTP %d", result.StatusCode),
			goerr.T(model.ErrTagUnexpectedResponse),
			goerr.V("status", result.StatusCode),
			goerr.V("body", result.Body),
		)
	}
}

func splitRepository(fullName string) (string, string, bool) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", false
	}
	return owner, name, true
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
