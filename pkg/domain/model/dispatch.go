package model

// DispatchEventType is the repository_dispatch event type sent to the DevPortal
const DispatchEventType = "docs_updated"

const (
	DefaultDispatchRepo = "algorandfoundation/devportal"
	DefaultDocsBranch   = "docs-dist"
	DefaultServerURL    = "https://github.com"
	DefaultAPIURL       = "https://api.github.com"
	DefaultManualReason = "Manual documentation update"
	EventNameRelease    = "release"
	TriggerEventRelease = "release"
	TriggerEventManual  = "manual"
	VersionLatest       = "latest"
	releaseNameFallback = "N/A"
)

// ReleaseNameOrDefault returns name, or N/A when empty
func ReleaseNameOrDefault(name string) string {
	if name == "" {
		return releaseNameFallback
	}
	return name
}

// EventDetails carries event-specific values of the triggering workflow run
type EventDetails struct {
	ReleaseTagName      string
	ReleaseName         string
	ReleaseURL          string
	ReleaseCreatedAt    string
	HeadCommitURL       string
	HeadCommitTimestamp string
	InputsReason        string
}

// Merge fills empty fields of d with values from fallback. Values already set in d win.
func (d EventDetails) Merge(fallback EventDetails) EventDetails {
	pick := func(v, alt string) string {
		if v != "" {
			return v
		}
		return alt
	}

	return EventDetails{
		ReleaseTagName:      pick(d.ReleaseTagName, fallback.ReleaseTagName),
		ReleaseName:         pick(d.ReleaseName, fallback.ReleaseName),
		ReleaseURL:          pick(d.ReleaseURL, fallback.ReleaseURL),
		ReleaseCreatedAt:    pick(d.ReleaseCreatedAt, fallback.ReleaseCreatedAt),
		HeadCommitURL:       pick(d.HeadCommitURL, fallback.HeadCommitURL),
		HeadCommitTimestamp: pick(d.HeadCommitTimestamp, fallback.HeadCommitTimestamp),
		InputsReason:        pick(d.InputsReason, fallback.InputsReason),
	}
}

// NotifyInput is the configuration of a single notification run
type NotifyInput struct {
	Repository string // owner/name
	Owner      string
	Name       string
	SHA        string
	EventName  string
	Token      string `masq:"secret"`

	DispatchRepo string
	DocsBranch   string
	ServerURL    string
	APIURL       string

	TestMode bool

	EventDetails
}

// ClientPayload is the client_payload of the docs_updated dispatch
type ClientPayload struct {
	SourceRepo    string `json:"source_repo"`
	SourceOwner   string `json:"source_owner"`
	SourceName    string `json:"source_name"`
	Ref           string `json:"ref"`
	Branch        string `json:"branch"`
	Version       string `json:"version"`
	TriggerEvent  string `json:"trigger_event"`
	TriggerReason string `json:"trigger_reason"`
	CommitURL     string `json:"commit_url"`
	Timestamp     string `json:"timestamp"`
}

// DispatchPayload is the body of a repository dispatch request
type DispatchPayload struct {
	EventType     string        `json:"event_type"`
	ClientPayload ClientPayload `json:"client_payload"`
}

// TestModePayload is the reduced payload reported when dispatch is simulated
type TestModePayload struct {
	SourceRepo   string `json:"source_repo"`
	Ref          string `json:"ref"`
	TriggerEvent string `json:"trigger_event"`
}

// DispatchResult is the outcome of one dispatch call
type DispatchResult struct {
	StatusCode int    // 0 when no response was received
	Body       string // Response body or error detail, if any
}
