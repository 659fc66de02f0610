package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/interfaces"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
)

// config holds internal client configuration
type config struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*config)

// WithBaseURL sets the REST API base URL, e.g. https://api.github.com. Empty keeps the default.
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(userAgent string) Option {
	return func(c *config) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub client authenticated with a bearer token
func NewClient(token string, opts ...Option) (interfaces.DispatchClient, error) {
	cfg := &config{
		baseURL: model.DefaultAPIURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	githubClient := github.NewClient(cfg.httpClient).WithAuthToken(token)

	// go-github requires a trailing slash on the base URL
	baseURL, err := url.Parse(strings.TrimSuffix(cfg.baseURL, "/") + "/")
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", cfg.baseURL))
	}
	githubClient.BaseURL = baseURL

	if cfg.userAgent != "" {
		githubClient.UserAgent = cfg.userAgent
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// Dispatch sends a repository_dispatch event
func (c *client) Dispatch(ctx context.Context, owner, repo string, payload *model.DispatchPayload) (*model.DispatchResult, error) {
	raw, err := json.Marshal(payload.ClientPayload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal client payload")
	}
	clientPayload := json.RawMessage(raw)

	_, resp, err := c.githubClient.Repositories.Dispatch(ctx, owner, repo, github.DispatchRequestOptions{
		EventType:     payload.EventType,
		ClientPayload: &clientPayload,
	})
	if resp == nil {
		if err == nil {
			err = errors.New("no response")
		}
		return nil, goerr.Wrap(err, "failed to send repository dispatch",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
		)
	}

	result := &model.DispatchResult{
		StatusCode: resp.StatusCode,
	}
	if err != nil {
		result.Body = errorDetail(err)
	}

	return result, nil
}

// errorDetail extracts the API message from a go-github error
func errorDetail(err error) string {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.Message
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		if errResp.DocumentationURL != "" {
			return errResp.Message + " (" + errResp.DocumentationURL + ")"
		}
		return errResp.Message
	}

	return err.Error()
}
