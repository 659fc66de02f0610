package usecase

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/interfaces"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/schema"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type manifestUseCase struct {
	detector interfaces.GeneratorDetector
	stdout   io.Writer
	now      func() time.Time
}

// ManifestOption configures the manifest use case
type ManifestOption func(*manifestUseCase)

// WithManifestOutput sets where the generated manifest JSON is echoed
func WithManifestOutput(w io.Writer) ManifestOption {
	return func(uc *manifestUseCase) {
		uc.stdout = w
	}
}

// WithManifestClock replaces time.Now
func WithManifestClock(now func() time.Time) ManifestOption {
	return func(uc *manifestUseCase) {
		uc.now = now
	}
}

// NewManifest creates a new instance of ManifestUseCase
func NewManifest(detector interfaces.GeneratorDetector, opts ...ManifestOption) interfaces.ManifestUseCase {
	uc := &manifestUseCase{
		detector: detector,
		stdout:   os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Generate detects the generator and writes <docsPath>/manifest.json, replacing any existing file
func (uc *manifestUseCase) Generate(ctx context.Context, input *model.ManifestInput) (*model.Manifest, error) {
	logger := ctxlog.From(ctx)

	if input.DocsPath == "" || input.Repository == "" || input.Commit == "" {
		return nil, goerr.New("docs path, repository and commit SHA are required",
			goerr.T(model.ErrTagUsage),
		)
	}

	workDir := input.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve working directory")
		}
		workDir = wd
	}

	docsDir := resolvePath(workDir, input.DocsPath)
	stat, err := os.Stat(docsDir)
	if err != nil {
		return nil, goerr.Wrap(err, "documentation path does not exist",
			goerr.T(model.ErrTagInvalidInput),
			goerr.V("docs_path", docsDir),
		)
	}
	if !stat.IsDir() {
		return nil, goerr.New("documentation path is not a directory",
			goerr.T(model.ErrTagInvalidInput),
			goerr.V("docs_path", docsDir),
		)
	}

	generator := uc.detector.Detect(ctx, workDir, input.DocsPath)
	manifest := model.NewManifest(uc.now(), generator, input.Repository, input.Commit)

	if err := schema.ValidateManifest(manifest); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal manifest")
	}

	manifestPath := filepath.Join(docsDir, model.ManifestFileName)
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return nil, goerr.Wrap(err, "failed to write manifest", goerr.V("path", manifestPath))
	}

	if _, err := uc.stdout.Write(append(data, '\n')); err != nil {
		logger.Warn("Failed to echo manifest", "error", err)
	}

	logger.Info("Manifest written",
		"path", manifestPath,
		"tool", manifest.Generator.Tool,
		"version", manifest.Generator.Version,
		"repository", manifest.Metadata.Repository,
		"commit", manifest.Metadata.Commit,
	)

	return manifest, nil
}
