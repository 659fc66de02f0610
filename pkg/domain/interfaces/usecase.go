package interfaces

import (
	"context"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
)

// MaterializerUseCase copies bundled configuration files into a workspace
type MaterializerUseCase interface {
	// Materialize writes each missing destination and skips destinations the user already provided
	Materialize(ctx context.Context, input *model.MaterializeInput) ([]model.MaterializeResult, error)
}

// GeneratorDetector identifies the documentation generator used in a working tree
type GeneratorDetector interface {
	// Detect returns the first matching generator, or Other
	Detect(ctx context.Context, workDir, docsPath string) model.GeneratorInfo
}

// ManifestUseCase writes the manifest of a documentation build
type ManifestUseCase interface {
	// Generate writes <docsPath>/manifest.json and returns the written manifest
	Generate(ctx context.Context, input *model.ManifestInput) (*model.Manifest, error)
}

// NotifierUseCase notifies the DevPortal of a documentation update
type NotifierUseCase interface {
	// Notify sends, skips or simulates the docs_updated dispatch
	Notify(ctx context.Context, input *model.NotifyInput) error
}
