package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/interfaces"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type materializer struct {
	source fs.FS
}

// NewMaterializer creates a MaterializerUseCase reading bundled files from source
func NewMaterializer(source fs.FS) interfaces.MaterializerUseCase {
	return &materializer{
		source: source,
	}
}

// Materialize writes each configured file into the workspace unless the user already provided it.
// All required sources are checked before anything is written.
func (uc *materializer) Materialize(ctx context.Context, input *model.MaterializeInput) ([]model.MaterializeResult, error) {
	logger := ctxlog.From(ctx)

	if len(input.Files) == 0 {
		return nil, goerr.New("no configuration files to materialize", goerr.T(model.ErrTagUsage))
	}

	workDir := input.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve working directory")
		}
		workDir = wd
	}

	results := make([]model.MaterializeResult, len(input.Files))
	var pending []int

	for i, file := range input.Files {
		dest := resolvePath(workDir, file.Destination)
		results[i].Destination = dest

		if fileExists(dest) {
			results[i].Skipped = true
			logger.Info("User provided config file found, skipping generation to respect project settings",
				"destination", dest,
			)
			continue
		}

		if _, err := fs.Stat(uc.source, file.Source); err != nil {
			return nil, goerr.Wrap(err, "bundled config file not found",
				goerr.T(model.ErrTagPackaging),
				goerr.V("source", file.Source),
			)
		}
		pending = append(pending, i)
	}

	for _, i := range pending {
		file := input.Files[i]
		dest := results[i].Destination

		data, err := fs.ReadFile(uc.source, file.Source)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read bundled config file",
				goerr.T(model.ErrTagPackaging),
				goerr.V("source", file.Source),
			)
		}

		rendered, err := reserialize(file.Source, data)
		if err != nil {
			return nil, goerr.Wrap(err, "bundled config file is malformed",
				goerr.T(model.ErrTagPackaging),
				goerr.V("source", file.Source),
			)
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create destination directory", goerr.V("destination", dest))
		}
		if err := os.WriteFile(dest, rendered, 0644); err != nil {
			return nil, goerr.Wrap(err, "failed to write config file", goerr.V("destination", dest))
		}

		logger.Info("Generated config file", "source", file.Source, "destination", dest)
	}

	return results, nil
}

// reserialize normalizes structured formats; other files are returned unchanged
func reserialize(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return nil, goerr.Wrap(err, "invalid JSON")
		}
		var out bytes.Buffer
		if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
			return nil, goerr.Wrap(err, "failed to indent JSON")
		}
		return out.Bytes(), nil

	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, goerr.Wrap(err, "invalid YAML")
		}
		if node.Kind == 0 {
			return data, nil
		}
		var out bytes.Buffer
		enc := yaml.NewEncoder(&out)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return nil, goerr.Wrap(err, "failed to encode YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, goerr.Wrap(err, "failed to flush YAML")
		}
		return out.Bytes(), nil

	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, goerr.Wrap(err, "invalid TOML")
		}
		out, err := toml.Marshal(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode TOML")
		}
		return out, nil

	default:
		return data, nil
	}
}
