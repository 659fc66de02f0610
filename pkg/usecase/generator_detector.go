package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/interfaces"
	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

var semverPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// detectionRule is one step of generator detection. Rules are evaluated in order; the first match wins.
type detectionRule struct {
	name   string
	detect func(ctx context.Context, workDir, docsPath string) (model.GeneratorInfo, bool)
}

type generatorDetector struct {
	runner interfaces.CommandRunner
	rules  []detectionRule
}

// NewGeneratorDetector creates a detector that probes Sphinx through runner
func NewGeneratorDetector(runner interfaces.CommandRunner) interfaces.GeneratorDetector {
	d := &generatorDetector{runner: runner}
	d.rules = []detectionRule{
		{name: "sphinx-conf", detect: d.detectSphinx},
		{name: "package-json", detect: d.detectPackageJSON},
		{name: "jsdoc-config", detect: d.detectJSDocConfig},
		{name: "typedoc-config", detect: d.detectTypeDocConfig},
	}
	return d
}

// Detect returns the generator of the first matching rule, or Other
func (d *generatorDetector) Detect(ctx context.Context, workDir, docsPath string) model.GeneratorInfo {
	logger := ctxlog.From(ctx)

	for _, rule := range d.rules {
		if info, ok := rule.detect(ctx, workDir, docsPath); ok {
			logger.Debug("Documentation generator detected",
				"rule", rule.name,
				"tool", info.Tool,
				"version", info.Version,
			)
			return info
		}
	}

	logger.Debug("No documentation generator signature found")
	return model.Other()
}

func (d *generatorDetector) detectSphinx(ctx context.Context, workDir, docsPath string) (model.GeneratorInfo, bool) {
	candidates := []string{
		filepath.Join(resolvePath(workDir, docsPath), "conf.py"),
		filepath.Join(workDir, "conf.py"),
	}

	for _, path := range candidates {
		if fileExists(path) {
			return model.Sphinx(d.sphinxVersion(ctx)), true
		}
	}
	return model.GeneratorInfo{}, false
}

// sphinxVersion asks sphinx-build for its version. Any failure yields an empty string.
func (d *generatorDetector) sphinxVersion(ctx context.Context) string {
	if d.runner == nil {
		return ""
	}

	out, err := d.runner.Output(ctx, "sphinx-build", "--version")
	if err != nil {
		ctxlog.From(ctx).Debug("sphinx-build version probe failed", "error", err)
		return ""
	}
	return semverPattern.FindString(string(out))
}

// packageJSON is the subset of package.json used for detection
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (d *generatorDetector) detectPackageJSON(ctx context.Context, workDir, _ string) (model.GeneratorInfo, bool) {
	path := filepath.Join(workDir, "package.json")
	if !fileExists(path) {
		return model.GeneratorInfo{}, false
	}

	deps, err := readDependencies(path)
	if err != nil {
		ctxlog.From(ctx).Warn("Could not parse package.json", "path", path, "error", err)
		return model.GeneratorInfo{}, false
	}

	if v := deps["typedoc"]; v != "" {
		return model.TypeDoc(stripRangePrefix(v)), true
	}
	if v := deps["jsdoc"]; v != "" {
		return model.JSDoc(stripRangePrefix(v)), true
	}
	return model.GeneratorInfo{}, false
}

func (d *generatorDetector) detectJSDocConfig(_ context.Context, workDir, _ string) (model.GeneratorInfo, bool) {
	for _, name := range []string{".jsdoc.json", "jsdoc.json"} {
		if fileExists(filepath.Join(workDir, name)) {
			return model.JSDoc(model.VersionUnknown), true
		}
	}
	return model.GeneratorInfo{}, false
}

func (d *generatorDetector) detectTypeDocConfig(_ context.Context, workDir, _ string) (model.GeneratorInfo, bool) {
	if fileExists(filepath.Join(workDir, "typedoc.json")) {
		return model.TypeDoc(model.VersionUnknown), true
	}
	return model.GeneratorInfo{}, false
}

// readDependencies merges dependencies and devDependencies; devDependencies win on conflict
func readDependencies(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read package.json", goerr.V("path", path))
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, goerr.Wrap(err, "failed to decode package.json", goerr.V("path", path))
	}

	deps := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for k, v := range pkg.Dependencies {
		deps[k] = v
	}
	for k, v := range pkg.DevDependencies {
		deps[k] = v
	}
	return deps, nil
}

// stripRangePrefix removes a single leading ^ or ~ from a version range
func stripRangePrefix(version string) string {
	if strings.HasPrefix(version, "^") || strings.HasPrefix(version, "~") {
		return version[1:]
	}
	return version
}

func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
