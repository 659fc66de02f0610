package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/algorandfoundation/devportal-actions/pkg/domain/model"
	"github.com/algorandfoundation/devportal-actions/pkg/usecase"
	"github.com/m-mizutani/gt"
)

// MockCommandRunner is a mock implementation of CommandRunner
type MockCommandRunner struct {
	outputFunc func(ctx context.Context, name string, args ...string) ([]byte, error)
	calls      []string
}

func (m *MockCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, name)
	if m.outputFunc != nil {
		return m.outputFunc(ctx, name, args...)
	}
	return nil, errors.New("mock not configured")
}

func sphinxRunner(out string) *MockCommandRunner {
	return &MockCommandRunner{
		outputFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return []byte(out), nil
		},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGeneratorDetector_Detect(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		runner *MockCommandRunner
		want   model.GeneratorInfo
	}{
		{
			name:   "Sphinx conf.py in docs path",
			files:  map[string]string{"docs/conf.py": "project = 'x'"},
			runner: sphinxRunner("sphinx-build 7.2.6\n"),
			want:   model.GeneratorInfo{Tool: model.ToolSphinx, Version: "7.2.6"},
		},
		{
			name:   "Sphinx conf.py in working directory",
			files:  map[string]string{"conf.py": ""},
			runner: sphinxRunner("sphinx-build 8.0.2"),
			want:   model.GeneratorInfo{Tool: model.ToolSphinx, Version: "8.0.2"},
		},
		{
			name:   "Sphinx version probe fails",
			files:  map[string]string{"conf.py": ""},
			runner: &MockCommandRunner{},
			want:   model.GeneratorInfo{Tool: model.ToolSphinx, Version: "unknown"},
		},
		{
			name:   "Sphinx version output without semver",
			files:  map[string]string{"conf.py": ""},
			runner: sphinxRunner("sphinx-build dev"),
			want:   model.GeneratorInfo{Tool: model.ToolSphinx, Version: "unknown"},
		},
		{
			name: "Sphinx wins over typedoc dependency",
			files: map[string]string{
				"conf.py":      "",
				"package.json": `{"devDependencies":{"typedoc":"^5.2.0"}}`,
			},
			runner: sphinxRunner("sphinx-build 7.2.6"),
			want:   model.GeneratorInfo{Tool: model.ToolSphinx, Version: "7.2.6"},
		},
		{
			name:  "TypeDoc caret range",
			files: map[string]string{"package.json": `{"devDependencies":{"typedoc":"^5.2.0"}}`},
			want:  model.GeneratorInfo{Tool: model.ToolTypeDoc, Version: "5.2.0"},
		},
		{
			name:  "TypeDoc in regular dependencies with tilde range",
			files: map[string]string{"package.json": `{"dependencies":{"typedoc":"~0.25.1"}}`},
			want:  model.GeneratorInfo{Tool: model.ToolTypeDoc, Version: "0.25.1"},
		},
		{
			name:  "devDependencies override dependencies",
			files: map[string]string{"package.json": `{"dependencies":{"typedoc":"^0.24.0"},"devDependencies":{"typedoc":"0.26.0"}}`},
			want:  model.GeneratorInfo{Tool: model.ToolTypeDoc, Version: "0.26.0"},
		},
		{
			name:  "TypeDoc checked before JSDoc",
			files: map[string]string{"package.json": `{"dependencies":{"jsdoc":"^4.0.0"},"devDependencies":{"typedoc":"^5.2.0"}}`},
			want:  model.GeneratorInfo{Tool: model.ToolTypeDoc, Version: "5.2.0"},
		},
		{
			name:  "JSDoc dependency",
			files: map[string]string{"package.json": `{"devDependencies":{"jsdoc":"^4.0.2"}}`},
			want:  model.GeneratorInfo{Tool: model.ToolJSDoc, Version: "4.0.2"},
		},
		{
			name:  "Only one range prefix is stripped",
			files: map[string]string{"package.json": `{"devDependencies":{"jsdoc":"^~4.0.2"}}`},
			want:  model.GeneratorInfo{Tool: model.ToolJSDoc, Version: "~4.0.2"},
		},
		{
			name: "Malformed package.json falls through to config files",
			files: map[string]string{
				"package.json": `{"devDependencies": {`,
				"jsdoc.json":   "{}",
			},
			want: model.GeneratorInfo{Tool: model.ToolJSDoc, Version: "unknown"},
		},
		{
			name: "package.json without doc tools falls through",
			files: map[string]string{
				"package.json": `{"dependencies":{"react":"^18.0.0"}}`,
				"typedoc.json": "{}",
			},
			want: model.GeneratorInfo{Tool: model.ToolTypeDoc, Version: "unknown"},
		},
		{
			name:  "Hidden JSDoc config",
			files: map[string]string{".jsdoc.json": "{}"},
			want:  model.GeneratorInfo{Tool: model.ToolJSDoc, Version: "unknown"},
		},
		{
			name: "JSDoc config wins over TypeDoc config",
			files: map[string]string{
				"jsdoc.json":   "{}",
				"typedoc.json": "{}",
			},
			want: model.GeneratorInfo{Tool: model.ToolJSDoc, Version: "unknown"},
		},
		{
			name:  "TypeDoc config",
			files: map[string]string{"typedoc.json": "{}"},
			want:  model.GeneratorInfo{Tool: model.ToolTypeDoc, Version: "unknown"},
		},
		{
			name:  "Nothing recognizable",
			files: map[string]string{"README.md": "# hi"},
			want:  model.GeneratorInfo{Tool: model.ToolOther, Version: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := t.TempDir()
			gt.NoError(t, os.MkdirAll(filepath.Join(workDir, "docs"), 0755))
			for name, content := range tt.files {
				writeFile(t, filepath.Join(workDir, name), content)
			}

			runner := tt.runner
			if runner == nil {
				runner = &MockCommandRunner{}
			}

			detector := usecase.NewGeneratorDetector(runner)
			got := detector.Detect(context.Background(), workDir, "docs")

			gt.Equal(t, got, tt.want)
		})
	}
}

func TestGeneratorDetector_SphinxProbeOnlyWhenConfFound(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "typedoc.json"), "{}")

	runner := sphinxRunner("sphinx-build 7.2.6")
	detector := usecase.NewGeneratorDetector(runner)
	got := detector.Detect(context.Background(), workDir, "docs")

	gt.Equal(t, got.Tool, model.ToolTypeDoc)
	gt.Number(t, len(runner.calls)).Equal(0)
}

func TestGeneratorDetector_AbsoluteDocsPath(t *testing.T) {
	workDir := t.TempDir()
	docsDir := t.TempDir()
	writeFile(t, filepath.Join(docsDir, "conf.py"), "")

	runner := sphinxRunner("sphinx-build 7.1.0")
	detector := usecase.NewGeneratorDetector(runner)
	got := detector.Detect(context.Background(), workDir, docsDir)

	gt.Equal(t, got, model.Sphinx("7.1.0"))
	gt.Equal(t, len(runner.calls), 1)
	gt.Equal(t, runner.calls[0], "sphinx-build")
}
