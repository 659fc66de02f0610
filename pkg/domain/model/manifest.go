package model

import "time"

// GeneratorTool identifies the documentation generator that produced a build
type GeneratorTool string

const (
	ToolSphinx  GeneratorTool = "sphinx"
	ToolTypeDoc GeneratorTool = "typedoc"
	ToolJSDoc   GeneratorTool = "jsdoc"
	ToolOther   GeneratorTool = "other"
)

// VersionUnknown is reported when a generator version cannot be determined
const VersionUnknown = "unknown"

// ManifestFileName is the name of the manifest written into the docs output directory
const ManifestFileName = "manifest.json"

// TimestampLayout renders UTC time as ISO-8601 with millisecond precision, e.g. 2024-05-01T10:00:00.000Z
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// GeneratorInfo describes the detected documentation generator
type GeneratorInfo struct {
	Tool    GeneratorTool `json:"tool"`
	Version string        `json:"version"`
}

// Sphinx returns GeneratorInfo for a Sphinx build
func Sphinx(version string) GeneratorInfo {
	return GeneratorInfo{Tool: ToolSphinx, Version: orUnknown(version)}
}

// TypeDoc returns GeneratorInfo for a TypeDoc build
func TypeDoc(version string) GeneratorInfo {
	return GeneratorInfo{Tool: ToolTypeDoc, Version: orUnknown(version)}
}

// JSDoc returns GeneratorInfo for a JSDoc build
func JSDoc(version string) GeneratorInfo {
	return GeneratorInfo{Tool: ToolJSDoc, Version: orUnknown(version)}
}

// Other returns GeneratorInfo for an unrecognized generator
func Other() GeneratorInfo {
	return GeneratorInfo{Tool: ToolOther, Version: VersionUnknown}
}

func orUnknown(version string) string {
	if version == "" {
		return VersionUnknown
	}
	return version
}

// ManifestMetadata identifies the source of a docs build
type ManifestMetadata struct {
	Repository string `json:"repository"`
	Commit     string `json:"commit"`
}

// Manifest summarizes a documentation build. Field order is the serialized key order.
type Manifest struct {
	Generated string           `json:"generated"`
	Generator GeneratorInfo    `json:"generator"`
	Metadata  ManifestMetadata `json:"metadata"`
}

// NewManifest creates a manifest stamped with the given time
func NewManifest(now time.Time, generator GeneratorInfo, repository, commit string) *Manifest {
	return &Manifest{
		Generated: FormatTimestamp(now),
		Generator: generator,
		Metadata: ManifestMetadata{
			Repository: repository,
			Commit:     commit,
		},
	}
}

// FormatTimestamp formats t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ManifestInput holds the arguments of a manifest generation run
type ManifestInput struct {
	DocsPath   string // Documentation output directory, relative to WorkDir unless absolute
	Repository string // Repository identifier, e.g. org/repo
	Commit     string // Commit SHA
	WorkDir    string // Directory probed for generator signatures
}
