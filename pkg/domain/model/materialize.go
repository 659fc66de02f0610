package model

// ConfigFile maps a bundled source file to a destination inside the workspace
type ConfigFile struct {
	Source      string // Path inside the source bundle
	Destination string // Path relative to the workspace
}

// ConfigProfiles lists the bundled configuration sets by name
var ConfigProfiles = map[string][]ConfigFile{
	"typedoc": {
		{Source: "typedoc.base.json", Destination: "typedoc.base.json"},
	},
	"sphinx": {
		{Source: "conf.py", Destination: "conf.py"},
	},
}

// MaterializeInput holds the arguments of a materialize run
type MaterializeInput struct {
	WorkDir string
	Files   []ConfigFile
}

// MaterializeResult reports what happened to one destination
type MaterializeResult struct {
	Destination string
	Skipped     bool // Destination existed and was left untouched
}
