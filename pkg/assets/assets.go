// Package assets bundles the default documentation tool configuration files.
package assets

import "embed"

// Defaults holds the bundled configuration files, addressed by file name
//
//go:embed typedoc.base.json conf.py
var Defaults embed.FS
