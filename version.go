package weave

import _ "embed"

// Version is the weave release, read from the VERSION file at build time.
//
//go:embed VERSION
var Version string
