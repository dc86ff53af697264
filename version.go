package verbdrill

import _ "embed"

// Version is the released version of verbdrill, read from the VERSION file.
//
//go:embed VERSION
var Version string
