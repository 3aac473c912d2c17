package static

import _ "embed"

// IndexHTML contains the embedded dashboard page.
//
//go:embed index.html
var IndexHTML string
