// Package assets embeds the prebuilt web UI. Run cmd/minify to regenerate
// index.html from the sources in this directory.
package assets

import _ "embed"

//go:embed index.html
var IndexHTML []byte

//go:embed favicon.svg
var Favicon []byte
