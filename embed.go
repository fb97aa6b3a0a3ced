package masterweb

import "embed"

// StaticAssets holds the stylesheet, client script and images served under /static/.
//
//go:embed static
var StaticAssets embed.FS
