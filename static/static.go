// Package static holds assets compiled into the binary.
package static

import _ "embed"

// DefaultImage is served when a requested image does not exist.
//
//go:embed default.jpg
var DefaultImage []byte

const DefaultImageType = "image/jpeg"
