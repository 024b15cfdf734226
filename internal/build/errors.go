package build

import "errors"

// Sentinel errors classifying pipeline failures. They are wrapped with
// context at the call site.
var (
	ErrDiscovery = errors.New("docgallery: discovery error")
	ErrRead      = errors.New("docgallery: read error")
	ErrWrite     = errors.New("docgallery: write error")
)
