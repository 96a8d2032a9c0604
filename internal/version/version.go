// Package version exposes the build-time version stamp.
package version

// version is injected at build time via -ldflags.
var version = "v0.0.0"

// Value returns the stamped version.
func Value() string {
	return version
}
