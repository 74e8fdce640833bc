// Package version holds the release string, set at build time with
// -ldflags "-X iseq/internal/version.Version=v1.2.3".
package version

var Version = "dev"
