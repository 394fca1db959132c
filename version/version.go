// Package version holds the build-time version string reported by
// `--version`. Version is overwritten via -ldflags at release build
// time; a source build reports "dev".
package version

var Version = "dev"
