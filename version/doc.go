// Package version provides build version information embedding for
// the batch orchestrator binaries.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/grangerbatch/version.Version=1.0.0"
package version
