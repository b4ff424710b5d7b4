// Package version exposes build metadata for the mcp-huiting binary.
//
// Values are injected at link time:
//
//	go build -ldflags "-X github.com/kbukum/mcp-huiting/version.Version=1.2.0 \
//	  -X github.com/kbukum/mcp-huiting/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When nothing is injected, commit and build time fall back to the VCS
// stamps recorded by the Go toolchain.
package version
