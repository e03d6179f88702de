// Package version provides version information and build metadata for htdir.
//
// Version and commit are injected at build time via -ldflags, with a
// fallback to Go's embedded build info for source builds:
//
//	-ldflags "-X github.com/dendrascience/htdir/version.Version=v1.0.0"
package version
