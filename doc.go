// Package main provides the htdir command-line interface.
//
// htdir is a block-structured, hash-indexed directory index: filename to
// inode mappings stored in fixed-size blocks and retrieved by routing a
// 32-bit name hash through a two-level index, the way journaling
// filesystems index large directories on disk.
//
// The main binary supports multiple subcommands:
//   - index: Build an index from the filenames under a real directory tree
//   - bench: Measure insertion and lookup throughput
//   - demo: Insert a few files and print directory statistics
//   - hash: Print the routing digest of filenames
package main
