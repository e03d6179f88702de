// Package cmd provides the command-line interface implementation for htdir.
//
// This package contains all the subcommand implementations for the htdir
// CLI tool. It uses the Cobra library for command structure and Fang for
// styling the entry point.
//
// The package is organized into the following commands:
//   - root: Main command coordinator
//   - index: Builds a directory index from the filenames under a path
//   - bench: Insertion and lookup throughput measurement
//   - demo: Small fixed workload with printed statistics
//   - hash: Routing digest inspection
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Geometry flags (block size,
// maximum name length) share environment-variable defaults loaded through
// envconfig, so deployments can pin a geometry without repeating flags.
package cmd
