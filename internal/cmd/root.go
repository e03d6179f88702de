package cmd

import (
	"github.com/dendrascience/htdir/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the htdir CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "htdir",
		Short: "htdir - a block-structured, hash-indexed directory index",
		Long: `htdir stores filename to inode mappings in fixed-size blocks and routes
both insertion and lookup through a 32-bit name hash, the way journaling
filesystems index large directories on disk.

Use subcommands to perform different operations:
  - index: Build an index from the filenames under a real directory tree
  - bench: Measure insertion and lookup throughput
  - demo: Insert a few files and print directory statistics
  - hash: Print the routing digest of filenames`,
		Version: version.GetFullVersion(),
	}

	groupDirectory := "directory"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupDirectory,
		Title: "Directory Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	indexCmd := NewIndexCmd()
	benchCmd := NewBenchCmd()
	demoCmd := NewDemoCmd()
	hashCmd := NewHashCmd()

	indexCmd.GroupID = groupDirectory
	benchCmd.GroupID = groupDirectory
	demoCmd.GroupID = groupUtilities
	hashCmd.GroupID = groupUtilities

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(hashCmd)

	return rootCmd
}
