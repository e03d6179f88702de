package cmd

import (
	"fmt"

	"github.com/dendrascience/htdir/htree"
	"github.com/spf13/cobra"
)

// NewHashCmd creates and returns the hash subcommand for the htdir CLI.
// It prints the routing digest of each given name.
func NewHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash NAME...",
		Short: "Print the routing digest of filenames",
		Long: `Print the 32-bit routing digest for each NAME, as used by the index to
route insertions and lookups. Handy for checking how a set of names
distributes across the hash space.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range args {
				fmt.Printf("%#08x  %s\n", htree.Hash(name), name)
			}
		},
	}
}
