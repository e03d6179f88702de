package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/dendrascience/htdir/htree"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewIndexCmd creates and returns the index subcommand for the htdir CLI.
// It builds a directory index from the filenames under a real path.
func NewIndexCmd() *cobra.Command {
	var (
		jsonOut    bool
		blockSize  int
		maxNameLen int
	)

	cmd := &cobra.Command{
		Use:   "index PATH [NAME...]",
		Short: "Index the filenames under a directory tree",
		Long: `Walk PATH recursively, insert every filename into a fresh directory
index, and print the resulting statistics. Each file gets a stable
synthetic inode derived from its path, so repeated runs over the same
tree produce the same records.

Any NAME arguments after the path are looked up in the finished index
and resolved to their inodes.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runIndex(args[0], args[1:], jsonOut, blockSize, maxNameLen)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print statistics as JSON")
	geometryFlags(cmd, &blockSize, &maxNameLen)

	return cmd
}

func runIndex(path string, lookups []string, jsonOut bool, blockSize, maxNameLen int) {
	d, err := newDirectory(blockSize, maxNameLen)
	if err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	skipped := 0
	err = filepath.WalkDir(path, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			return nil
		}
		inode := uint32(colorhash.HashString(p))
		if err := d.Insert(de.Name(), inode); err != nil {
			if errors.Is(err, htree.ErrNameTooLong) {
				skipped++
				return nil
			}
			return fmt.Errorf("inserting %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to index %s: %v", path, err)
	}

	for _, name := range lookups {
		rec, err := d.Find(name)
		if errors.Is(err, htree.ErrNotFound) {
			fmt.Printf("%s: not found\n", name)
			continue
		}
		if err != nil {
			log.Fatalf("Lookup %s failed: %v", name, err)
		}
		fmt.Printf("%s -> inode %d\n", name, rec.Inode)
	}

	stats := d.Stats()
	if jsonOut {
		if err := json.NewEncoder(os.Stdout).Encode(stats); err != nil {
			log.Fatalf("Failed to encode statistics: %v", err)
		}
	} else {
		fmt.Printf("Indexed %d files into %d entry blocks (%d index blocks)\n",
			stats.TotalEntries, stats.EntryBlockCount, stats.IndexBlockCount)
	}
	if skipped > 0 {
		fmt.Printf("Skipped %d names longer than %d bytes\n", skipped, maxNameLen)
	}
}
