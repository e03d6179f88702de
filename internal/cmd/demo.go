package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/dendrascience/htdir/htree"
	"github.com/spf13/cobra"
)

// NewDemoCmd creates and returns the demo subcommand for the htdir CLI.
// It runs a small fixed workload and prints the resulting statistics.
func NewDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Insert a few files and print directory statistics",
		Long: `Insert three files into a fresh directory with default 4096-byte blocks,
look one of them up, and print the directory statistics. Useful as a
quick smoke test and as a minimal usage example.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runDemo()
		},
	}
}

func runDemo() {
	d, err := htree.New()
	if err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	files := []struct {
		name  string
		inode uint32
	}{
		{"file1.txt", 1001},
		{"file2.txt", 1002},
		{"file3.txt", 1003},
	}
	for _, f := range files {
		if err := d.Insert(f.name, f.inode); err != nil {
			log.Fatalf("Failed to insert %s: %v", f.name, err)
		}
		fmt.Printf("inserted %s -> inode %d (hash %#08x)\n", f.name, f.inode, htree.Hash(f.name))
	}

	rec, err := d.Find("file2.txt")
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}
	fmt.Printf("found %s -> inode %d\n", rec.Name, rec.Inode)

	if _, err := d.Find("missing.txt"); errors.Is(err, htree.ErrNotFound) {
		fmt.Println("missing.txt: not found")
	}

	stats := d.Stats()
	fmt.Printf("\nDirectory statistics:\n")
	fmt.Printf("Number of entry blocks: %d\n", stats.EntryBlockCount)
	fmt.Printf("Number of index blocks: %d\n", stats.IndexBlockCount)
	fmt.Printf("Total entries: %d\n", stats.TotalEntries)
	fmt.Printf("Entries per block: %d\n", stats.EntriesPerBlock)
}
