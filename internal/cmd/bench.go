package cmd

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewBenchCmd creates and returns the bench subcommand for the htdir CLI.
// It measures insertion and lookup throughput against a synthetic
// workload of random filenames.
func NewBenchCmd() *cobra.Command {
	var (
		count      int
		lookups    int
		useUUID    bool
		verbose    bool
		blockSize  int
		maxNameLen int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure insertion and lookup throughput",
		Long: `Generate random filenames, insert them all into a fresh directory, then
time a batch of random lookups. Reports wall times, per-operation cost,
and the resulting directory shape.

Filenames are 20-byte random hex names with a .txt suffix by default;
--uuid switches to UUID-based names for longer, more varied input.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runBench(count, lookups, useUUID, verbose, blockSize, maxNameLen)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 10000, "Number of files to insert")
	cmd.Flags().IntVar(&lookups, "lookups", 1000, "Number of random lookups to time")
	cmd.Flags().BoolVar(&useUUID, "uuid", false, "Use UUID filenames")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print block fill distribution")
	geometryFlags(cmd, &blockSize, &maxNameLen)

	return cmd
}

func runBench(count, lookups int, useUUID, verbose bool, blockSize, maxNameLen int) {
	names := make([]string, count)
	for i := range names {
		if useUUID {
			names[i] = uuid.New().String() + ".json"
		} else {
			names[i] = randomHexName()
		}
	}

	d, err := newDirectory(blockSize, maxNameLen)
	if err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	start := time.Now()
	for i, name := range names {
		if err := d.Insert(name, uint32(1000+i)); err != nil {
			log.Fatalf("Insert %q failed after %d records: %v", name, i, err)
		}
	}
	insertDur := time.Since(start)

	start = time.Now()
	misses := 0
	for i := 0; i < lookups; i++ {
		j, _ := rand.Int(rand.Reader, big.NewInt(int64(count)))
		if _, err := d.Find(names[j.Int64()]); err != nil {
			misses++
		}
	}
	searchDur := time.Since(start)

	stats := d.Stats()
	fmt.Printf("Inserted %d files in %v (%.0f ns/file)\n",
		count, insertDur, float64(insertDur.Nanoseconds())/float64(count))
	fmt.Printf("Looked up %d names in %v (%.0f ns/lookup, %d misses)\n",
		lookups, searchDur, float64(searchDur.Nanoseconds())/float64(lookups), misses)
	fmt.Printf("Entry blocks: %d, index blocks: %d, total entries: %d\n",
		stats.EntryBlockCount, stats.IndexBlockCount, stats.TotalEntries)

	if verbose {
		fill := d.BlockFill()
		minFill, maxFill, sum := stats.EntriesPerBlock, 0, 0
		for _, n := range fill {
			if n < minFill {
				minFill = n
			}
			if n > maxFill {
				maxFill = n
			}
			sum += n
		}
		if len(fill) > 0 {
			fmt.Printf("Block fill: min=%d, max=%d, avg=%.1f of %d\n",
				minFill, maxFill, float64(sum)/float64(len(fill)), stats.EntriesPerBlock)
		}
	}
}

// randomHexName generates a 20-byte filename of random hex with a .txt
// suffix, matching the shape of short real-world filenames.
func randomHexName() string {
	a, _ := rand.Int(rand.Reader, big.NewInt(0xFFFFFFFF))
	b, _ := rand.Int(rand.Reader, big.NewInt(0xFFFFFFFF))
	return fmt.Sprintf("%08x%08x.txt", a.Int64(), b.Int64())
}
