package htree_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dendrascience/htdir/htree"
)

const benchNameLength = 20

var benchCharset = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

// benchNames generates deterministic pseudo-random 20-byte filenames with
// a .txt suffix, matching the shape of real short filenames.
func benchNames(n int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	names := make([]string, n)
	buf := make([]byte, benchNameLength)
	for i := range names {
		for j := 0; j < benchNameLength-4; j++ {
			buf[j] = benchCharset[rng.Intn(len(benchCharset))]
		}
		copy(buf[benchNameLength-4:], ".txt")
		names[i] = string(buf)
	}
	return names
}

// BenchmarkInsert measures bulk insertion at several directory sizes,
// fresh directory per iteration.
func BenchmarkInsert(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		b.Run(fmt.Sprintf("%dfiles", n), func(b *testing.B) {
			names := benchNames(n, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d, err := htree.New()
				if err != nil {
					b.Fatal(err)
				}
				for j, name := range names {
					if err := d.Insert(name, uint32(1000+j)); err != nil {
						b.Fatal(err)
					}
				}
			}
			b.ReportMetric(float64(b.Elapsed().Nanoseconds())/float64(b.N*n), "ns/file")
		})
	}
}

// BenchmarkFind measures random lookups against a populated directory.
func BenchmarkFind(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		b.Run(fmt.Sprintf("%dfiles", n), func(b *testing.B) {
			names := benchNames(n, 1)
			d, err := htree.New()
			if err != nil {
				b.Fatal(err)
			}
			for j, name := range names {
				if err := d.Insert(name, uint32(1000+j)); err != nil {
					b.Fatal(err)
				}
			}
			rng := rand.New(rand.NewSource(2))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := d.Find(names[rng.Intn(n)]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkHash measures the raw digest cost.
func BenchmarkHash(b *testing.B) {
	names := benchNames(1000, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		htree.Hash(names[i%len(names)])
	}
}
