package htree

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// checkDirectory verifies the structural invariants that must hold after
// every committed insertion: block capacity and header bookkeeping, the
// sorted partition of the hash space, and that every stored record lives
// in exactly the block routing points at.
func checkDirectory(t *testing.T, d *Directory) {
	t.Helper()
	s := d.store

	var total uint64
	for i := range s.entryBlocks {
		b := &s.entryBlocks[i]
		if len(b.records) > s.entryCap {
			t.Errorf("entry block %d holds %d records, capacity %d", i, len(b.records), s.entryCap)
		}
		if b.header.Type != BlockTypeEntry {
			t.Errorf("entry block %d tagged %v", i, b.header.Type)
		}
		if b.header.EntryCount != uint32(len(b.records)) {
			t.Errorf("entry block %d: header count %d, actual %d", i, b.header.EntryCount, len(b.records))
		}
		wantFree := s.payloadSize - b.header.EntryCount*s.entryRecSize
		if b.header.FreeSpace != wantFree {
			t.Errorf("entry block %d: free space %d, want %d", i, b.header.FreeSpace, wantFree)
		}
		total += uint64(len(b.records))
	}
	if total != d.totalEntries {
		t.Errorf("blocks hold %d records, directory counts %d", total, d.totalEntries)
	}

	bounds := collectBoundaries(t, d)
	if len(bounds) > 0 && bounds[0].Hash != 0 {
		t.Errorf("first boundary hash = %d, want 0", bounds[0].Hash)
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i].Hash <= bounds[i-1].Hash {
			t.Errorf("boundaries not strictly increasing at %d: %d then %d",
				i, bounds[i-1].Hash, bounds[i].Hash)
		}
	}
	if len(bounds) != len(s.entryBlocks) {
		t.Errorf("%d boundaries for %d entry blocks", len(bounds), len(s.entryBlocks))
	}

	for i := range s.entryBlocks {
		for _, rec := range s.entryBlocks[i].records {
			ref, err := d.index.route(Hash(rec.Name))
			if err != nil {
				t.Errorf("route(%q) failed: %v", rec.Name, err)
				continue
			}
			if ref != blockRef(i) {
				t.Errorf("record %q stored in block %d but routes to %d", rec.Name, i, ref)
			}
		}
	}
}

// collectBoundaries flattens the index into the ordered boundary list,
// checking per-level consistency on the way.
func collectBoundaries(t *testing.T, d *Directory) []IndexRecord {
	t.Helper()
	s := d.store
	if d.index.depth == 0 {
		return s.root.records
	}
	var out []IndexRecord
	for _, rr := range s.root.records {
		leaf, err := s.indexBlockAt(blockRef(rr.BlockNumber))
		if err != nil {
			t.Fatalf("root points at missing index block %d: %v", rr.BlockNumber, err)
		}
		if len(leaf.records) == 0 {
			t.Fatalf("index block %d is empty", rr.BlockNumber)
		}
		if leaf.records[0].Hash != rr.Hash {
			t.Errorf("index block %d starts at hash %d, root says %d",
				rr.BlockNumber, leaf.records[0].Hash, rr.Hash)
		}
		if leaf.header.EntryCount != uint32(len(leaf.records)) {
			t.Errorf("index block %d: header count %d, actual %d",
				rr.BlockNumber, leaf.header.EntryCount, len(leaf.records))
		}
		out = append(out, leaf.records...)
	}
	return out
}

func TestNewDefaults(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stats := d.Stats()
	if stats.BlockSize != DefaultBlockSize {
		t.Errorf("block size = %d, want %d", stats.BlockSize, DefaultBlockSize)
	}
	// (4096 - 12) / (6 + 255)
	if stats.EntriesPerBlock != 15 {
		t.Errorf("entries per block = %d, want 15", stats.EntriesPerBlock)
	}
	if stats.EntryBlockCount != 0 || stats.IndexBlockCount != 0 || stats.TotalEntries != 0 {
		t.Errorf("fresh directory stats = %+v, want all zero counts", stats)
	}
}

func TestInsertAndFind(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
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
			t.Fatalf("Insert(%q, %d) error = %v", f.name, f.inode, err)
		}
	}

	rec, err := d.Find("file2.txt")
	if err != nil {
		t.Fatalf("Find(file2.txt) error = %v", err)
	}
	if rec.Inode != 1002 {
		t.Errorf("Find(file2.txt).Inode = %d, want 1002", rec.Inode)
	}
	if rec.Name != "file2.txt" || rec.NameLen != 9 {
		t.Errorf("Find(file2.txt) record = %+v", rec)
	}
	if rec.FileType != FileTypeRegular {
		t.Errorf("Find(file2.txt).FileType = %v, want Regular", rec.FileType)
	}

	if _, err := d.Find("missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(missing.txt) error = %v, want ErrNotFound", err)
	}

	stats := d.Stats()
	if stats.TotalEntries != 3 {
		t.Errorf("total entries = %d, want 3", stats.TotalEntries)
	}
	if stats.EntryBlockCount != 1 {
		t.Errorf("entry blocks = %d, want 1", stats.EntryBlockCount)
	}
	checkDirectory(t, d)
}

func TestFindEmptyDirectory(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := d.Find("anything"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find on empty directory error = %v, want ErrNotFound", err)
	}
}

func TestNameTooLong(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.Insert("kept.txt", 7); err != nil {
		t.Fatalf("Insert(kept.txt) error = %v", err)
	}
	before := d.Stats()

	err = d.Insert(strings.Repeat("n", 300), 99)
	if !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("Insert(300-byte name) error = %v, want ErrNameTooLong", err)
	}
	if after := d.Stats(); after != before {
		t.Errorf("stats changed after rejected insert: %+v, want %+v", after, before)
	}
	checkDirectory(t, d)
}

func TestDuplicateNames(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.Insert("twice.txt", 1); err != nil {
		t.Fatalf("first Insert error = %v", err)
	}
	if err := d.Insert("twice.txt", 2); err != nil {
		t.Fatalf("second Insert error = %v", err)
	}

	if got := d.Stats().TotalEntries; got != 2 {
		t.Errorf("total entries = %d, want 2 independent records", got)
	}
	rec, err := d.Find("twice.txt")
	if err != nil {
		t.Fatalf("Find(twice.txt) error = %v", err)
	}
	if rec.Inode != 1 {
		t.Errorf("Find(twice.txt).Inode = %d, want first record's inode 1", rec.Inode)
	}
}

func TestHashCollisionLookup(t *testing.T) {
	// abfile.txt and bAfile.txt share a digest; exact name comparison
	// inside the routed block must disambiguate.
	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.Insert("abfile.txt", 10); err != nil {
		t.Fatalf("Insert(abfile.txt) error = %v", err)
	}
	if err := d.Insert("bAfile.txt", 20); err != nil {
		t.Fatalf("Insert(bAfile.txt) error = %v", err)
	}

	for _, tt := range []struct {
		name string
		want uint32
	}{
		{"abfile.txt", 10},
		{"bAfile.txt", 20},
	} {
		rec, err := d.Find(tt.name)
		if err != nil {
			t.Fatalf("Find(%q) error = %v", tt.name, err)
		}
		if rec.Inode != tt.want {
			t.Errorf("Find(%q).Inode = %d, want %d", tt.name, rec.Inode, tt.want)
		}
	}

	// A third name with the same digest but no record: the routed block is
	// found, but no exact name match means NotFound, not a false hit.
	if Hash("abgHle.txt") != Hash("abfile.txt") {
		t.Fatal("test setup: abgHle.txt does not collide")
	}
	if _, err := d.Find("abgHle.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(colliding absent name) error = %v, want ErrNotFound", err)
	}
}

func TestBlockOverflowBoundary(t *testing.T) {
	// blockSize 100, maxNameLen 16: payload 88, record 22, four records
	// per entry block.
	d, err := New(WithBlockSize(100), WithMaxNameLen(16))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cap := d.EntryCapacity()
	if cap != 4 {
		t.Fatalf("entry capacity = %d, want 4", cap)
	}

	for i := 0; i < cap; i++ {
		if err := d.Insert(fmt.Sprintf("file%d", i), uint32(i)); err != nil {
			t.Fatalf("Insert #%d error = %v", i, err)
		}
	}
	// Filling the block exactly must not allocate a second one.
	if got := d.Stats().EntryBlockCount; got != 1 {
		t.Fatalf("entry blocks after %d inserts = %d, want 1", cap, got)
	}

	if err := d.Insert("overflow", 100); err != nil {
		t.Fatalf("overflow Insert error = %v", err)
	}
	if got := d.Stats().EntryBlockCount; got != 2 {
		t.Fatalf("entry blocks after overflow = %d, want 2", got)
	}
	checkDirectory(t, d)

	for i := 0; i < cap; i++ {
		name := fmt.Sprintf("file%d", i)
		rec, err := d.Find(name)
		if err != nil {
			t.Errorf("Find(%q) after split error = %v", name, err)
			continue
		}
		if rec.Inode != uint32(i) {
			t.Errorf("Find(%q).Inode = %d, want %d", name, rec.Inode, i)
		}
	}
	if rec, err := d.Find("overflow"); err != nil || rec.Inode != 100 {
		t.Errorf("Find(overflow) = %+v, %v, want inode 100", rec, err)
	}
}

func TestRoundTripManyNames(t *testing.T) {
	d, err := New(WithBlockSize(256), WithMaxNameLen(16))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	const count = 300
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("name-%03d.dat", i)
		if err := d.Insert(name, uint32(1000+i)); err != nil {
			t.Fatalf("Insert(%q) error = %v", name, err)
		}
	}

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("name-%03d.dat", i)
		rec, err := d.Find(name)
		if err != nil {
			t.Fatalf("Find(%q) error = %v", name, err)
		}
		if rec.Inode != uint32(1000+i) {
			t.Errorf("Find(%q).Inode = %d, want %d", name, rec.Inode, 1000+i)
		}
	}

	stats := d.Stats()
	if stats.TotalEntries != count {
		t.Errorf("total entries = %d, want %d", stats.TotalEntries, count)
	}
	if stats.EntryBlockCount < count/d.EntryCapacity() {
		t.Errorf("entry blocks = %d, too few for %d records at capacity %d",
			stats.EntryBlockCount, count, d.EntryCapacity())
	}
	checkDirectory(t, d)
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "zero block size",
			opts:    []Option{WithBlockSize(0)},
			wantErr: ErrInvalidOption,
		},
		{
			name:    "negative block size",
			opts:    []Option{WithBlockSize(-4096)},
			wantErr: ErrInvalidOption,
		},
		{
			name:    "zero name length",
			opts:    []Option{WithMaxNameLen(0)},
			wantErr: ErrInvalidOption,
		},
		{
			name:    "name length over one byte",
			opts:    []Option{WithMaxNameLen(256)},
			wantErr: ErrInvalidOption,
		},
		{
			name:    "block cannot hold one record",
			opts:    []Option{WithBlockSize(20)},
			wantErr: ErrBlockTooSmall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlockFill(t *testing.T) {
	d, err := New(WithBlockSize(100), WithMaxNameLen(16))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := d.Insert(fmt.Sprintf("f%d", i), uint32(i)); err != nil {
			t.Fatalf("Insert error = %v", err)
		}
	}

	fill := d.BlockFill()
	if len(fill) != d.Stats().EntryBlockCount {
		t.Fatalf("BlockFill length = %d, want %d", len(fill), d.Stats().EntryBlockCount)
	}
	sum := 0
	for _, n := range fill {
		sum += n
	}
	if sum != 10 {
		t.Errorf("BlockFill sums to %d, want 10", sum)
	}
}
