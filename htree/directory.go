package htree

import (
	"errors"
	"fmt"
	"slices"
)

// Directory is an in-memory, block-structured, hash-indexed directory.
// It maps filenames to inode numbers in fixed-size blocks and routes both
// insertion and lookup through the hash partition, so cost grows
// logarithmically with the number of blocks rather than linearly with the
// number of entries.
//
// A Directory is not safe for concurrent use; callers must serialize
// access externally.
type Directory struct {
	store        *blockStore
	index        *dirIndex
	maxNameLen   int
	totalEntries uint64
}

// Stats is a read-only snapshot of a directory's shape.
type Stats struct {
	EntryBlockCount int    `json:"entry_block_count"`
	IndexBlockCount int    `json:"index_block_count"`
	TotalEntries    uint64 `json:"total_entries"`
	BlockSize       int    `json:"block_size"`
	EntriesPerBlock int    `json:"entries_per_block"`
}

// New creates an empty directory with a single root block. The block
// size and maximum filename length default to 4096 and 255 bytes and are
// fixed for the directory's lifetime, since block capacities derive from
// them.
func New(opts ...Option) (*Directory, error) {
	cfg := config{
		blockSize:  DefaultBlockSize,
		maxNameLen: DefaultMaxNameLen,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	store, err := newBlockStore(cfg.blockSize, cfg.maxNameLen)
	if err != nil {
		return nil, err
	}
	return &Directory{
		store:      store,
		index:      &dirIndex{store: store},
		maxNameLen: cfg.maxNameLen,
	}, nil
}

// Insert adds a filename to inode mapping. Every insertion either fully
// commits or fully aborts; on error the directory is unchanged. Duplicate
// names are not rejected; Find returns the first record in routing order.
func (d *Directory) Insert(name string, inode uint32) error {
	if len(name) > d.maxNameLen {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrNameTooLong, len(name), d.maxNameLen)
	}
	h := Hash(name)
	ref, err := d.index.route(h)
	if errors.Is(err, ErrNoEntryBlocks) {
		ref, err = d.addFirstEntryBlock()
	}
	if err != nil {
		return err
	}
	blk, err := d.store.entryBlockAt(ref)
	if err != nil {
		return err
	}
	if blk.header.FreeSpace < d.store.entryRecSize {
		ref, err = d.splitEntryBlock(ref, h)
		if err != nil {
			return err
		}
		blk, err = d.store.entryBlockAt(ref)
		if err != nil {
			return err
		}
	}
	blk.appendRecord(DirEntry{
		Inode:    inode,
		NameLen:  uint8(len(name)),
		FileType: FileTypeRegular,
		Name:     name,
	}, d.store.entryRecSize)
	d.totalEntries++
	return nil
}

// Find returns the record for name, or ErrNotFound. Routing identifies
// the single entry block that could hold the name; no other block is
// scanned.
func (d *Directory) Find(name string) (DirEntry, error) {
	ref, err := d.index.route(Hash(name))
	if errors.Is(err, ErrNoEntryBlocks) {
		return DirEntry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return DirEntry{}, err
	}
	blk, err := d.store.entryBlockAt(ref)
	if err != nil {
		return DirEntry{}, err
	}
	for _, rec := range blk.records {
		if rec.Name == name {
			return rec, nil
		}
	}
	return DirEntry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Stats reports block counts and totals. The root block is not counted
// in IndexBlockCount; it is always present.
func (d *Directory) Stats() Stats {
	return Stats{
		EntryBlockCount: len(d.store.entryBlocks),
		IndexBlockCount: len(d.store.indexBlocks),
		TotalEntries:    d.totalEntries,
		BlockSize:       d.store.blockSize,
		EntriesPerBlock: d.store.entryCap,
	}
}

// EntryCapacity returns the number of records a single entry block holds.
func (d *Directory) EntryCapacity() int {
	return d.store.entryCap
}

// BlockFill reports the record count of every entry block in allocation
// order, for inspecting how evenly the hash spreads names.
func (d *Directory) BlockFill() []int {
	fill := make([]int, len(d.store.entryBlocks))
	for i := range d.store.entryBlocks {
		fill[i] = len(d.store.entryBlocks[i].records)
	}
	return fill
}

// addFirstEntryBlock allocates the directory's first entry block and
// anchors the partition with a boundary at hash zero.
func (d *Directory) addFirstEntryBlock() (blockRef, error) {
	ref, err := d.store.allocateEntryBlock()
	if err != nil {
		return 0, err
	}
	if err := d.index.registerBoundary(0, ref); err != nil {
		return 0, err
	}
	return ref, nil
}

// splitEntryBlock makes room for a record hashing to h when its routed
// block is full. The block's records are redistributed around a boundary
// hash so that every record still lives in the block routing points at,
// and the new boundary is registered in the index. Index reshaping and
// allocation happen before any record moves, so a failure leaves the
// directory unchanged.
func (d *Directory) splitEntryBlock(ref blockRef, h uint32) (blockRef, error) {
	s := d.store
	blk, err := s.entryBlockAt(ref)
	if err != nil {
		return 0, err
	}
	boundary, err := splitHash(blk.records, h)
	if err != nil {
		return 0, err
	}
	if err := d.index.ensureCapacity(boundary); err != nil {
		return 0, err
	}
	newRef, err := s.allocateEntryBlock()
	if err != nil {
		return 0, err
	}
	// Allocation may relocate the sequence, so re-resolve both blocks.
	blk, err = s.entryBlockAt(ref)
	if err != nil {
		return 0, err
	}
	dst, err := s.entryBlockAt(newRef)
	if err != nil {
		return 0, err
	}
	var keep []DirEntry
	for _, rec := range blk.records {
		if Hash(rec.Name) >= boundary {
			dst.appendRecord(rec, s.entryRecSize)
		} else {
			keep = append(keep, rec)
		}
	}
	blk.records = keep
	blk.header.EntryCount = uint32(len(keep))
	blk.header.FreeSpace = s.payloadSize - blk.header.EntryCount*s.entryRecSize
	if err := d.index.registerBoundary(boundary, newRef); err != nil {
		return 0, err
	}
	if h >= boundary {
		return newRef, nil
	}
	return ref, nil
}

// splitHash picks the boundary for splitting a full entry block that must
// absorb a record hashing to h. When the block holds more than one
// distinct hash the median keeps both halves occupied, so whichever side
// the incoming record routes to has room. A block of identically hashed
// records receiving yet another equal hash cannot be split; that is the
// designed capacity ceiling, not a bug.
func splitHash(records []DirEntry, h uint32) (uint32, error) {
	hashes := make([]uint32, len(records))
	for i, rec := range records {
		hashes[i] = Hash(rec.Name)
	}
	slices.Sort(hashes)
	lo, hi := hashes[0], hashes[len(hashes)-1]
	if lo == hi {
		switch {
		case h == lo:
			return 0, fmt.Errorf("%w: %d identically hashed names in one block",
				ErrIndexBlockFull, len(records))
		case h > lo:
			// nothing moves; the incoming record gets the new block
			return h, nil
		default:
			// everything moves; the incoming record keeps the old block
			return lo, nil
		}
	}
	v := hashes[len(hashes)/2]
	if v == lo {
		// skip duplicates of the smallest hash so the old block keeps at
		// least one record
		i := len(hashes) / 2
		for hashes[i] == lo {
			i++
		}
		v = hashes[i]
	}
	return v, nil
}
