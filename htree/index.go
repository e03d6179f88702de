package htree

import (
	"fmt"
	"slices"
	"sort"
)

// dirIndex maintains the hash-range partition over entry blocks and
// answers routing queries. At depth 0 the root's records point directly
// at entry blocks; at depth 1 one level of index blocks sits between the
// root and the entry blocks, with the same partition invariant one level
// deeper.
type dirIndex struct {
	store *blockStore
	depth int
}

// glbRecord returns the last record whose hash is <= h: the greatest
// lower bound among the sorted records. The caller guarantees records is
// non-empty and anchored at hash 0.
func glbRecord(records []IndexRecord, h uint32) IndexRecord {
	i := sort.Search(len(records), func(i int) bool { return records[i].Hash > h })
	return records[i-1]
}

func insertSorted(b *indexBlock, rec IndexRecord) {
	i := sort.Search(len(b.records), func(i int) bool { return b.records[i].Hash > rec.Hash })
	b.records = slices.Insert(b.records, i, rec)
	b.header.EntryCount++
	b.header.FreeSpace -= indexRecordSize
}

// route returns the entry block responsible for hash h, or
// ErrNoEntryBlocks for a directory that has none yet.
func (ix *dirIndex) route(h uint32) (blockRef, error) {
	root := &ix.store.root
	if len(root.records) == 0 {
		return 0, ErrNoEntryBlocks
	}
	rec := glbRecord(root.records, h)
	if ix.depth == 0 {
		return blockRef(rec.BlockNumber), nil
	}
	leaf, err := ix.store.indexBlockAt(blockRef(rec.BlockNumber))
	if err != nil {
		return 0, err
	}
	return blockRef(glbRecord(leaf.records, h).BlockNumber), nil
}

// ensureCapacity reshapes the index so that a following
// registerBoundary(h, ...) cannot fail, or reports ErrIndexBlockFull if
// the structure is at its designed ceiling. Reshaping moves boundary
// records between index blocks but never changes which entry block any
// hash routes to, so it is safe to run eagerly even if the enclosing
// insertion later aborts.
func (ix *dirIndex) ensureCapacity(h uint32) error {
	s := ix.store
	if ix.depth == 0 {
		if len(s.root.records) < s.indexCap {
			return nil
		}
		// Root overflow: push the root's records down into a fresh index
		// block and leave the root pointing at it. The new leaf is full,
		// so fall through to the leaf split below.
		ref, err := s.allocateIndexBlock()
		if err != nil {
			return err
		}
		leaf, err := s.indexBlockAt(ref)
		if err != nil {
			return err
		}
		leaf.records = append(leaf.records, s.root.records...)
		leaf.header.EntryCount = uint32(len(leaf.records))
		leaf.header.FreeSpace = s.payloadSize - leaf.header.EntryCount*indexRecordSize
		s.root.records = []IndexRecord{{Hash: leaf.records[0].Hash, BlockNumber: uint32(ref)}}
		s.root.header.EntryCount = 1
		s.root.header.FreeSpace = s.payloadSize - indexRecordSize
		ix.depth = 1
	}

	rec := glbRecord(s.root.records, h)
	leaf, err := s.indexBlockAt(blockRef(rec.BlockNumber))
	if err != nil {
		return err
	}
	if len(leaf.records) < s.indexCap {
		return nil
	}
	if len(s.root.records) >= s.indexCap {
		return fmt.Errorf("%w: root block full at maximum depth", ErrIndexBlockFull)
	}

	// Split the full leaf: move its upper half into a sibling and
	// register the sibling in the root.
	ref, err := s.allocateIndexBlock()
	if err != nil {
		return err
	}
	// Allocation may relocate the sequence, so re-resolve the leaf.
	leaf, err = s.indexBlockAt(blockRef(rec.BlockNumber))
	if err != nil {
		return err
	}
	sibling, err := s.indexBlockAt(ref)
	if err != nil {
		return err
	}
	mid := len(leaf.records) / 2
	sibling.records = append(sibling.records, leaf.records[mid:]...)
	sibling.header.EntryCount = uint32(len(sibling.records))
	sibling.header.FreeSpace = s.payloadSize - sibling.header.EntryCount*indexRecordSize
	leaf.records = leaf.records[:mid]
	leaf.header.EntryCount = uint32(mid)
	leaf.header.FreeSpace = s.payloadSize - leaf.header.EntryCount*indexRecordSize
	insertSorted(&s.root, IndexRecord{Hash: sibling.records[0].Hash, BlockNumber: uint32(ref)})
	return nil
}

// registerBoundary links a new boundary into the index: hashes in
// [h, next boundary) now route to entry block ref. Call ensureCapacity(h)
// first; a full block here means the designed capacity ceiling.
func (ix *dirIndex) registerBoundary(h uint32, ref blockRef) error {
	s := ix.store
	if ix.depth == 0 {
		if len(s.root.records) >= s.indexCap {
			return fmt.Errorf("%w: root block full", ErrIndexBlockFull)
		}
		insertSorted(&s.root, IndexRecord{Hash: h, BlockNumber: uint32(ref)})
		return nil
	}
	rec := glbRecord(s.root.records, h)
	leaf, err := s.indexBlockAt(blockRef(rec.BlockNumber))
	if err != nil {
		return err
	}
	if len(leaf.records) >= s.indexCap {
		return fmt.Errorf("%w: index block full", ErrIndexBlockFull)
	}
	insertSorted(leaf, IndexRecord{Hash: h, BlockNumber: uint32(ref)})
	return nil
}
