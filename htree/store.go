package htree

import (
	"fmt"
	"math"
)

// blockRef is a stable logical reference to a block: an index into one of
// the store's block sequences. Refs stay valid across growth because the
// sequences only ever append.
type blockRef uint32

// blockStore owns every block in a directory. It is the only component
// that allocates blocks; everything else holds blockRefs.
type blockStore struct {
	blockSize    int
	payloadSize  uint32 // blockSize - headerSize
	entryRecSize uint32 // dirEntryFixedSize + max name length
	entryCap     int    // records per entry block
	indexCap     int    // records per index block, root included

	root        indexBlock
	indexBlocks []indexBlock
	entryBlocks []entryBlock
}

func newBlockStore(blockSize, maxNameLen int) (*blockStore, error) {
	payload := blockSize - headerSize
	recSize := dirEntryFixedSize + maxNameLen
	// An index block must hold at least two records or leaf splits could
	// leave an empty sibling.
	if payload < recSize || payload < 2*indexRecordSize {
		return nil, fmt.Errorf("%w: block size %d, record size %d",
			ErrBlockTooSmall, blockSize, recSize)
	}
	s := &blockStore{
		blockSize:    blockSize,
		payloadSize:  uint32(payload),
		entryRecSize: uint32(recSize),
		entryCap:     payload / recSize,
		indexCap:     payload / indexRecordSize,
	}
	s.root = indexBlock{header: BlockHeader{
		Type:      BlockTypeRoot,
		FreeSpace: s.payloadSize,
	}}
	return s, nil
}

// allocateEntryBlock appends a fresh empty entry block and returns its
// logical reference. The block is not linked into the index; the caller
// must register a boundary before the block can receive routed records.
func (s *blockStore) allocateEntryBlock() (blockRef, error) {
	if len(s.entryBlocks) >= math.MaxUint32 {
		return 0, fmt.Errorf("%w: entry block numbers exhausted", ErrAllocation)
	}
	s.entryBlocks = append(s.entryBlocks, entryBlock{header: BlockHeader{
		Type:      BlockTypeEntry,
		FreeSpace: s.payloadSize,
	}})
	return blockRef(len(s.entryBlocks) - 1), nil
}

func (s *blockStore) allocateIndexBlock() (blockRef, error) {
	if len(s.indexBlocks) >= math.MaxUint32 {
		return 0, fmt.Errorf("%w: index block numbers exhausted", ErrAllocation)
	}
	s.indexBlocks = append(s.indexBlocks, indexBlock{header: BlockHeader{
		Type:      BlockTypeIndex,
		FreeSpace: s.payloadSize,
	}})
	return blockRef(len(s.indexBlocks) - 1), nil
}

// entryBlockAt resolves a logical reference to an entry block. A failure
// here means a stale reference escaped the index, which is an internal
// invariant violation, never an expected condition.
func (s *blockStore) entryBlockAt(ref blockRef) (*entryBlock, error) {
	if int(ref) >= len(s.entryBlocks) {
		return nil, fmt.Errorf("%w: entry block %d of %d", ErrOutOfRange, ref, len(s.entryBlocks))
	}
	return &s.entryBlocks[ref], nil
}

func (s *blockStore) indexBlockAt(ref blockRef) (*indexBlock, error) {
	if int(ref) >= len(s.indexBlocks) {
		return nil, fmt.Errorf("%w: index block %d of %d", ErrOutOfRange, ref, len(s.indexBlocks))
	}
	return &s.indexBlocks[ref], nil
}
