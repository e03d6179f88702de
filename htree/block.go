package htree

import "fmt"

// BlockType tags a block's payload kind.
type BlockType uint32

const (
	BlockTypeRoot BlockType = iota + 1
	BlockTypeIndex
	BlockTypeEntry
)

func (t BlockType) String() string {
	switch t {
	case BlockTypeRoot:
		return "Root"
	case BlockTypeIndex:
		return "Index"
	case BlockTypeEntry:
		return "Entry"
	default:
		return fmt.Sprintf("BlockType(%d)", uint32(t))
	}
}

// FileType tags a directory entry record.
type FileType uint8

const (
	FileTypeRegular FileType = 1
	FileTypeDir     FileType = 2
)

func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "Regular"
	case FileTypeDir:
		return "Dir"
	default:
		return fmt.Sprintf("FileType(%d)", uint8(t))
	}
}

// On-block record geometry, in bytes. Block capacities derive from these
// and the configured block size, computed once at store construction.
const (
	headerSize      = 12 // block type, entry count, free space: one u32 each
	indexRecordSize = 8  // hash + block number
	// dirEntryFixedSize is the fixed prefix of a directory entry record:
	// inode (4), name length (1), file type (1). The name slot adds the
	// configured maximum name length on top.
	dirEntryFixedSize = 6
)

// BlockHeader describes a block's payload. FreeSpace is always
// payload capacity minus EntryCount times the record size for the
// block's kind.
type BlockHeader struct {
	Type       BlockType `json:"block_type"`
	EntryCount uint32    `json:"entry_count"`
	FreeSpace  uint32    `json:"free_space"`
}

// DirEntry is a single filename to inode mapping stored in an entry
// block. Records are immutable once written; there is no in-place rename.
type DirEntry struct {
	Inode    uint32   `json:"inode"`
	NameLen  uint8    `json:"name_len"`
	FileType FileType `json:"file_type"`
	Name     string   `json:"name"`
}

// IndexRecord routes a hash range to a block. BlockNumber is a logical
// index into the block store, never an address, so blocks may relocate on
// growth without invalidating outstanding records. The record owns the
// range [Hash, next record's Hash) among the sorted records of its block.
type IndexRecord struct {
	Hash        uint32 `json:"hash"`
	BlockNumber uint32 `json:"block_number"`
}

// entryBlock and indexBlock are the two block payload variants. Keeping
// them as distinct types makes misreading a block's payload a compile
// error rather than a runtime hazard.
type (
	entryBlock struct {
		header  BlockHeader
		records []DirEntry
	}
	indexBlock struct {
		header  BlockHeader
		records []IndexRecord
	}
)

func (b *entryBlock) appendRecord(rec DirEntry, recSize uint32) {
	b.records = append(b.records, rec)
	b.header.EntryCount++
	b.header.FreeSpace -= recSize
}
