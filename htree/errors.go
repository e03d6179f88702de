package htree

import "errors"

// Sentinel errors for package htree.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Insertion errors
	ErrNameTooLong    = errors.New("filename exceeds maximum length")
	ErrAllocation     = errors.New("block allocation limit reached")
	ErrIndexBlockFull = errors.New("index capacity exhausted, no further levels configured")

	// Lookup errors
	ErrNotFound = errors.New("name not found in directory")

	// Routing errors
	ErrNoEntryBlocks = errors.New("directory has no entry blocks")

	// Block store errors
	ErrOutOfRange    = errors.New("block reference out of range")
	ErrBlockTooSmall = errors.New("block size cannot hold a header and one record")
	ErrInvalidOption = errors.New("invalid directory option")
)
