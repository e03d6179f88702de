// Package htree implements a block-structured, hash-indexed directory:
// an in-memory container of filename to inode mappings laid out in
// fixed-size blocks, with lookups routed by a 32-bit name hash instead of
// a full scan.
//
// The structure mirrors the on-disk htree indexes of journaling
// filesystems. A directory owns three kinds of fixed-size blocks:
//
//   - Entry blocks hold the directory entry records themselves.
//   - Index blocks hold sorted (hash, block number) boundary records.
//   - The root block is the always-present top-level index block.
//
// The boundary records, taken in sorted order, partition the 32-bit hash
// space into contiguous half-open ranges, each owned by exactly one entry
// block. Insertion hashes the name, routes to the owning entry block, and
// appends; when the owning block is full it is split around a median hash
// and a new boundary is registered. Lookup routes the same way and scans
// exactly one block, so both operations cost a binary search over the
// boundaries plus a bounded in-block scan.
//
// Blocks are referenced by logical index into growable sequences owned by
// an internal block store, never by address, so the backing storage may
// relocate on growth without invalidating boundary records.
//
// The directory is designed for single-threaded use. Callers that need
// concurrent access must serialize externally, because an insertion can
// mutate an entry block and the index blocks as one logical step.
//
// Blocks are never persisted, deleted, or compacted here; that belongs to
// a surrounding filesystem layer that owns block I/O and locking.
package htree
