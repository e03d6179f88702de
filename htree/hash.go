package htree

// Hash returns the 32-bit routing digest of a filename.
// It is the classic shift-add polynomial (h = h*33 + b) over the raw bytes
// of the name, with wraparound arithmetic. The digest is deterministic and
// unseeded; distinct names may collide, which lookup resolves with an exact
// name comparison inside the routed block.
func Hash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = (h << 5) + h + uint32(name[i])
	}
	return h
}
