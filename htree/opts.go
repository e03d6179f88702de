package htree

import "fmt"

// Defaults for the construction-time configuration. Both values are fixed
// once a Directory is built, since block capacities derive from them.
const (
	DefaultBlockSize  = 4096
	DefaultMaxNameLen = 255
)

type config struct {
	blockSize  int
	maxNameLen int
}

// Option is a functional option for configuring Directory creation.
type Option func(*config) error

// WithBlockSize sets the fixed block size in bytes.
func WithBlockSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: block size %d must be positive", ErrInvalidOption, n)
		}
		c.blockSize = n
		return nil
	}
}

// WithMaxNameLen sets the maximum filename length in bytes. The length is
// stored in a single byte per record, so it cannot exceed 255.
func WithMaxNameLen(n int) Option {
	return func(c *config) error {
		if n <= 0 || n > 255 {
			return fmt.Errorf("%w: max name length %d must be in 1..255", ErrInvalidOption, n)
		}
		c.maxNameLen = n
		return nil
	}
}
