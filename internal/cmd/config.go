package cmd

import (
	"fmt"
	"log"

	"github.com/dendrascience/htdir/htree"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

const envVarPrefix = "HTDIR"

// Env carries environment-variable defaults for the directory geometry,
// so deployments can pin a block size without repeating flags on every
// invocation. Flags still override the environment.
type Env struct {
	BlockSize  int `envconfig:"HTDIR_BLOCK_SIZE"   default:"4096"`
	MaxNameLen int `envconfig:"HTDIR_MAX_NAME_LEN" default:"255"`
}

// LoadEnv reads geometry defaults from the environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process(envVarPrefix, &e); err != nil {
		return e, fmt.Errorf("parsing environment variables: %w", err)
	}
	return e, nil
}

// geometryFlags registers the shared --block-size and --max-name-len
// flags, with defaults taken from the environment.
func geometryFlags(cmd *cobra.Command, blockSize, maxNameLen *int) {
	env, err := LoadEnv()
	if err != nil {
		log.Printf("ignoring malformed environment: %v", err)
		env = Env{BlockSize: htree.DefaultBlockSize, MaxNameLen: htree.DefaultMaxNameLen}
	}
	cmd.Flags().IntVar(blockSize, "block-size", env.BlockSize, "Block size in bytes")
	cmd.Flags().IntVar(maxNameLen, "max-name-len", env.MaxNameLen, "Maximum filename length in bytes")
}

// newDirectory builds a directory from the shared geometry flags.
func newDirectory(blockSize, maxNameLen int) (*htree.Directory, error) {
	return htree.New(
		htree.WithBlockSize(blockSize),
		htree.WithMaxNameLen(maxNameLen),
	)
}
