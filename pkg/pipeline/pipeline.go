// Package pipeline turns data-block definitions into S7 source files.
//
// The CLI and the HTTP API both go through [Runner.Generate], which
//
//  1. loads the block (from a definition file, a decoded document, or a
//     block built in code),
//  2. hashes its canonical JSON definition,
//  3. returns the cached source for that hash or renders and caches it, and
//  4. optionally writes the source to disk.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Generate(ctx, pipeline.Options{
//	    Input: "plant.yaml",
//	    Write: true,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Path, result.CacheHit)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
	pio "github.com/matzehuels/s7db/pkg/io"
)

// Options configures a single generation run.
//
// Exactly one of Input, Document and Block must be set.
type Options struct {
	// Input is the path of a definition file (.json, .yaml, .yml, .toml).
	Input string
	// Document is an already decoded definition.
	Document *pio.Document
	// Block is a block built in code.
	Block *datablock.Block

	// Write writes the source to disk. The path is Output if set, otherwise
	// the definition's output field, otherwise "<name>.db"; relative paths
	// are resolved against OutputDir.
	Write     bool
	Output    string
	OutputDir string

	// NoCache bypasses the cache for both reads and writes.
	NoCache bool

	Logger *log.Logger

	validated bool
}

// Result is the outcome of a generation run.
type Result struct {
	Block *datablock.Block
	// Source is the generated S7 source text.
	Source string
	// Hash is the SHA-256 of the block's canonical JSON definition.
	Hash string
	// Path is where the source was written, empty if Write was false.
	Path     string
	Stats    Stats
	CacheHit bool
}

// Stats holds counters and timings of a run.
type Stats struct {
	Variables  int
	Bytes      int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// ValidateAndSetDefaults checks that exactly one input is given and applies
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	inputs := 0
	if o.Input != "" {
		inputs++
	}
	if o.Document != nil {
		inputs++
	}
	if o.Block != nil {
		inputs++
	}
	switch inputs {
	case 0:
		return errors.New(errors.ErrCodeInvalidInput, "no input: set a definition file, document or block")
	case 1:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "multiple inputs: set only one of definition file, document or block")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
