package splitter

import (
	"github.com/grailbio/base/errors"
)

// Mode selects the record property used to partition the input.
type Mode int

const (
	// ModeNone is the zero value. Run rejects it with ErrNoModeSelected.
	ModeNone Mode = iota
	// ModeMapped partitions records by their mapped/unmapped flag.
	ModeMapped
	// ModePaired partitions records by their paired/single-end flag.
	ModePaired
	// ModeReference partitions records by reference ID.
	ModeReference
	// ModeTag partitions records by the value of the aux tag named in
	// Opts.Tag. Records lacking the tag are skipped.
	ModeTag
)

// Format names the input container format.
type Format int

const (
	// FormatAuto guesses the format from the input filename. Stdin defaults
	// to BAM.
	FormatAuto Format = iota
	// FormatBAM reads BAM input.
	FormatBAM
	// FormatSAM reads SAM input, optionally gzip-compressed.
	FormatSAM
)

// ErrNoModeSelected is returned by Run when Opts names no split mode.
var ErrNoModeSelected = errors.New("no property given to split on; use -mapped, -paired, -reference, or -tag TAG")

// Opts configures one split run.
type Opts struct {
	// Path is the input BAM/SAM filename. Empty or "-" reads from stdin.
	Path string
	// Stub overrides the output filename stub. When empty, the stub is
	// derived from Path, or from a timestamp when reading stdin.
	Stub string
	// Format is the input container format.
	Format Format
	// Mode is the split mode. Exactly one must be selected.
	Mode Mode
	// Tag is the two-character aux tag name to split on. ModeTag only.
	Tag string
}

func (o *Opts) validate() error {
	switch o.Mode {
	case ModeMapped, ModePaired, ModeReference:
		return nil
	case ModeTag:
		if len(o.Tag) != 2 {
			return errors.E("tag name must be exactly two characters:", o.Tag)
		}
		return nil
	}
	return ErrNoModeSelected
}
