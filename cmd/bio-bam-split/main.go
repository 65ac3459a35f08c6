package main

// bio-bam-split splits a BAM or SAM file on a record property, creating a
// new BAM output file for each distinct value found.
//
// Usage: bio-bam-split [-in file] [-stub stub] <-mapped|-paired|-reference|-tag TAG>

import (
	"flag"
	"fmt"
	"strings"

	"github.com/grailbio/bamsplit/splitter"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
)

var (
	inFlag     = flag.String("in", "", "Input BAM/SAM filename. Empty or '-' reads from stdin.")
	stubFlag   = flag.String("stub", "", "Prefix stub for output BAM files. Defaults to the input filename without its extension; with stdin input and no stub, a timestamp is generated as the stub.")
	formatFlag = flag.String("format", "", "Input format, 'bam' or 'sam'. Guessed from the filename when empty.")
	mappedFlag = flag.Bool("mapped", false, "Split mapped/unmapped alignments")
	pairedFlag = flag.Bool("paired", false, "Split single-end/paired-end alignments")
	refFlag    = flag.Bool("reference", false, "Split alignments by reference")
	tagFlag    = flag.String("tag", "", "Split alignments on all values of TAG encountered (e.g. -tag RG creates one BAM file per read group)")
)

// makeOpts translates flag values into engine options, enforcing that at
// most one split mode was requested. Zero modes is left for the engine to
// reject.
func makeOpts(in, stub, format string, mapped, paired, reference bool, tag string) (splitter.Opts, error) {
	opts := splitter.Opts{Path: in, Stub: stub}
	switch format {
	case "":
	case "bam":
		opts.Format = splitter.FormatBAM
	case "sam":
		opts.Format = splitter.FormatSAM
	default:
		return opts, fmt.Errorf("unknown input format %q", format)
	}
	nModes := 0
	if mapped {
		opts.Mode = splitter.ModeMapped
		nModes++
	}
	if paired {
		opts.Mode = splitter.ModePaired
		nModes++
	}
	if reference {
		opts.Mode = splitter.ModeReference
		nModes++
	}
	if tag != "" {
		opts.Mode = splitter.ModeTag
		opts.Tag = tag
		nModes++
	}
	if nModes > 1 {
		return opts, fmt.Errorf("only one of -mapped, -paired, -reference, -tag may be given")
	}
	return opts, nil
}

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() > 0 {
		log.Fatalf("unparsed arguments, please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	opts, err := makeOpts(*inFlag, *stubFlag, *formatFlag, *mappedFlag, *pairedFlag, *refFlag, *tagFlag)
	if err != nil {
		log.Fatalf("bio-bam-split: %v", err)
	}
	if _, err := splitter.Run(opts); err != nil {
		log.Fatalf("bio-bam-split: %v", err)
	}
}
