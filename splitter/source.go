package splitter

import (
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// recordReader is implemented by both sam.Reader and bam.Reader.
type recordReader interface {
	Header() *sam.Header
	Read() (*sam.Record, error)
}

// source is the record stream for one run: a BAM or SAM reader plus every
// handle that must be released once the stream is drained.
type source struct {
	recordReader
	closers []func() error
}

// formatOf resolves FormatAuto from the input filename. Stdin defaults to
// BAM.
func formatOf(opts Opts) Format {
	if opts.Format != FormatAuto {
		return opts.Format
	}
	if strings.HasSuffix(strings.TrimSuffix(opts.Path, ".gz"), ".sam") {
		return FormatSAM
	}
	return FormatBAM
}

// openSource opens the input path (or stdin) and builds the decoder chain
// for its format. Any failure here aborts the run before a single output
// is created.
func openSource(opts Opts) (*source, error) {
	src := &source{}
	var in io.Reader
	if opts.Path == "" || opts.Path == "-" {
		in = os.Stdin
	} else {
		ctx := vcontext.Background()
		f, err := file.Open(ctx, opts.Path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", opts.Path)
		}
		src.closers = append(src.closers, func() error { return f.Close(ctx) })
		in = f.Reader(ctx)
	}
	format := formatOf(opts)
	if format == FormatSAM && strings.HasSuffix(opts.Path, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			src.Close()
			return nil, errors.Wrapf(err, "open %s: bad gzip stream", opts.Path)
		}
		src.closers = append(src.closers, gz.Close)
		in = gz
	}
	switch format {
	case FormatSAM:
		r, err := sam.NewReader(in)
		if err != nil {
			src.Close()
			return nil, errors.Wrapf(err, "open %s: cannot read SAM header", displayPath(opts.Path))
		}
		src.recordReader = r
	default:
		r, err := bam.NewReader(in, 1)
		if err != nil {
			src.Close()
			return nil, errors.Wrapf(err, "open %s: cannot read BAM header", displayPath(opts.Path))
		}
		src.closers = append(src.closers, r.Close)
		src.recordReader = r
	}
	return src, nil
}

// Close releases the reader and the underlying file in reverse open order.
func (s *source) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}
