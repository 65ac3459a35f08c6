// Package splitter partitions a BAM or SAM stream into per-key BAM files.
//
// The input is read once, in order. Each record yields a partition key (the
// mapped flag, the paired flag, the reference, or an aux tag value); the
// first record to produce a given key opens a new output named after the
// key, and every record with that key is appended to it in input order.
// Records are never reordered, merged, or modified in transit.
package splitter

import (
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Stats summarizes one run.
type Stats struct {
	// Read is the number of records pulled from the input.
	Read int64
	// Routed is the number of records written to an output.
	Routed int64
	// Skipped counts records lacking the requested tag. Tag mode only.
	Skipped int64
	// Dropped counts records whose tag value could not be decoded under the
	// storage class fixed by the first tagged record.
	Dropped int64
	// Outputs is the number of output files created.
	Outputs int
}

// Run executes one split: it derives the output stub, opens the input, and
// routes every record to the output selected by its partition key. Every
// output opened along the way is closed before Run returns, on failure as
// well as success. Outputs already written when a record triggers a fatal
// error are left on disk.
func Run(opts Opts) (Stats, error) {
	var stats Stats
	stub := resolveStub(opts)
	src, err := openSource(opts)
	if err != nil {
		return stats, err
	}
	defer src.Close() // nolint: errcheck
	if err := opts.validate(); err != nil {
		return stats, err
	}

	pool := newSinkPool(src.Header(), namerFor(stub, opts, src.Header().Refs()))
	routeErr := routeAll(src, extractorFor(opts), pool, &stats)
	finalizeErr := pool.finalize()
	stats.Outputs = pool.opened
	if routeErr != nil {
		return stats, routeErr
	}
	if finalizeErr != nil {
		return stats, finalizeErr
	}
	log.Printf("split %s: %d records read, %d routed to %d outputs (%d skipped, %d dropped)",
		displayPath(opts.Path), stats.Read, stats.Routed, stats.Outputs, stats.Skipped, stats.Dropped)
	return stats, nil
}

// routeAll is the routing loop shared by all modes: pull a record, extract
// its key, hand it to the pool. Strictly one pass, one in-flight record.
func routeAll(src *source, extract extractor, pool *sinkPool, stats *Stats) error {
	for {
		rec, err := src.Read()
		if rec == nil {
			if err == io.EOF {
				return nil
			}
			return errors.E(err, fmt.Sprintf("read record %d", stats.Read))
		}
		stats.Read++
		key, status, err := extract(rec)
		if err != nil {
			return err
		}
		switch status {
		case keyAbsent:
			stats.Skipped++
			continue
		case keyUndecodable:
			stats.Dropped++
			continue
		}
		if err := pool.route(key, rec); err != nil {
			return err
		}
		stats.Routed++
	}
}
