package splitter

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
)

// sink is one open output: the destination file plus the BAM encoder
// writing to it.
type sink struct {
	path string
	f    file.File
	w    *bam.Writer
}

// sinkPool owns every output of a run. A sink is opened lazily the first
// time its partition key is seen and stays open until finalize; a key is
// never bound to more than one sink.
type sinkPool struct {
	header *sam.Header
	name   func(partitionKey) string
	sinks  map[partitionKey]*sink
	opened int
}

func newSinkPool(header *sam.Header, name func(partitionKey) string) *sinkPool {
	return &sinkPool{header: header, name: name, sinks: map[partitionKey]*sink{}}
}

// route appends rec to the sink registered for key, opening the sink on
// the key's first sighting. An open failure aborts the run; sinks opened
// earlier are still closed by finalize.
func (p *sinkPool) route(key partitionKey, rec *sam.Record) error {
	s, ok := p.sinks[key]
	if !ok {
		var err error
		if s, err = p.open(key); err != nil {
			return err
		}
		p.sinks[key] = s
		p.opened++
	}
	if err := s.w.Write(rec); err != nil {
		return errors.E(err, "write record to:", s.path)
	}
	return nil
}

func (p *sinkPool) open(key partitionKey) (*sink, error) {
	path := p.name(key)
	ctx := vcontext.Background()
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create output:", path)
	}
	w, err := bam.NewWriter(f.Writer(ctx), p.header, 1)
	if err != nil {
		f.Close(ctx) // nolint: errcheck
		return nil, errors.E(err, "write BAM header:", path)
	}
	log.Debug.Printf("opened output %s", path)
	return &sink{path: path, f: f, w: w}, nil
}

// finalize flushes and closes every open sink exactly once. It runs on the
// failure path as well as the success path, so no handle outlives the run;
// the first close error wins.
func (p *sinkPool) finalize() error {
	var firstErr error
	ctx := vcontext.Background()
	for key, s := range p.sinks {
		delete(p.sinks, key)
		if err := s.w.Close(); err != nil && firstErr == nil {
			firstErr = errors.E(err, "close output:", s.path)
		}
		if err := s.f.Close(ctx); err != nil && firstErr == nil {
			firstErr = errors.E(err, "close output:", s.path)
		}
	}
	return firstErr
}
