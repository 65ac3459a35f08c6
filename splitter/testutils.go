package splitter

// Helpers for constructing alignment records and inspecting split outputs
// in tests.

import (
	"io"
	"os"
	"testing"

	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/require"
)

// NewRecord returns a minimal alignment record suitable for routing and
// BAM round-trips.
func NewRecord(name string, ref *sam.Reference, pos int, flags sam.Flags) *sam.Record {
	r := sam.GetFromFreePool()
	r.Name = name
	r.Ref = ref
	r.Pos = pos
	r.MateRef = nil
	r.MatePos = -1
	r.Flags = flags
	return r
}

// NewTagRecord returns a record carrying the given aux fields.
func NewTagRecord(name string, ref *sam.Reference, pos int, flags sam.Flags, auxs ...sam.Aux) *sam.Record {
	r := NewRecord(name, ref, pos, flags)
	r.AuxFields = append(sam.AuxFields{}, auxs...)
	return r
}

// WriteTestBAM writes recs to path as a BAM file with the given header.
func WriteTestBAM(t *testing.T, path string, header *sam.Header, recs []*sam.Record) {
	out, err := os.Create(path)
	require.NoError(t, err)
	w, err := bam.NewWriter(out, header, 1)
	require.NoError(t, err)
	for _, r := range recs {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())
	require.NoError(t, out.Close())
}

// ReadTestBAM reads back every record in the BAM file at path.
func ReadTestBAM(t *testing.T, path string) []*sam.Record {
	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close() // nolint: errcheck
	r, err := bam.NewReader(in, 1)
	require.NoError(t, err)
	defer r.Close() // nolint: errcheck
	var recs []*sam.Record
	for {
		rec, err := r.Read()
		if rec == nil {
			require.Equal(t, io.EOF, err)
			break
		}
		recs = append(recs, rec)
	}
	return recs
}
