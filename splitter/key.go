package splitter

import (
	"strconv"

	"github.com/grailbio/hts/sam"
)

// Output filename tokens. These match the conventions established by
// bamtools split byte for byte, so downstream pipelines keep matching
// output names.
const (
	mappedToken    = ".MAPPED"
	unmappedToken  = ".UNMAPPED"
	pairedToken    = ".PAIRED_END"
	singleToken    = ".SINGLE_END"
	referenceToken = ".REF_"
	tagToken       = ".TAG_"
	bamSuffix      = ".bam"
)

// keyKind discriminates the active variant of a partitionKey.
type keyKind int8

const (
	boolKey keyKind = iota
	intKey
	uintKey
	floatKey
	stringKey
)

// partitionKey is a tagged union over the value types a record can be
// partitioned on. Exactly one field, selected by kind, is meaningful; the
// others stay zero so that the struct is directly usable as a map key.
// Float keys compare by exact value, the same bucketing a map keyed on
// float32 would give.
type partitionKey struct {
	kind keyKind
	b    bool
	i    int32
	u    uint32
	f    float32
	s    string
}

func boolPartitionKey(v bool) partitionKey     { return partitionKey{kind: boolKey, b: v} }
func intPartitionKey(v int32) partitionKey     { return partitionKey{kind: intKey, i: v} }
func uintPartitionKey(v uint32) partitionKey   { return partitionKey{kind: uintKey, u: v} }
func floatPartitionKey(v float32) partitionKey { return partitionKey{kind: floatKey, f: v} }
func stringPartitionKey(v string) partitionKey { return partitionKey{kind: stringKey, s: v} }

// text renders the key's value the way it prints: strconv for scalars, the
// string itself otherwise. Used for the .TAG_ filename component.
func (k partitionKey) text() string {
	switch k.kind {
	case boolKey:
		return strconv.FormatBool(k.b)
	case intKey:
		return strconv.FormatInt(int64(k.i), 10)
	case uintKey:
		return strconv.FormatUint(uint64(k.u), 10)
	case floatKey:
		return strconv.FormatFloat(float64(k.f), 'g', -1, 32)
	}
	return k.s
}

// namerFor returns the output naming policy for one run: a pure mapping
// from partition key to output filename. It is invoked once per distinct
// key, when the key's sink is first opened.
func namerFor(stub string, opts Opts, refs []*sam.Reference) func(partitionKey) string {
	switch opts.Mode {
	case ModeMapped:
		return func(key partitionKey) string {
			if key.b {
				return stub + mappedToken + bamSuffix
			}
			return stub + unmappedToken + bamSuffix
		}
	case ModePaired:
		return func(key partitionKey) string {
			if key.b {
				return stub + pairedToken + bamSuffix
			}
			return stub + singleToken + bamSuffix
		}
	case ModeReference:
		return func(key partitionKey) string {
			return stub + referenceToken + refName(refs, key.i) + bamSuffix
		}
	case ModeTag:
		prefix := stub + tagToken + opts.Tag + "_"
		return func(key partitionKey) string {
			return prefix + key.text() + bamSuffix
		}
	}
	panic("no naming policy without a split mode")
}

// refName resolves a reference ID against the run's reference table. The
// unmapped sentinel (-1) is a valid partition key but has no table entry,
// so it gets a stable name instead.
func refName(refs []*sam.Reference, id int32) string {
	if id >= 0 && int(id) < len(refs) {
		return refs[id].Name()
	}
	return "unmapped"
}
