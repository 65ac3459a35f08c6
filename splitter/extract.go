package splitter

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/sam"
)

// keyStatus reports the outcome of one key extraction.
type keyStatus int

const (
	// keyFound: the record carries the key and must be routed.
	keyFound keyStatus = iota
	// keyAbsent: the record lacks the requested tag. It is skipped, not an
	// error; only tag mode produces this.
	keyAbsent
	// keyUndecodable: the record carries the tag, but its value cannot be
	// decoded under the storage class fixed by the first tagged record.
	// The record is dropped and counted.
	keyUndecodable
)

// extractor computes the partition key for one record.
type extractor func(rec *sam.Record) (partitionKey, keyStatus, error)

// extractorFor builds the extractor for the run's mode. All modes but
// ModeTag are total: every well-formed record has a key.
func extractorFor(opts Opts) extractor {
	switch opts.Mode {
	case ModeMapped:
		return extractMapped
	case ModePaired:
		return extractPaired
	case ModeReference:
		return extractReference
	case ModeTag:
		e := &tagExtractor{tag: sam.NewTag(opts.Tag)}
		return e.extract
	}
	panic("no extractor without a split mode")
}

func extractMapped(rec *sam.Record) (partitionKey, keyStatus, error) {
	return boolPartitionKey(rec.Flags&sam.Unmapped == 0), keyFound, nil
}

func extractPaired(rec *sam.Record) (partitionKey, keyStatus, error) {
	return boolPartitionKey(rec.Flags&sam.Paired != 0), keyFound, nil
}

func extractReference(rec *sam.Record) (partitionKey, keyStatus, error) {
	// The unmapped sentinel (-1, nil Ref) is a valid key like any other ID.
	return intPartitionKey(int32(rec.Ref.ID())), keyFound, nil
}

// tagExtractor splits on one aux tag. The first record carrying the tag
// fixes the decode pipeline for the rest of the run; a well-formed file
// uses a single storage class per tag name, so there is no per-record
// re-dispatch.
type tagExtractor struct {
	tag    sam.Tag
	decode func(aux sam.Aux) (partitionKey, bool)
}

func (e *tagExtractor) extract(rec *sam.Record) (partitionKey, keyStatus, error) {
	aux := rec.AuxFields.Get(e.tag)
	if aux == nil {
		return partitionKey{}, keyAbsent, nil
	}
	if e.decode == nil {
		decode, err := classify(aux.Type())
		if err != nil {
			return partitionKey{}, keyUndecodable, err
		}
		e.decode = decode
	}
	key, ok := e.decode(aux)
	if !ok {
		return partitionKey{}, keyUndecodable, nil
	}
	return key, keyFound, nil
}

// classify maps an aux storage class code to its decode pipeline. Called
// once per run, on the first record that carries the tag.
func classify(code byte) (func(sam.Aux) (partitionKey, bool), error) {
	switch code {
	case 'c', 's', 'i':
		return decodeInt, nil
	case 'C', 'S', 'I':
		return decodeUint, nil
	case 'f':
		return decodeFloat, nil
	case 'A', 'Z', 'H':
		return decodeString, nil
	}
	return nil, errors.E(fmt.Sprintf("unsupported tag storage class [%c]", code))
}

func decodeInt(aux sam.Aux) (partitionKey, bool) {
	switch v := aux.Value().(type) {
	case int8:
		return intPartitionKey(int32(v)), true
	case int16:
		return intPartitionKey(int32(v)), true
	case int32:
		return intPartitionKey(v), true
	}
	return partitionKey{}, false
}

func decodeUint(aux sam.Aux) (partitionKey, bool) {
	if aux.Type() == 'A' {
		// An 'A' value is a byte, indistinguishable from a 'C' by Go type
		// alone. It belongs to the string pipeline.
		return partitionKey{}, false
	}
	switch v := aux.Value().(type) {
	case uint8:
		return uintPartitionKey(uint32(v)), true
	case uint16:
		return uintPartitionKey(uint32(v)), true
	case uint32:
		return uintPartitionKey(v), true
	}
	return partitionKey{}, false
}

func decodeFloat(aux sam.Aux) (partitionKey, bool) {
	if v, ok := aux.Value().(float32); ok {
		return floatPartitionKey(v), true
	}
	return partitionKey{}, false
}

func decodeString(aux sam.Aux) (partitionKey, bool) {
	switch aux.Type() {
	case 'A':
		if v, ok := aux.Value().(byte); ok {
			return stringPartitionKey(string(v)), true
		}
	case 'Z', 'H':
		if v, ok := aux.Value().(string); ok {
			return stringPartitionKey(v), true
		}
	}
	return partitionKey{}, false
}
