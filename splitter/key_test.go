package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamingMapped(t *testing.T) {
	name := namerFor("out", Opts{Mode: ModeMapped}, nil)
	assert.Equal(t, "out.MAPPED.bam", name(boolPartitionKey(true)))
	assert.Equal(t, "out.UNMAPPED.bam", name(boolPartitionKey(false)))
}

func TestNamingPaired(t *testing.T) {
	name := namerFor("out", Opts{Mode: ModePaired}, nil)
	assert.Equal(t, "out.PAIRED_END.bam", name(boolPartitionKey(true)))
	assert.Equal(t, "out.SINGLE_END.bam", name(boolPartitionKey(false)))
}

func TestNamingReference(t *testing.T) {
	name := namerFor("out", Opts{Mode: ModeReference}, testHeader.Refs())
	assert.Equal(t, "out.REF_chr1.bam", name(intPartitionKey(0)))
	assert.Equal(t, "out.REF_chr3.bam", name(intPartitionKey(2)))
	// The unmapped sentinel has no table entry but is still a valid key.
	assert.Equal(t, "out.REF_unmapped.bam", name(intPartitionKey(-1)))
	assert.Equal(t, "out.REF_unmapped.bam", name(intPartitionKey(99)))
}

func TestNamingTag(t *testing.T) {
	name := namerFor("out", Opts{Mode: ModeTag, Tag: "RG"}, nil)
	assert.Equal(t, "out.TAG_RG_7.bam", name(intPartitionKey(7)))
	assert.Equal(t, "out.TAG_RG_-3.bam", name(intPartitionKey(-3)))
	assert.Equal(t, "out.TAG_RG_4000000000.bam", name(uintPartitionKey(4000000000)))
	assert.Equal(t, "out.TAG_RG_2.5.bam", name(floatPartitionKey(2.5)))
	assert.Equal(t, "out.TAG_RG_lib1.bam", name(stringPartitionKey("lib1")))
}

func TestKeyText(t *testing.T) {
	assert.Equal(t, "true", boolPartitionKey(true).text())
	assert.Equal(t, "-12", intPartitionKey(-12).text())
	assert.Equal(t, "12", uintPartitionKey(12).text())
	assert.Equal(t, "0.15", floatPartitionKey(0.15).text())
	assert.Equal(t, "x", stringPartitionKey("x").text())
}

func TestKeysAreDistinctMapKeys(t *testing.T) {
	// A bool key and an int key must never collide, nor keys of the same
	// kind with different values.
	m := map[partitionKey]int{}
	m[boolPartitionKey(false)] = 1
	m[intPartitionKey(0)] = 2
	m[uintPartitionKey(0)] = 3
	m[floatPartitionKey(0)] = 4
	m[stringPartitionKey("")] = 5
	m[intPartitionKey(1)] = 6
	assert.Equal(t, 6, len(m))
}
