package cache

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrInvalidGeometry is wrapped by every configuration error reported when
// constructing a Geometry.
var ErrInvalidGeometry = errors.New("invalid cache geometry")

// Geometry describes the shape of a cache and splits addresses into their
// tag, index and offset fields.
//
// In byte-addressed mode an address names a byte and the offset counts bytes
// within a block. In word-addressed mode an address names a word of
// BytesPerWord bytes and the offset counts words within a block.
type Geometry struct {
	NumSets       uint64
	BlockSize     uint64
	Assoc         uint64
	AddressSize   uint64
	BytesPerWord  uint64
	ByteAddressed bool

	OffsetSize uint
	IndexSize  uint
	TagSize    uint
}

// NewGeometry validates the configuration and derives the field widths.
func NewGeometry(
	numSets, blockSize, assoc, addressSize, bytesPerWord uint64,
	byteAddressed bool,
) (Geometry, error) {
	params := []struct {
		name  string
		value uint64
	}{
		{"nsets", numSets},
		{"bsize", blockSize},
		{"assoc", assoc},
		{"address size", addressSize},
		{"bytes per word", bytesPerWord},
	}

	for _, p := range params {
		if !isPowerOfTwo(p.value) {
			return Geometry{}, fmt.Errorf(
				"%w: %s must be a power of 2, got %d",
				ErrInvalidGeometry, p.name, p.value)
		}
	}

	if blockSize < bytesPerWord {
		return Geometry{}, fmt.Errorf(
			"%w: bsize (%d) must not be smaller than the word size (%d)",
			ErrInvalidGeometry, blockSize, bytesPerWord)
	}

	if addressSize > 64 {
		return Geometry{}, fmt.Errorf(
			"%w: address size must be at most 64 bits, got %d",
			ErrInvalidGeometry, addressSize)
	}

	g := Geometry{
		NumSets:       numSets,
		BlockSize:     blockSize,
		Assoc:         assoc,
		AddressSize:   addressSize,
		BytesPerWord:  bytesPerWord,
		ByteAddressed: byteAddressed,
	}

	if byteAddressed {
		g.OffsetSize = log2(blockSize)
	} else {
		g.OffsetSize = log2(blockSize / bytesPerWord)
	}

	g.IndexSize = log2(numSets)

	if uint64(g.IndexSize+g.OffsetSize) > addressSize {
		return Geometry{}, fmt.Errorf(
			"%w: %d index bits and %d offset bits do not fit in a %d-bit address",
			ErrInvalidGeometry, g.IndexSize, g.OffsetSize, addressSize)
	}

	g.TagSize = uint(addressSize) - g.IndexSize - g.OffsetSize

	return g, nil
}

func isPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

func log2(v uint64) uint {
	return uint(bits.TrailingZeros64(v))
}

// mask returns a value with the n lowest bits set.
func mask(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << n) - 1
}

// TagOf returns the bits above the index and offset fields.
func (g Geometry) TagOf(address uint64) uint64 {
	shift := g.IndexSize + g.OffsetSize
	if shift >= 64 {
		return 0
	}

	return address >> shift
}

// IndexOf returns the set that the address maps to.
func (g Geometry) IndexOf(address uint64) uint64 {
	if g.OffsetSize >= 64 {
		return 0
	}

	return (address >> g.OffsetSize) & mask(g.IndexSize)
}

// OffsetOf returns the position of the address inside its block, in bytes
// or in words depending on the addressing mode.
func (g Geometry) OffsetOf(address uint64) uint64 {
	if g.OffsetSize == 0 {
		return 0
	}

	return address & mask(g.OffsetSize)
}

// BlockAddress clears the offset bits of the address.
func (g Geometry) BlockAddress(address uint64) uint64 {
	return address &^ mask(g.OffsetSize)
}

// Compose rebuilds an address from its fields.
func (g Geometry) Compose(tag, index, offset uint64) uint64 {
	var address uint64

	shift := g.IndexSize + g.OffsetSize
	if shift < 64 {
		address = tag << shift
	}

	if g.OffsetSize < 64 {
		address |= (index & mask(g.IndexSize)) << g.OffsetSize
	}

	return address | (offset & mask(g.OffsetSize))
}

// UnitSize is the number of bytes in one fill unit.
func (g Geometry) UnitSize() uint64 {
	if g.ByteAddressed {
		return 1
	}

	return g.BytesPerWord
}

// FillUnits is the number of backing store reads needed to fill one block.
func (g Geometry) FillUnits() uint64 {
	return g.BlockSize / g.UnitSize()
}

// Capacity returns the number of data bytes the cache can hold.
func (g Geometry) Capacity() uint64 {
	return g.NumSets * g.Assoc * g.BlockSize
}
