package cache

import (
	"errors"
	"fmt"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/mem/mem"
)

// ErrUnsupportedPolicy is returned when a replacement strategy is requested
// that the cache does not implement.
var ErrUnsupportedPolicy = errors.New("replacement policy is not implemented")

// ErrNoBackingStore is returned when building a cache without a lower level.
var ErrNoBackingStore = errors.New("cache requires a backing store")

// Builder can build caches.
type Builder struct {
	numSets         uint64
	blockSize       uint64
	assoc           uint64
	addressSize     uint64
	bytesPerWord    uint64
	byteAddressed   bool
	replaceStrategy string
	seed            uint64
	victimFinder    tagging.VictimFinder
	lower           mem.Memory
}

// MakeBuilder creates a new builder with a 32-set, 4-byte-block,
// direct-mapped, byte-addressed cache over 32-bit addresses.
func MakeBuilder() Builder {
	return Builder{
		numSets:         32,
		blockSize:       4,
		assoc:           1,
		addressSize:     32,
		bytesPerWord:    4,
		byteAddressed:   true,
		replaceStrategy: "random",
	}
}

// WithNumSets sets the number of sets.
func (b Builder) WithNumSets(numSets uint64) Builder {
	b.numSets = numSets
	return b
}

// WithBlockSize sets the number of bytes in a block.
func (b Builder) WithBlockSize(blockSize uint64) Builder {
	b.blockSize = blockSize
	return b
}

// WithWayAssociativity sets the number of ways in each set.
func (b Builder) WithWayAssociativity(assoc uint64) Builder {
	b.assoc = assoc
	return b
}

// WithAddressSize sets the number of bits in an address.
func (b Builder) WithAddressSize(addressSize uint64) Builder {
	b.addressSize = addressSize
	return b
}

// WithByteAddressed selects whether addresses name bytes or words.
func (b Builder) WithByteAddressed(byteAddressed bool) Builder {
	b.byteAddressed = byteAddressed
	return b
}

// WithBytesPerWord sets the word size.
func (b Builder) WithBytesPerWord(bytesPerWord uint64) Builder {
	b.bytesPerWord = bytesPerWord
	return b
}

// WithReplaceStrategy sets the replacement policy. Only "random" is
// supported.
func (b Builder) WithReplaceStrategy(strategy string) Builder {
	b.replaceStrategy = strategy
	return b
}

// WithSeed seeds the random replacement policy. Zero means a time-based seed.
func (b Builder) WithSeed(seed uint64) Builder {
	b.seed = seed
	return b
}

// WithVictimFinder replaces the victim finder selected by the replacement
// strategy.
func (b Builder) WithVictimFinder(victimFinder tagging.VictimFinder) Builder {
	b.victimFinder = victimFinder
	return b
}

// WithBackingStore sets the lower level that misses are served from.
func (b Builder) WithBackingStore(lower mem.Memory) Builder {
	b.lower = lower
	return b
}

// Build builds a cache.
func (b Builder) Build(name string) (*Comp, error) {
	geometry, err := NewGeometry(
		b.numSets, b.blockSize, b.assoc,
		b.addressSize, b.bytesPerWord, b.byteAddressed,
	)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}

	if b.lower == nil {
		return nil, fmt.Errorf("building %s: %w", name, ErrNoBackingStore)
	}

	victimFinder, err := b.createVictimFinder()
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}

	c := &Comp{
		name:     name,
		geometry: geometry,
		tags: tagging.NewTagArray(
			int(geometry.NumSets),
			int(geometry.Assoc),
			int(geometry.BlockSize),
		),
		victimFinder: victimFinder,
		lower:        b.lower,
	}

	return c, nil
}

func (b Builder) createVictimFinder() (tagging.VictimFinder, error) {
	if b.victimFinder != nil {
		return b.victimFinder, nil
	}

	switch b.replaceStrategy {
	case "random":
		return tagging.NewRandomVictimFinder(b.seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPolicy, b.replaceStrategy)
	}
}
