// Package mem defines the contract between a cache and the level of memory
// below it, together with a simple main memory model.
package mem

// KB is the number of bytes in a kilobyte.
const KB uint64 = 1 << 10

// Memory is any level of the memory hierarchy that a cache can fetch from.
//
// Read returns one fill unit of data located at address. A fill unit is a
// single byte for byte-addressed memories and a whole word for
// word-addressed ones. Write stores a single byte. Caches implement Memory
// too, so that one cache can serve as the backing store of another.
type Memory interface {
	Read(address uint64) []byte
	Write(value byte, address uint64)
}
