package mem

// StorageMemory exposes a Storage as the main memory at the bottom of a
// cache hierarchy.
//
// Addresses are expressed in fill units. With a unit size of 1 every address
// names a byte. With a larger unit size every address names a word, and Read
// returns the unitSize bytes of that word.
type StorageMemory struct {
	storage  *Storage
	unitSize uint64
}

// NewStorageMemory wraps the storage. The unit size must be positive.
func NewStorageMemory(storage *Storage, unitSize uint64) *StorageMemory {
	if unitSize == 0 {
		panic("unit size must be positive")
	}

	return &StorageMemory{
		storage:  storage,
		unitSize: unitSize,
	}
}

// UnitSize returns the number of bytes returned by each Read.
func (m *StorageMemory) UnitSize() uint64 {
	return m.unitSize
}

// Capacity returns the number of bytes of the underlying storage.
func (m *StorageMemory) Capacity() uint64 {
	return m.storage.Capacity()
}

// Read returns the fill unit at address. Addresses beyond the capacity of
// the storage read as zero.
func (m *StorageMemory) Read(address uint64) []byte {
	data, err := m.storage.Read(address*m.unitSize, m.unitSize)
	if err != nil {
		return make([]byte, m.unitSize)
	}

	return data
}

// Write stores a single byte at the given byte address. Writes beyond the
// capacity of the storage are dropped.
func (m *StorageMemory) Write(value byte, address uint64) {
	_ = m.storage.Write(address, []byte{value})
}
