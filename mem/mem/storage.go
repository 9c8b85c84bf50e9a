package mem

import (
	"errors"
)

// ErrAddressOutOfRange is returned when an access falls beyond the capacity
// of a storage.
var ErrAddressOutOfRange = errors.New(
	"accessing physical address beyond the storage capacity")

// A Storage keeps the data of the simulated system.
//
// The storage manages its data in units, similar to pages. Memory for a unit
// is only allocated once a Read or a Write touches it.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage object with the specified capacity.
func NewStorage(capacity uint64) *Storage {
	s := new(Storage)

	s.unitSize = 4 * KB
	s.capacity = capacity
	s.data = make(map[uint64][]byte)

	return s
}

// Capacity returns the number of bytes the storage can hold.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) createOrGetUnit(address uint64) ([]byte, error) {
	if address >= s.capacity {
		return nil, ErrAddressOutOfRange
	}

	baseAddr, _ := s.parseAddress(address)

	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit, nil
}

func (s *Storage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr

	return
}

// Read returns length bytes starting at address.
func (s *Storage) Read(address uint64, length uint64) ([]byte, error) {
	res := make([]byte, length)
	currAddr := address
	dataOffset := uint64(0)

	for dataOffset < length {
		unit, err := s.createOrGetUnit(currAddr)
		if err != nil {
			return nil, err
		}

		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		lenToRead := min(length-dataOffset, baseAddr+s.unitSize-currAddr)

		copy(res[dataOffset:dataOffset+lenToRead],
			unit[inUnitAddr:inUnitAddr+lenToRead])

		dataOffset += lenToRead
		currAddr += lenToRead
	}

	return res, nil
}

// Write stores data starting at address.
func (s *Storage) Write(address uint64, data []byte) error {
	currAddr := address
	dataOffset := uint64(0)

	for dataOffset < uint64(len(data)) {
		unit, err := s.createOrGetUnit(currAddr)
		if err != nil {
			return err
		}

		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		lenToWrite := min(
			uint64(len(data))-dataOffset,
			baseAddr+s.unitSize-currAddr,
		)

		copy(unit[inUnitAddr:inUnitAddr+lenToWrite],
			data[dataOffset:dataOffset+lenToWrite])

		dataOffset += lenToWrite
		currAddr += lenToWrite
	}

	return nil
}
