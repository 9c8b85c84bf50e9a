package trace

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// AddressSize is the number of bytes of each record in a trace file.
const AddressSize = 4

// A Reader reads addresses from a trace file, a flat sequence of 4-byte
// big-endian unsigned integers. A short final record ends the trace.
type Reader struct {
	r   io.Reader
	buf [AddressSize]byte
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next returns the next address. It returns io.EOF at the end of the trace.
func (r *Reader) Next() (uint64, error) {
	_, err := io.ReadFull(r.r, r.buf[:])
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, io.EOF
	}

	if err != nil {
		return 0, err
	}

	return uint64(binary.BigEndian.Uint32(r.buf[:])), nil
}

// ReadAll returns every address left in r.
func ReadAll(r io.Reader) ([]uint64, error) {
	reader := NewReader(r)
	addresses := []uint64{}

	for {
		address, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return addresses, nil
		}

		if err != nil {
			return nil, err
		}

		addresses = append(addresses, address)
	}
}

// ReadFile returns every address of the trace file at path.
func ReadFile(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadAll(f)
}
