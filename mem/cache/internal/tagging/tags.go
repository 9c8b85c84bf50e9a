// Package tagging keeps track of what is stored in the lines of a cache.
package tagging

// A Line is a slot in a cache. Its block always holds BlockSize bytes.
type Line struct {
	IsValid bool
	Tag     uint64
	Block   []byte
}

// A Set is a list of lines where a certain piece of memory can be stored at.
type Set struct {
	Lines []Line
}

// TagArray holds NumSets sets of NumWays lines each.
type TagArray interface {
	Lookup(setID int, tag uint64) (wayID int, found bool)
	FindEmpty(setID int) (wayID int, found bool)
	Update(setID, wayID int, line Line)
	Line(setID, wayID int) *Line
	GetSet(setID int) *Set
	TotalSize() uint64
	Reset()
}

// NewTagArray creates a tag array with all the lines invalid and all the
// blocks zeroed.
func NewTagArray(numSets, numWays, blockSize int) TagArray {
	t := &tagArrayImpl{
		NumSets:   numSets,
		NumWays:   numWays,
		BlockSize: blockSize,
	}

	t.Reset()

	return t
}

type tagArrayImpl struct {
	NumSets   int
	NumWays   int
	BlockSize int
	Sets      []Set
}

// TotalSize returns the maximum number of bytes can be stored in the cache
func (t *tagArrayImpl) TotalSize() uint64 {
	return uint64(t.NumSets) * uint64(t.NumWays) * uint64(t.BlockSize)
}

func (t *tagArrayImpl) GetSet(setID int) *Set {
	return &t.Sets[setID]
}

func (t *tagArrayImpl) Line(setID, wayID int) *Line {
	return &t.Sets[setID].Lines[wayID]
}

// Lookup scans the ways of a set in order and returns the first valid line
// that carries the tag.
func (t *tagArrayImpl) Lookup(setID int, tag uint64) (int, bool) {
	for wayID, line := range t.Sets[setID].Lines {
		if line.IsValid && line.Tag == tag {
			return wayID, true
		}
	}

	return 0, false
}

// FindEmpty returns the first invalid way of a set.
func (t *tagArrayImpl) FindEmpty(setID int) (int, bool) {
	for wayID, line := range t.Sets[setID].Lines {
		if !line.IsValid {
			return wayID, true
		}
	}

	return 0, false
}

// Update overwrites a line in place. The block is copied into the existing
// storage of the line so that the block length never changes.
func (t *tagArrayImpl) Update(setID, wayID int, line Line) {
	dst := &t.Sets[setID].Lines[wayID]

	dst.IsValid = line.IsValid
	dst.Tag = line.Tag

	n := copy(dst.Block, line.Block)
	clear(dst.Block[n:])
}

// Reset marks all the lines invalid.
func (t *tagArrayImpl) Reset() {
	t.Sets = make([]Set, t.NumSets)
	for i := range t.Sets {
		t.Sets[i].Lines = make([]Line, t.NumWays)
		for j := range t.Sets[i].Lines {
			t.Sets[i].Lines[j].Block = make([]byte, t.BlockSize)
		}
	}
}
