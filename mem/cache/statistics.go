package cache

import "fmt"

// MissKind classifies why a read missed.
type MissKind int

// The kinds of misses.
const (
	MissCompulsory MissKind = iota
	MissConflict
	MissCapacity
)

func (k MissKind) String() string {
	switch k {
	case MissCompulsory:
		return "compulsory"
	case MissConflict:
		return "conflict"
	case MissCapacity:
		return "capacity"
	default:
		return fmt.Sprintf("MissKind(%d)", int(k))
	}
}

// Statistics counts the outcome of every read served by a cache. Rates are
// derived on demand.
type Statistics struct {
	Hits             uint64
	CompulsoryMisses uint64
	ConflictMisses   uint64
	CapacityMisses   uint64
}

// RecordHit counts a hit.
func (s *Statistics) RecordHit() {
	s.Hits++
}

// RecordMiss counts a miss of the given kind.
func (s *Statistics) RecordMiss(kind MissKind) {
	switch kind {
	case MissCompulsory:
		s.CompulsoryMisses++
	case MissConflict:
		s.ConflictMisses++
	case MissCapacity:
		s.CapacityMisses++
	default:
		panic(fmt.Sprintf("unknown miss kind %d", int(kind)))
	}
}

// Misses returns the number of misses of all kinds.
func (s Statistics) Misses() uint64 {
	return s.CompulsoryMisses + s.ConflictMisses + s.CapacityMisses
}

// TotalAccesses returns the number of reads recorded.
func (s Statistics) TotalAccesses() uint64 {
	return s.Hits + s.Misses()
}

// HitRate is hits over total accesses, or 0 before the first access.
func (s Statistics) HitRate() float64 {
	return ratio(s.Hits, s.TotalAccesses())
}

// MissRate is misses over total accesses, or 0 before the first access.
func (s Statistics) MissRate() float64 {
	return ratio(s.Misses(), s.TotalAccesses())
}

// MissRateOf returns the share of misses that are of the given kind, or 0
// before the first miss.
func (s Statistics) MissRateOf(kind MissKind) float64 {
	switch kind {
	case MissCompulsory:
		return ratio(s.CompulsoryMisses, s.Misses())
	case MissConflict:
		return ratio(s.ConflictMisses, s.Misses())
	case MissCapacity:
		return ratio(s.CapacityMisses, s.Misses())
	default:
		return 0
	}
}

// CompulsoryRate is the share of misses that were compulsory.
func (s Statistics) CompulsoryRate() float64 {
	return s.MissRateOf(MissCompulsory)
}

// ConflictRate is the share of misses that were conflict misses.
func (s Statistics) ConflictRate() float64 {
	return s.MissRateOf(MissConflict)
}

// CapacityRate is the share of misses that were capacity misses.
func (s Statistics) CapacityRate() float64 {
	return s.MissRateOf(MissCapacity)
}

func ratio(num, den uint64) float64 {
	if den == 0 {
		return 0
	}

	return float64(num) / float64(den)
}
