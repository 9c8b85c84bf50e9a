// Package cache provides a set-associative cache model that classifies every
// read as a hit or as a compulsory, conflict or capacity miss.
package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/mem/mem"
)

// A Comp implements a cache.
//
// Reads are served synchronously. On a miss the whole block is fetched from
// the lower level before Read returns. Writes are accepted and ignored.
type Comp struct {
	HookableBase

	name         string
	geometry     Geometry
	tags         tagging.TagArray
	victimFinder tagging.VictimFinder
	lower        mem.Memory
	stats        Statistics

	// filledBytes counts the bytes placed into empty lines. Once it reaches
	// the capacity of the cache every eviction is a capacity miss.
	filledBytes uint64
}

// Name returns the name of the cache.
func (c *Comp) Name() string {
	return c.name
}

// Geometry returns the shape of the cache.
func (c *Comp) Geometry() Geometry {
	return c.geometry
}

// Stats returns a snapshot of the access statistics.
func (c *Comp) Stats() Statistics {
	return c.stats
}

// ResetStats clears the access statistics, keeping the cached data.
func (c *Comp) ResetStats() {
	c.stats = Statistics{}
}

// FilledBytes returns the fullness watermark.
func (c *Comp) FilledBytes() uint64 {
	return c.filledBytes
}

// Capacity returns the number of data bytes the cache can hold.
func (c *Comp) Capacity() uint64 {
	return c.tags.TotalSize()
}

// Reset invalidates every line and clears the statistics and the watermark.
func (c *Comp) Reset() {
	c.tags.Reset()
	c.stats = Statistics{}
	c.filledBytes = 0
}

// Read returns the byte (byte-addressed) or the word (word-addressed) at
// the address.
func (c *Comp) Read(address uint64) []byte {
	setID := int(c.geometry.IndexOf(address))
	tag := c.geometry.TagOf(address)

	info := AccessInfo{
		Address: address,
		SetID:   setID,
		Tag:     tag,
	}

	wayID, hit := c.tags.Lookup(setID, tag)
	if hit {
		c.stats.RecordHit()
		info.Hit = true
	} else {
		wayID, info.Kind = c.handleReadMiss(address, setID, tag)
		c.stats.RecordMiss(info.Kind)
	}

	info.WayID = wayID
	c.traceAccess(info)

	return c.extract(c.tags.Line(setID, wayID), address)
}

// Write is not modelled.
func (c *Comp) Write(value byte, address uint64) {
}

func (c *Comp) handleReadMiss(
	address uint64,
	setID int,
	tag uint64,
) (wayID int, kind MissKind) {
	line := c.fetchLine(address, tag)
	wayID, kind = c.findWay(setID)
	c.tags.Update(setID, wayID, line)

	return wayID, kind
}

// fetchLine reads the block holding the address from the lower level, one
// fill unit at a time in increasing address order.
func (c *Comp) fetchLine(address uint64, tag uint64) tagging.Line {
	blockAddr := c.geometry.BlockAddress(address)
	block := make([]byte, 0, c.geometry.BlockSize)

	for i := uint64(0); i < c.geometry.FillUnits(); i++ {
		block = append(block, c.lower.Read(blockAddr+i)...)
	}

	return tagging.Line{
		IsValid: true,
		Tag:     tag,
		Block:   block,
	}
}

func (c *Comp) findWay(setID int) (int, MissKind) {
	if wayID, ok := c.tags.FindEmpty(setID); ok {
		c.filledBytes = min(c.filledBytes+c.geometry.BlockSize, c.Capacity())
		return wayID, MissCompulsory
	}

	wayID := c.victimFinder.FindVictim(c.tags.GetSet(setID))
	if wayID < 0 || uint64(wayID) >= c.geometry.Assoc {
		panic(fmt.Sprintf("victim finder returned way %d of a %d-way set",
			wayID, c.geometry.Assoc))
	}

	if c.filledBytes >= c.Capacity() {
		return wayID, MissCapacity
	}

	return wayID, MissConflict
}

func (c *Comp) extract(line *tagging.Line, address uint64) []byte {
	unitSize := c.geometry.UnitSize()
	start := c.geometry.OffsetOf(address) * unitSize

	data := make([]byte, unitSize)
	copy(data, line.Block[start:start+unitSize])

	return data
}
