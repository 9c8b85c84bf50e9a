package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Statistics", func() {
	var stats Statistics

	BeforeEach(func() {
		stats = Statistics{}
	})

	It("should report zero rates before any access", func() {
		Expect(stats.TotalAccesses()).To(BeZero())
		Expect(stats.HitRate()).To(BeZero())
		Expect(stats.MissRate()).To(BeZero())
		Expect(stats.CompulsoryRate()).To(BeZero())
		Expect(stats.ConflictRate()).To(BeZero())
		Expect(stats.CapacityRate()).To(BeZero())
	})

	It("should report zero miss shares when every access hits", func() {
		stats.RecordHit()
		stats.RecordHit()

		Expect(stats.HitRate()).To(Equal(1.0))
		Expect(stats.MissRate()).To(BeZero())
		Expect(stats.CompulsoryRate()).To(BeZero())
	})

	It("should count misses by kind", func() {
		stats.RecordHit()
		stats.RecordMiss(MissCompulsory)
		stats.RecordMiss(MissConflict)
		stats.RecordMiss(MissConflict)
		stats.RecordMiss(MissCapacity)

		Expect(stats.Misses()).To(Equal(uint64(4)))
		Expect(stats.TotalAccesses()).To(Equal(uint64(5)))
		Expect(stats.HitRate()).To(BeNumerically("~", 0.2))
		Expect(stats.MissRate()).To(BeNumerically("~", 0.8))
		Expect(stats.CompulsoryRate()).To(BeNumerically("~", 0.25))
		Expect(stats.ConflictRate()).To(BeNumerically("~", 0.5))
		Expect(stats.CapacityRate()).To(BeNumerically("~", 0.25))
		Expect(stats.MissRateOf(MissKind(9))).To(BeZero())
	})

	It("should panic on an unknown miss kind", func() {
		Expect(func() { stats.RecordMiss(MissKind(9)) }).To(Panic())
	})

	It("should name miss kinds", func() {
		Expect(MissCompulsory.String()).To(Equal("compulsory"))
		Expect(MissConflict.String()).To(Equal("conflict"))
		Expect(MissCapacity.String()).To(Equal("capacity"))
		Expect(MissKind(7).String()).To(Equal("MissKind(7)"))
	})
})
