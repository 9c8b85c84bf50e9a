package cache

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Geometry", func() {
	It("should derive field widths in byte mode", func() {
		g, err := NewGeometry(32, 4, 1, 32, 4, true)

		Expect(err).NotTo(HaveOccurred())
		Expect(g.OffsetSize).To(Equal(uint(2)))
		Expect(g.IndexSize).To(Equal(uint(5)))
		Expect(g.TagSize).To(Equal(uint(25)))
		Expect(g.FillUnits()).To(Equal(uint64(4)))
		Expect(g.UnitSize()).To(Equal(uint64(1)))
		Expect(g.Capacity()).To(Equal(uint64(128)))
	})

	It("should derive field widths in word mode", func() {
		g, err := NewGeometry(16, 8, 2, 32, 4, false)

		Expect(err).NotTo(HaveOccurred())
		Expect(g.OffsetSize).To(Equal(uint(1)))
		Expect(g.IndexSize).To(Equal(uint(4)))
		Expect(g.TagSize).To(Equal(uint(27)))
		Expect(g.FillUnits()).To(Equal(uint64(2)))
		Expect(g.UnitSize()).To(Equal(uint64(4)))
	})

	It("should split addresses", func() {
		g, _ := NewGeometry(32, 4, 1, 32, 4, true)

		Expect(g.TagOf(268)).To(Equal(uint64(2)))
		Expect(g.IndexOf(268)).To(Equal(uint64(3)))
		Expect(g.OffsetOf(268)).To(Equal(uint64(0)))

		Expect(g.TagOf(15)).To(Equal(uint64(0)))
		Expect(g.IndexOf(15)).To(Equal(uint64(3)))
		Expect(g.OffsetOf(15)).To(Equal(uint64(3)))
		Expect(g.BlockAddress(15)).To(Equal(uint64(12)))
	})

	It("should return a zero offset when a block is one word", func() {
		g, err := NewGeometry(8, 4, 2, 32, 4, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.OffsetSize).To(Equal(uint(0)))

		rng := rand.New(rand.NewPCG(1, 2))
		for i := 0; i < 1000; i++ {
			Expect(g.OffsetOf(uint64(rng.Uint32()))).To(Equal(uint64(0)))
		}
	})

	DescribeTable("should partition the bits of any address",
		func(nsets, bsize, assoc, addressSize, bpw uint64, byteAddressed bool) {
			g, err := NewGeometry(nsets, bsize, assoc, addressSize, bpw, byteAddressed)
			Expect(err).NotTo(HaveOccurred())
			Expect(uint64(g.TagSize + g.IndexSize + g.OffsetSize)).
				To(Equal(addressSize))

			rng := rand.New(rand.NewPCG(addressSize, nsets))
			for i := 0; i < 1000; i++ {
				address := rng.Uint64() & mask(uint(addressSize))

				tag := g.TagOf(address)
				index := g.IndexOf(address)
				offset := g.OffsetOf(address)

				Expect(index).To(BeNumerically("<", nsets))
				Expect(g.Compose(tag, index, offset)).To(Equal(address))
			}
		},
		Entry("direct mapped", uint64(32), uint64(4), uint64(1), uint64(32), uint64(4), true),
		Entry("set associative", uint64(256), uint64(64), uint64(8), uint64(32), uint64(4), true),
		Entry("single set", uint64(1), uint64(16), uint64(4), uint64(16), uint64(4), true),
		Entry("word addressed", uint64(64), uint64(32), uint64(2), uint64(32), uint64(8), false),
		Entry("one-word blocks", uint64(64), uint64(8), uint64(2), uint64(32), uint64(8), false),
		Entry("64-bit addresses", uint64(1024), uint64(128), uint64(4), uint64(64), uint64(8), true),
		Entry("no tag bits", uint64(16), uint64(16), uint64(1), uint64(8), uint64(1), true),
	)

	DescribeTable("should reject invalid configurations",
		func(nsets, bsize, assoc, addressSize, bpw uint64, byteAddressed bool) {
			_, err := NewGeometry(nsets, bsize, assoc, addressSize, bpw, byteAddressed)

			Expect(err).To(MatchError(ErrInvalidGeometry))
		},
		Entry("nsets not a power of 2", uint64(3), uint64(4), uint64(1), uint64(32), uint64(4), true),
		Entry("zero nsets", uint64(0), uint64(4), uint64(1), uint64(32), uint64(4), true),
		Entry("bsize not a power of 2", uint64(32), uint64(6), uint64(1), uint64(32), uint64(4), true),
		Entry("assoc not a power of 2", uint64(32), uint64(4), uint64(3), uint64(32), uint64(4), true),
		Entry("address size not a power of 2", uint64(32), uint64(4), uint64(1), uint64(24), uint64(4), true),
		Entry("word size not a power of 2", uint64(32), uint64(8), uint64(1), uint64(32), uint64(3), true),
		Entry("block smaller than a word", uint64(32), uint64(2), uint64(1), uint64(32), uint64(4), true),
		Entry("address wider than 64 bits", uint64(32), uint64(4), uint64(1), uint64(128), uint64(4), true),
		Entry("no room for a tag", uint64(1024), uint64(64), uint64(1), uint64(8), uint64(4), true),
	)
})
