package mem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Storage", func() {
	It("should read and write in single unit", func() {
		storage := NewStorage(4 * KB)
		Expect(storage.Write(0, []byte{1, 2, 3, 4})).To(Succeed())

		res, err := storage.Read(0, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]byte{1, 2}))

		res, _ = storage.Read(1, 2)
		Expect(res).To(Equal([]byte{2, 3}))
	})

	It("should read and write across units", func() {
		storage := NewStorage(8 * KB)
		Expect(storage.Write(4094, []byte{1, 2, 3, 4})).To(Succeed())

		res, err := storage.Read(4094, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should read untouched memory as zero", func() {
		storage := NewStorage(4 * KB)

		res, err := storage.Read(100, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal([]byte{0, 0, 0}))
	})

	It("should return error if accessing over the capacity", func() {
		storage := NewStorage(4 * KB)

		err := storage.Write(4097, []byte{1})
		Expect(err).To(MatchError(ErrAddressOutOfRange))

		_, err = storage.Read(4096, 1)
		Expect(err).To(MatchError(ErrAddressOutOfRange))
	})
})

var _ = Describe("StorageMemory", func() {
	var storage *Storage

	BeforeEach(func() {
		storage = NewStorage(4 * KB)
		Expect(storage.Write(0, []byte{1, 2, 3, 4, 5, 6, 7, 8})).To(Succeed())
	})

	It("should read one byte per address in byte mode", func() {
		m := NewStorageMemory(storage, 1)

		Expect(m.Read(0)).To(Equal([]byte{1}))
		Expect(m.Read(5)).To(Equal([]byte{6}))
	})

	It("should read one word per address in word mode", func() {
		m := NewStorageMemory(storage, 4)

		Expect(m.UnitSize()).To(Equal(uint64(4)))
		Expect(m.Capacity()).To(Equal(4 * KB))
		Expect(m.Read(0)).To(Equal([]byte{1, 2, 3, 4}))
		Expect(m.Read(1)).To(Equal([]byte{5, 6, 7, 8}))
	})

	It("should read zeros beyond capacity", func() {
		m := NewStorageMemory(storage, 4)

		Expect(m.Read(2048)).To(Equal([]byte{0, 0, 0, 0}))
	})

	It("should write a byte", func() {
		m := NewStorageMemory(storage, 1)

		m.Write(42, 3)

		Expect(m.Read(3)).To(Equal([]byte{42}))
	})

	It("should panic on a zero unit size", func() {
		Expect(func() { NewStorageMemory(storage, 0) }).To(Panic())
	})
})
