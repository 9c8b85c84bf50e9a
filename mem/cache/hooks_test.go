package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type labelledHook struct {
	labels []string
}

func (h labelledHook) Func(ctx HookCtx) {}

var _ = Describe("HookableBase", func() {
	var h *HookableBase

	BeforeEach(func() {
		h = &HookableBase{}
	})

	It("should panic when the same hook is added twice", func() {
		hook := &recordingHook{}
		h.AcceptHook(hook)

		Expect(func() { h.AcceptHook(hook) }).To(PanicWith("duplicated hook"))
	})

	It("should accept distinct hooks of the same type", func() {
		h.AcceptHook(&recordingHook{})
		h.AcceptHook(&recordingHook{})

		Expect(h.NumHooks()).To(Equal(2))
	})

	It("should accept hooks of a non-comparable type", func() {
		hook := labelledHook{labels: []string{"Access"}}

		Expect(func() {
			h.AcceptHook(hook)
			h.AcceptHook(hook)
		}).NotTo(Panic())
		Expect(h.NumHooks()).To(Equal(2))
	})

	It("should invoke hooks in registration order", func() {
		first := &recordingHook{}
		second := &recordingHook{}
		h.AcceptHook(first)
		h.AcceptHook(second)

		h.InvokeHook(HookCtx{Pos: HookPosAccess, Item: AccessInfo{Address: 4}})

		Expect(first.accesses).To(HaveLen(1))
		Expect(second.accesses).To(HaveLen(1))
		Expect(h.Hooks()).To(Equal([]Hook{first, second}))
	})
})
