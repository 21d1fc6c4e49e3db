package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingHook struct {
	invoked int
	lastCtx HookCtx
}

func (h *countingHook) Func(ctx HookCtx) {
	h.invoked++
	h.lastCtx = ctx
}

var _ = Describe("HookableBase", func() {
	var (
		hookable *HookableBase
	)

	BeforeEach(func() {
		hookable = &HookableBase{}
	})

	It("should register hooks", func() {
		h := &countingHook{}

		hookable.AcceptHook(h)

		Expect(hookable.NumHooks()).To(Equal(1))
		Expect(hookable.Hooks()).To(ContainElement(h))
	})

	It("should refuse a duplicated hook", func() {
		h := &countingHook{}
		hookable.AcceptHook(h)

		Expect(func() {
			hookable.AcceptHook(h)
		}).To(Panic())
	})

	It("should invoke all registered hooks", func() {
		h1 := &countingHook{}
		h2 := &countingHook{}
		hookable.AcceptHook(h1)
		hookable.AcceptHook(h2)

		pos := &HookPos{Name: "Sample"}
		hookable.InvokeHook(HookCtx{Pos: pos, Item: 42})

		Expect(h1.invoked).To(Equal(1))
		Expect(h2.invoked).To(Equal(1))
		Expect(h1.lastCtx.Pos).To(BeIdenticalTo(pos))
		Expect(h2.lastCtx.Item).To(Equal(42))
	})
})
