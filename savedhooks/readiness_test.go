package savedhooks

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Readiness", func() {
	var readiness *Readiness

	BeforeEach(func() {
		readiness = NewReadiness()
	})

	It("should start unmarked", func() {
		Expect(readiness.Ready()).To(BeFalse())
	})

	It("should stay marked once marked", func() {
		readiness.Mark()
		readiness.Mark()

		Expect(readiness.Ready()).To(BeTrue())
	})

	It("should support concurrent marking and reading", func() {
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				readiness.Mark()
				Expect(readiness.Ready()).To(BeTrue())
			}()
		}
		wg.Wait()

		Expect(readiness.Ready()).To(BeTrue())
	})

	It("should gate lookups of all states sharing it", func() {
		state1 := NewState("Worker1", readiness)
		state2 := NewState("Worker2", readiness)

		Expect(state1.Push(taggedPair("a"))).To(Succeed())

		Expect(readiness.Ready()).To(BeTrue())
		_, ok := state2.Current()
		Expect(ok).To(BeFalse())
	})
})
