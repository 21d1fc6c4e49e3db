package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	"github.com/gorilla/mux"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oniononion36/pytorch/savedhooks"
)

func sampleState(name string) *savedhooks.State {
	return savedhooks.NewState(name, savedhooks.NewReadiness())
}

func samplePair() savedhooks.Pair {
	return savedhooks.Pair{
		Pack:   func(v any) any { return v },
		Unpack: func(p any) any { return p },
	}
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
	)

	BeforeEach(func() {
		m = &Monitor{}
	})

	It("should register states", func() {
		m.RegisterState(sampleState("Worker1"))
		m.RegisterState(sampleState("Worker2"))

		Expect(m.states).To(HaveLen(2))
	})

	It("should refuse privileged port numbers", func() {
		m.WithPortNumber(80)

		Expect(m.portNumber).To(Equal(0))
	})

	It("should list registered states", func() {
		m.RegisterState(sampleState("Worker1"))
		m.RegisterState(sampleState("Worker2"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/states", nil)

		m.listStates(w, r)

		Expect(w.Body.String()).To(Equal(`["Worker1","Worker2"]`))
	})

	It("should report a state summary", func() {
		state := sampleState("Worker1")
		Expect(state.Push(samplePair())).To(Succeed())
		m.RegisterState(state)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/state/Worker1", nil)
		r = mux.SetURLVars(r, map[string]string{"name": "Worker1"})

		m.stateSummary(w, r)

		rsp := stateRsp{}
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Name).To(Equal("Worker1"))
		Expect(rsp.Depth).To(Equal(1))
		Expect(rsp.Enabled).To(BeTrue())
		Expect(rsp.Tracing).To(BeFalse())
	})

	It("should report 404 for an unknown state", func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/state/NoSuchWorker", nil)
		r = mux.SetURLVars(r, map[string]string{"name": "NoSuchWorker"})

		m.stateSummary(w, r)

		Expect(w.Code).To(Equal(404))
	})
})
