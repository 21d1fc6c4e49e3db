// Package monitoring turns a set of hook-stack states into a web server
// so that their live status can be inspected from outside the process.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/oniononion36/pytorch/savedhooks"
)

// Monitor serves the status of registered hook-stack states over HTTP.
// States must be registered before the server starts. The monitor only
// reports point-in-time values and never mutates a state.
type Monitor struct {
	portNumber int
	url        string

	states []*savedhooks.State
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterState registers a hook-stack state to be monitored.
func (m *Monitor) RegisterState(s *savedhooks.State) {
	m.states = append(m.states, s)
}

// StartServer starts the monitor as a web server.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/states", m.listStates)
	r.HandleFunc("/api/state/{name}", m.stateSummary)
	r.HandleFunc("/api/state/{name}/details", m.stateDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring saved-value hooks with %s\n", m.url)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the monitor's address in the system browser. It
// can only be called after StartServer.
func (m *Monitor) OpenDashboard() {
	if m.url == "" {
		panic("the monitoring server is not started yet")
	}

	err := browser.OpenURL(m.url)
	dieOnErr(err)
}

func (m *Monitor) listStates(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, s := range m.states {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "%q", s.Name())
	}
	fmt.Fprint(w, "]")
}

type stateRsp struct {
	Name    string `json:"name"`
	Depth   int    `json:"depth"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason"`
	Tracing bool   `json:"tracing"`
}

func (m *Monitor) stateSummary(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	state := m.findStateOr404(w, name)
	if state == nil {
		return
	}

	reason, _ := state.DisabledReason()
	rsp := stateRsp{
		Name:    state.Name(),
		Depth:   state.Depth(),
		Enabled: state.IsEnabled(),
		Reason:  reason,
		Tracing: state.IsTracing(),
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) stateDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	state := m.findStateOr404(w, name)
	if state == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(state)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findStateOr404(
	w http.ResponseWriter,
	name string,
) *savedhooks.State {
	var state *savedhooks.State
	for _, s := range m.states {
		if s.Name() == name {
			state = s
		}
	}

	if state == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("State not found"))
		dieOnErr(err)
	}

	return state
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
