package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/arbsim/arbitercomp"
	"github.com/sarchlab/arbsim/arbitration"
	"github.com/sarchlab/arbsim/sim/hooking"
	"github.com/sarchlab/arbsim/sim/timing"
	"github.com/sarchlab/arbsim/tick"
)

var _ = Describe("Monitor", func() {
	var (
		engine  *timing.SerialEngine
		comp    *arbitercomp.Comp
		monitor *Monitor
		server  *httptest.Server
	)

	get := func(path string) *http.Response {
		rsp, err := http.Get(server.URL + path)
		Expect(err).NotTo(HaveOccurred())

		return rsp
	}

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		script := &tick.Script{
			Requests: []arbitration.RequestVector{{A: true, B: true}},
			Repeat:   true,
		}

		comp = arbitercomp.MakeBuilder().
			WithEngine(engine).
			WithArbiter(arbitration.NewArbiter("RR", arbitration.RoundRobinPolicy)).
			WithRequestSource(script).
			WithMaxTicks(3).
			Build("Arbiter")

		monitor = NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(comp)

		server = httptest.NewServer(monitor.Router())
	})

	AfterEach(func() {
		server.Close()
	})

	It("should list components", func() {
		rsp := get("/api/list_components")
		defer rsp.Body.Close()

		var names []string
		Expect(json.NewDecoder(rsp.Body).Decode(&names)).To(Succeed())
		Expect(names).To(Equal([]string{"Arbiter"}))
	})

	It("should report the current time", func() {
		rsp := get("/api/now")
		defer rsp.Body.Close()

		var now struct {
			Now float64 `json:"now"`
		}
		Expect(json.NewDecoder(rsp.Body).Decode(&now)).To(Succeed())
		Expect(now.Now).To(Equal(0.0))
	})

	It("should return 404 for unknown components", func() {
		rsp := get("/api/component/Nope")
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusNotFound))
	})

	It("should report the arbiter status after a run", func() {
		comp.Start()
		Expect(engine.Run()).To(Succeed())

		rsp := get("/api/arbiter/Arbiter")
		defer rsp.Body.Close()

		var status arbiterStatusRsp
		Expect(json.NewDecoder(rsp.Body).Decode(&status)).To(Succeed())
		Expect(status.Policy).To(Equal("round-robin"))
		Expect(status.Ticks).To(Equal(uint64(3)))
		Expect(status.Grant).To(Equal("A"))
		Expect(status.Token).To(Equal("PrefersB"))
	})

	It("should pause and continue the engine", func() {
		Expect(get("/api/pause").StatusCode).To(Equal(http.StatusOK))
		Expect(get("/api/continue").StatusCode).To(Equal(http.StatusOK))
	})

	It("should report resource usage", func() {
		rsp := get("/api/resource")
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))

		var res resourceRsp
		Expect(json.NewDecoder(rsp.Body).Decode(&res)).To(Succeed())
		Expect(res.MemorySize).To(BeNumerically(">", 0))
	})

	It("should track progress through the decision hook", func() {
		bar := monitor.CreateProgressBar("Ticks", 3)
		comp.AcceptHook(hooking.HookFunc(bar.Func))

		comp.Start()
		Expect(engine.Run()).To(Succeed())
		Expect(bar.Finished).To(Equal(uint64(3)))

		rsp := get("/api/progress")
		defer rsp.Body.Close()

		var bars []map[string]any
		Expect(json.NewDecoder(rsp.Body).Decode(&bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))

		monitor.CompleteProgressBar(bar)
		Expect(monitor.progressBars).To(BeEmpty())
	})
})

var _ = Describe("Monitor during a run", func() {
	const ticks = 20000

	var (
		engine  *timing.SerialEngine
		comp    *arbitercomp.Comp
		monitor *Monitor
		server  *httptest.Server
	)

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		script := &tick.Script{
			Requests: []arbitration.RequestVector{{A: true, B: true}},
			Repeat:   true,
		}

		comp = arbitercomp.MakeBuilder().
			WithEngine(engine).
			WithArbiter(arbitration.NewArbiter("RR", arbitration.RoundRobinPolicy)).
			WithRequestSource(script).
			WithMaxTicks(ticks).
			Build("Arbiter")

		monitor = NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(comp)

		bar := monitor.CreateProgressBar("Ticks", ticks)
		comp.AcceptHook(hooking.HookFunc(bar.Func))

		server = httptest.NewServer(monitor.Router())
	})

	AfterEach(func() {
		server.Close()
	})

	poll := func(path string) {
		rsp, err := http.Get(server.URL + path)
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		_, err = io.Copy(io.Discard, rsp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
	}

	It("should serve status while the engine runs", func() {
		comp.Start()

		done := make(chan error, 1)
		go func() { done <- engine.Run() }()

		running := true
		for running {
			poll("/api/arbiter/Arbiter")
			poll("/api/progress")
			poll("/api/component/Arbiter")

			select {
			case err := <-done:
				Expect(err).NotTo(HaveOccurred())
				running = false
			default:
			}
		}

		rsp, err := http.Get(server.URL + "/api/arbiter/Arbiter")
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		var status arbiterStatusRsp
		Expect(json.NewDecoder(rsp.Body).Decode(&status)).To(Succeed())
		Expect(status.Ticks).To(Equal(uint64(ticks)))
		Expect(status.Grant).To(Equal("B"))
		Expect(status.Token).To(Equal("PrefersA"))
	})

	It("should not deadlock when paused by a client", func() {
		poll("/api/pause")
		poll("/api/component/Arbiter")
		poll("/api/continue")

		comp.Start()
		Expect(engine.Run()).To(Succeed())
		Expect(comp.Status().Ticks).To(Equal(uint64(ticks)))
	})
})

var _ = Describe("Monitor port", func() {
	It("should keep ports from 1000 up", func() {
		m := NewMonitor().WithPortNumber(1000)
		Expect(m.listenAddr()).To(Equal(":1000"))
	})

	It("should pick a random port below 1000", func() {
		m := NewMonitor().WithPortNumber(999)
		Expect(m.listenAddr()).To(Equal(":0"))
	})

	It("should pick a random port when unset", func() {
		Expect(NewMonitor().listenAddr()).To(Equal(":0"))
	})
})
