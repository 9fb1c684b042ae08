package timing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("TickingComponent", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		ticker   *MockTicker
		tc       *TickingComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		ticker = NewMockTicker(mockCtrl)
		tc = NewTickingComponent("TC", engine, 1, ticker)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should have a name", func() {
		Expect(tc.Name()).To(Equal("TC"))
	})

	It("should tick again when the ticker makes progress", func() {
		engine.EXPECT().Now().Return(VTimeInSec(10)).AnyTimes()
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(VTimeInSec(11)))
				Expect(e.Handler()).To(BeIdenticalTo(tc))
			})
		ticker.EXPECT().Tick().Return(true)

		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should not tick if another tick is scheduled in the future", func() {
		engine.EXPECT().Now().Return(VTimeInSec(10)).AnyTimes()
		engine.EXPECT().Schedule(gomock.Any()).Times(1)
		ticker.EXPECT().Tick().Return(true).Times(2)

		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should stop ticking if no progress is made", func() {
		ticker.EXPECT().Tick().Return(false)

		Expect(tc.Handle(MakeTickEvent(tc, 10))).To(Succeed())
	})

	It("should schedule a tick at the current cycle on TickNow", func() {
		engine.EXPECT().Now().Return(VTimeInSec(3)).AnyTimes()
		engine.EXPECT().Schedule(gomock.Any()).
			Do(func(e Event) {
				Expect(e.Time()).To(Equal(VTimeInSec(3)))
			})

		tc.TickNow()
	})
})

var _ = Describe("TickingComponent on a SerialEngine", func() {
	It("should tick once per cycle until the ticker stops", func() {
		engine := NewSerialEngine()
		counter := &countingTicker{limit: 5}
		tc := NewTickingComponent("Counter", engine, 30*Hz, counter)
		counter.tc = tc

		tc.TickLater()

		Expect(engine.Run()).To(Succeed())
		Expect(counter.times).To(HaveLen(5))

		for i, t := range counter.times {
			Expect(t).To(BeNumerically("~", float64(i+1)/30, 1e-9))
		}
	})
})

type countingTicker struct {
	tc    *TickingComponent
	limit int
	times []VTimeInSec
}

func (c *countingTicker) Tick() bool {
	c.times = append(c.times, c.tc.Now())
	return len(c.times) < c.limit
}
