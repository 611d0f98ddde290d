package player_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/trace"
)

func scenarioTrace() trace.Trace {
	return trace.Trace{
		Algorithm: "scenario",
		Initial:   []int{2, 1},
		Events: []trace.Event{
			trace.NewCompare(0, 1),
			trace.NewSwap(0, 1, []int{1, 2}),
			trace.NewMarkSorted(1),
			trace.NewMarkSorted(0),
		},
		Final: []int{1, 2},
	}
}

func sameState(a, b player.State) {
	ExpectWithOffset(1, a.Cursor).To(Equal(b.Cursor))
	ExpectWithOffset(1, a.Status).To(Equal(b.Status))
	ExpectWithOffset(1, a.Speed).To(Equal(b.Speed))
	ExpectWithOffset(1, a.Comparing).To(Equal(b.Comparing))
	ExpectWithOffset(1, a.Swapping).To(Equal(b.Swapping))
	ExpectWithOffset(1, a.Sorted).To(Equal(b.Sorted))
	ExpectWithOffset(1, a.Array).To(Equal(b.Array))
	ExpectWithOffset(1, a.Total).To(Equal(b.Total))
}

var _ = Describe("Engine", func() {
	var (
		sched  *player.ManualScheduler
		engine *player.Engine
		states []player.State
	)

	BeforeEach(func() {
		sched = player.NewManualScheduler()
		states = nil
		engine = player.New(
			player.WithScheduler(sched),
			player.WithObserver(func(s player.State) { states = append(states, s) }),
		)
	})

	Describe("Load", func() {
		It("starts idle at cursor zero with the initial array", func() {
			Expect(engine.Load(scenarioTrace(), 40)).To(Succeed())

			s := engine.State()
			Expect(s.Status).To(Equal(player.Idle))
			Expect(s.Cursor).To(Equal(0))
			Expect(s.Total).To(Equal(4))
			Expect(s.Speed).To(Equal(40))
			Expect(s.Array).To(Equal([]int{2, 1}))
			Expect(s.Comparing).To(BeEmpty())
			Expect(s.Swapping).To(BeEmpty())
			Expect(s.Sorted).To(BeEmpty())
		})

		It("rejects an out-of-range index and leaves the engine untouched", func() {
			Expect(engine.Load(scenarioTrace(), 70)).To(Succeed())
			Expect(engine.Step()).To(Succeed())
			before := engine.State()

			bad := trace.Trace{Initial: []int{1, 2, 3}, Events: []trace.Event{trace.NewCompare(0, 5)}}
			err := engine.Load(bad, 50)

			Expect(err).To(MatchError(trace.ErrInvalidTrace))
			sameState(engine.State(), before)
		})

		It("rejects an invalid speed without changing state", func() {
			Expect(engine.Load(scenarioTrace(), 70)).To(Succeed())
			before := engine.State()

			Expect(engine.Load(scenarioTrace(), 0)).To(MatchError(player.ErrInvalidSpeed))
			Expect(engine.Load(scenarioTrace(), 101)).To(MatchError(player.ErrInvalidSpeed))
			sameState(engine.State(), before)
		})

		It("cancels a running playback and ignores its late callback", func() {
			Expect(engine.Load(scenarioTrace(), 100)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			Expect(sched.Advance()).To(BeTrue())
			stale := sched.Next()
			Expect(stale).NotTo(BeNil())

			next := trace.Trace{Initial: []int{5, 6, 7}, Events: []trace.Event{trace.NewMarkSorted(2)}}
			Expect(engine.Load(next, 30)).To(Succeed())
			Expect(stale.Stopped()).To(BeTrue())

			stale.Fire()

			s := engine.State()
			Expect(s.Status).To(Equal(player.Idle))
			Expect(s.Cursor).To(Equal(0))
			Expect(s.Array).To(Equal([]int{5, 6, 7}))
			Expect(s.Comparing).To(BeEmpty())
			Expect(sched.Pending()).To(Equal(0))
		})

		It("keeps its own copy of the trace", func() {
			tr := scenarioTrace()
			Expect(engine.Load(tr, 100)).To(Succeed())
			tr.Events[0].Indices[0] = 1
			tr.Initial[0] = 42

			Expect(engine.Step()).To(Succeed())
			s := engine.State()
			Expect(s.Comparing).To(Equal([]int{0, 1}))
			Expect(s.Array).To(Equal([]int{2, 1}))
		})
	})

	Describe("the documented scenario", func() {
		It("completes with both indices sorted after four events", func() {
			Expect(engine.Load(scenarioTrace(), 100)).To(Succeed())
			Expect(engine.Start()).To(Succeed())

			fired := sched.RunUntilIdle(100)

			s := engine.State()
			Expect(fired).To(Equal(5))
			Expect(s.Status).To(Equal(player.Completed))
			Expect(s.Cursor).To(Equal(4))
			Expect(s.Sorted).To(Equal([]int{0, 1}))
			Expect(s.Comparing).To(BeEmpty())
			Expect(s.Swapping).To(BeEmpty())
			Expect(s.Array).To(Equal([]int{1, 2}))
		})
	})

	Describe("playback properties", func() {
		var tr trace.Trace

		BeforeEach(func() {
			var err error
			tr, err = algorithms.Generate("quick", algorithms.RandomArray(24, 11))
			Expect(err).NotTo(HaveOccurred())
			Expect(engine.Load(tr, 100)).To(Succeed())
			states = nil
			Expect(engine.Start()).To(Succeed())
			sched.RunUntilIdle(100000)
		})

		It("visits every event exactly once and in order", func() {
			var cursors []int
			for _, s := range states {
				if s.Status == player.Running {
					cursors = append(cursors, s.Cursor)
				}
			}
			Expect(cursors).To(HaveLen(tr.Len() + 1))
			for i, c := range cursors {
				Expect(c).To(Equal(i))
			}

			last := states[len(states)-1]
			Expect(last.Status).To(Equal(player.Completed))
			Expect(last.Cursor).To(Equal(tr.Len()))
			Expect(last.Array).To(Equal(tr.Final))
			Expect(last.Sorted).To(HaveLen(len(tr.Initial)))
		})

		It("never shrinks the sorted set", func() {
			prev := map[int]bool{}
			for _, s := range states {
				for i := range prev {
					Expect(s.IsSorted(i)).To(BeTrue(), "index %d lost at cursor %d", i, s.Cursor)
				}
				prev = map[int]bool{}
				for _, i := range s.Sorted {
					prev[i] = true
				}
			}
		})

		It("keeps per-step highlights small and clears them on mark steps", func() {
			for _, s := range states {
				Expect(len(s.Comparing)).To(BeNumerically("<=", 2))
				Expect(len(s.Swapping)).To(BeNumerically("<=", 2))
				if s.Cursor > 0 && s.Cursor <= tr.Len() && tr.Events[s.Cursor-1].Kind == trace.MarkSorted {
					Expect(s.Comparing).To(BeEmpty())
					Expect(s.Swapping).To(BeEmpty())
				}
			}
		})
	})

	Describe("Start", func() {
		It("fails without a trace", func() {
			Expect(engine.Start()).To(MatchError(player.ErrInvalidState))
		})

		It("completes an empty trace immediately", func() {
			Expect(engine.Load(trace.Trace{Initial: []int{}}, 50)).To(Succeed())
			Expect(engine.Start()).To(Succeed())

			Expect(engine.State().Status).To(Equal(player.Completed))
			Expect(sched.Pending()).To(Equal(0))
		})

		It("rejects a second start while running", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			Expect(engine.Start()).To(Succeed())

			err := engine.Start()
			Expect(err).To(MatchError(player.ErrInvalidState))
			var serr *player.StateError
			Expect(err).To(BeAssignableToTypeOf(serr))
			Expect(sched.Pending()).To(Equal(1))
		})

		It("rejects start once completed", func() {
			Expect(engine.Load(scenarioTrace(), 100)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			sched.RunUntilIdle(100)

			Expect(engine.Start()).To(MatchError(player.ErrInvalidState))
			Expect(engine.State().Status).To(Equal(player.Completed))
		})

		It("completes a mark-only trace without comparing or swapping", func() {
			markOnly := trace.Trace{
				Initial: []int{1, 2, 3},
				Events:  []trace.Event{trace.NewMarkSorted(0), trace.NewMarkSorted(1), trace.NewMarkSorted(2)},
			}
			Expect(engine.Load(markOnly, 100)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			sched.RunUntilIdle(100)

			for _, s := range states {
				Expect(s.Comparing).To(BeEmpty())
				Expect(s.Swapping).To(BeEmpty())
			}
			s := engine.State()
			Expect(s.Status).To(Equal(player.Completed))
			Expect(s.Cursor).To(Equal(3))
			Expect(s.Sorted).To(Equal([]int{0, 1, 2}))
		})
	})

	Describe("Pause", func() {
		It("is rejected while idle and keeps the cursor", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())

			Expect(engine.Pause()).To(MatchError(player.ErrInvalidState))
			Expect(engine.State().Cursor).To(Equal(0))
			Expect(engine.State().Status).To(Equal(player.Idle))
		})

		It("cancels the pending advance and resumes from the same cursor", func() {
			Expect(engine.Load(scenarioTrace(), 100)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			sched.Advance()
			sched.Advance()

			pending := sched.Next()
			Expect(engine.Pause()).To(Succeed())
			Expect(pending.Stopped()).To(BeTrue())

			pending.Fire()
			s := engine.State()
			Expect(s.Status).To(Equal(player.Paused))
			Expect(s.Cursor).To(Equal(2))

			Expect(engine.Start()).To(Succeed())
			Expect(sched.Pending()).To(Equal(1))
			sched.RunUntilIdle(100)
			Expect(engine.State().Status).To(Equal(player.Completed))
			Expect(engine.State().Cursor).To(Equal(4))
		})
	})

	Describe("Reset", func() {
		It("is idempotent", func() {
			Expect(engine.Load(scenarioTrace(), 100)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			sched.Advance()
			sched.Advance()

			engine.Reset()
			once := engine.State()
			engine.Reset()
			twice := engine.State()

			sameState(twice, once)
			Expect(twice.Status).To(Equal(player.Idle))
			Expect(twice.Cursor).To(Equal(0))
			Expect(twice.Comparing).To(BeEmpty())
			Expect(twice.Swapping).To(BeEmpty())
			Expect(twice.Sorted).To(BeEmpty())
			Expect(twice.Array).To(Equal([]int{2, 1}))
		})

		It("turns a callback already in flight into a no-op", func() {
			Expect(engine.Load(scenarioTrace(), 100)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			inFlight := sched.Next()

			engine.Reset()
			afterReset := engine.State()
			inFlight.Fire()

			sameState(engine.State(), afterReset)
			Expect(sched.Pending()).To(Equal(0))
		})

		It("is valid before anything was loaded", func() {
			engine.Reset()
			Expect(engine.State().Status).To(Equal(player.Idle))
		})
	})

	Describe("SetSpeed", func() {
		It("rejects out-of-range speeds and keeps the previous one", func() {
			Expect(engine.Load(scenarioTrace(), 30)).To(Succeed())

			Expect(engine.SetSpeed(0)).To(MatchError(player.ErrInvalidSpeed))
			Expect(engine.SetSpeed(101)).To(MatchError(player.ErrInvalidSpeed))
			Expect(engine.State().Speed).To(Equal(30))
		})

		It("changes only the delay of later advances", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			Expect(sched.Last().Delay).To(Equal(255 * time.Millisecond))

			Expect(engine.SetSpeed(100)).To(Succeed())
			Expect(sched.Last().Delay).To(Equal(255 * time.Millisecond))
			Expect(engine.State().Cursor).To(Equal(0))

			sched.Advance()
			Expect(sched.Last().Delay).To(Equal(5 * time.Millisecond))
			Expect(engine.State().Cursor).To(Equal(1))
		})
	})

	Describe("Delay", func() {
		DescribeTable("follows base*(101-speed)/100 with a floor",
			func(base time.Duration, speed int, want time.Duration) {
				e := player.New(player.WithScheduler(sched), player.WithBaseDelay(base))
				Expect(e.Load(scenarioTrace(), speed)).To(Succeed())
				Expect(e.Delay()).To(Equal(want))
			},
			Entry("slowest", 500*time.Millisecond, 1, 500*time.Millisecond),
			Entry("middle", 500*time.Millisecond, 50, 255*time.Millisecond),
			Entry("fastest", 500*time.Millisecond, 100, 5*time.Millisecond),
			Entry("floored", 10*time.Millisecond, 100, time.Millisecond),
		)

		It("honours a custom floor", func() {
			e := player.New(player.WithScheduler(sched), player.WithMinDelay(20*time.Millisecond))
			Expect(e.Load(scenarioTrace(), 100)).To(Succeed())
			Expect(e.Delay()).To(Equal(20 * time.Millisecond))
		})
	})

	Describe("Step", func() {
		It("applies one event and pauses", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())

			Expect(engine.Step()).To(Succeed())
			s := engine.State()
			Expect(s.Status).To(Equal(player.Paused))
			Expect(s.Cursor).To(Equal(1))
			Expect(s.Comparing).To(Equal([]int{0, 1}))
			Expect(sched.Pending()).To(Equal(0))
		})

		It("completes at the end of the trace", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			for i := 0; i < 4; i++ {
				Expect(engine.Step()).To(Succeed())
			}
			Expect(engine.State().Status).To(Equal(player.Paused))

			Expect(engine.Step()).To(Succeed())
			Expect(engine.State().Status).To(Equal(player.Completed))
			Expect(engine.Step()).To(MatchError(player.ErrInvalidState))
		})

		It("is rejected while running", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			Expect(engine.Start()).To(Succeed())
			Expect(engine.Step()).To(MatchError(player.ErrInvalidState))
		})

		It("swaps in place when an event has no snapshot", func() {
			tr := trace.Trace{
				Initial: []int{3, 1, 2},
				Events:  []trace.Event{{Kind: trace.Swap, Indices: []int{0, 2}}},
			}
			Expect(engine.Load(tr, 50)).To(Succeed())
			Expect(engine.Step()).To(Succeed())

			s := engine.State()
			Expect(s.Array).To(Equal([]int{2, 1, 3}))
			Expect(s.Swapping).To(Equal([]int{0, 2}))
		})
	})

	Describe("State", func() {
		It("returns copies", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			Expect(engine.Step()).To(Succeed())

			s := engine.State()
			s.Array[0] = 99
			s.Comparing[0] = 7

			fresh := engine.State()
			Expect(fresh.Array).To(Equal([]int{2, 1}))
			Expect(fresh.Comparing).To(Equal([]int{0, 1}))
		})

		It("reports progress", func() {
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			Expect(engine.State().Progress()).To(BeNumerically("==", 0))
			Expect(engine.Step()).To(Succeed())
			Expect(engine.State().Progress()).To(BeNumerically("~", 0.25))
		})
	})

	Describe("Subscribe", func() {
		It("stops delivering after unsubscribe", func() {
			count := 0
			unsubscribe := engine.Subscribe(func(player.State) { count++ })
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			Expect(count).To(Equal(1))

			unsubscribe()
			Expect(engine.Step()).To(Succeed())
			Expect(count).To(Equal(1))
		})

		It("delivers snapshots in order to an observer that calls back in", func() {
			var seen []player.Status
			engine.Subscribe(func(s player.State) {
				seen = append(seen, s.Status)
				if s.Status == player.Idle && s.Cursor == 0 && len(seen) == 2 {
					Expect(engine.Step()).To(Succeed())
				}
			})
			Expect(engine.Load(scenarioTrace(), 50)).To(Succeed())
			Expect(seen).To(Equal([]player.Status{player.Idle}))

			engine.Reset()
			Expect(seen).To(Equal([]player.Status{player.Idle, player.Idle, player.Paused}))
		})
	})
})

var _ = Describe("Run", func() {
	It("plays every algorithm to completion on the real scheduler", func() {
		for _, name := range algorithms.Names() {
			tr, err := algorithms.Generate(name, algorithms.RandomArray(12, 5))
			Expect(err).NotTo(HaveOccurred())

			e := player.New(player.WithBaseDelay(time.Millisecond), player.WithMinDelay(50*time.Microsecond))
			Expect(e.Load(tr, 100)).To(Succeed())

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			s, err := player.Run(ctx, e)
			cancel()

			Expect(err).NotTo(HaveOccurred(), name)
			Expect(s.Status).To(Equal(player.Completed), name)
			Expect(s.Array).To(Equal(tr.Final), name)
			Expect(s.Sorted).To(HaveLen(12), name)
		}
	})

	It("serializes observers in cursor order on the real scheduler", func() {
		tr, err := algorithms.Generate("bubble", []int{4, 3, 2, 1})
		Expect(err).NotTo(HaveOccurred())

		e := player.New(player.WithBaseDelay(time.Microsecond), player.WithMinDelay(time.Microsecond))

		var (
			mu       sync.Mutex
			cursors  []int
			statuses []player.Status
			inFlight atomic.Int32
			overlap  atomic.Bool
		)
		e.Subscribe(func(s player.State) {
			if inFlight.Add(1) > 1 {
				overlap.Store(true)
			}
			defer inFlight.Add(-1)
			if s.Status == player.Running && s.Cursor == 1 {
				time.Sleep(20 * time.Millisecond)
			}
			mu.Lock()
			cursors = append(cursors, s.Cursor)
			statuses = append(statuses, s.Status)
			mu.Unlock()
		})
		Expect(e.Load(tr, 100)).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s, err := player.Run(ctx, e)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Status).To(Equal(player.Completed))

		mu.Lock()
		defer mu.Unlock()
		Expect(overlap.Load()).To(BeFalse())
		for i := 1; i < len(cursors); i++ {
			Expect(cursors[i]).To(BeNumerically(">=", cursors[i-1]), "cursor %d delivered after %d", cursors[i], cursors[i-1])
		}
		Expect(statuses[len(statuses)-1]).To(Equal(player.Completed))
		Expect(cursors[len(cursors)-1]).To(Equal(tr.Len()))
	})

	It("pauses and returns the context error on cancellation", func() {
		sched := player.NewManualScheduler()
		e := player.New(player.WithScheduler(sched))
		Expect(e.Load(scenarioTrace(), 50)).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		s, err := player.Run(ctx, e)
		Expect(err).To(MatchError(context.DeadlineExceeded))
		Expect(s.Status).To(Equal(player.Paused))
		Expect(sched.Pending()).To(Equal(0))
	})

	It("returns immediately for an empty trace", func() {
		e := player.New(player.WithScheduler(player.NewManualScheduler()))
		Expect(e.Load(trace.Trace{}, 50)).To(Succeed())

		s, err := player.Run(context.Background(), e)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Status).To(Equal(player.Completed))
	})

	It("propagates start errors", func() {
		e := player.New()
		_, err := player.Run(context.Background(), e)
		Expect(err).To(MatchError(player.ErrInvalidState))
	})
})
