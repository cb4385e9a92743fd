package evaluator

import (
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/uselesslang/useless/internal/chaos"
	"github.com/uselesslang/useless/internal/config"
)

// PromiseState is the lifecycle of a scheduler entry.
type PromiseState string

const (
	PromisePending        PromiseState = "pending"
	PromiseResolved       PromiseState = "resolved"
	PromiseRejected       PromiseState = "rejected"
	PromiseAbandonedState PromiseState = "abandoned"
)

// drainMaxTicks caps the end-of-program drain. Timeouts make every entry
// settle long before this, so hitting the cap means a scheduler defect.
const drainMaxTicks = 10000

// promiseEntry is the scheduler's record for one promise. Chaos entries
// settle by per-tick draw; completion entries settle when their task returns.
type promiseEntry struct {
	handle       string
	state        PromiseState
	value        Object // creation value, or resolution value
	errObj       *Error // set for rejected entries
	chaos        bool
	createdTick  int64
	timeoutTicks int64
	settledTick  int64
	mindChange   bool
	flipped      bool
	waiters      []*Task // FIFO resumption order
}

// Task is one async function activation. The scheduler and the task goroutine
// hand control back and forth over unbuffered channels so that exactly one of
// them runs at any moment; that handshake is the cooperative single-threaded
// model, no locks needed.
type Task struct {
	resume  chan Object   // scheduler -> task: await result
	yielded chan struct{} // task -> scheduler: parked or finished
}

// park hands control back to the scheduler and blocks until it delivers the
// awaited result.
func (t *Task) park() Object {
	t.yielded <- struct{}{}
	return <-t.resume
}

// Scheduler owns the promise table and drives async tasks. Entries are kept
// in creation order so a fixed seed replays the identical settlement and
// resumption sequence.
type Scheduler struct {
	policy     *chaos.Policy
	logger     *slog.Logger
	tick       int64
	order      []string
	entries    map[string]*promiseEntry
	handleRand io.Reader
}

func NewScheduler(policy *chaos.Policy, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		policy:  policy,
		logger:  logger,
		entries: make(map[string]*promiseEntry),
		// Handles show up in error messages, so they come from a seeded
		// stream rather than OS entropy to keep runs reproducible.
		handleRand: rand.New(rand.NewSource(policy.Seed() ^ 0x70726f6d)),
	}
}

// Tick returns the current virtual time in ticks.
func (s *Scheduler) Now() int64 { return s.tick }

// StateOf reports the state of a handle. Unknown handles are a defect.
func (s *Scheduler) StateOf(handle string) PromiseState {
	return s.mustEntry(handle).state
}

// PendingCount reports how many entries have not settled yet.
func (s *Scheduler) PendingCount() int {
	n := 0
	for _, h := range s.order {
		if s.entries[h].state == PromisePending {
			n++
		}
	}
	return n
}

func (s *Scheduler) mustEntry(handle string) *promiseEntry {
	e, ok := s.entries[handle]
	if !ok {
		panic("scheduler: unknown promise handle " + handle)
	}
	return e
}

func (s *Scheduler) newHandle() string {
	id, err := uuid.NewRandomFromReader(s.handleRand)
	if err != nil {
		panic("scheduler: handle generation failed: " + err.Error())
	}
	return id.String()
}

func (s *Scheduler) register(e *promiseEntry) *Promise {
	s.entries[e.handle] = e
	s.order = append(s.order, e.handle)
	return &Promise{Handle: e.handle, Sched: s}
}

func timeoutTicks(timeoutMs float64) int64 {
	if timeoutMs < 0 {
		timeoutMs = 0
	}
	return int64(math.Ceil(timeoutMs / float64(config.TickMillis)))
}

// NewChaosPromise registers a promise(value, timeoutMs) entry. It stays
// pending until a tick draw or its timeout decides otherwise.
func (s *Scheduler) NewChaosPromise(value Object, timeoutMs float64) *Promise {
	e := &promiseEntry{
		handle:       s.newHandle(),
		state:        PromisePending,
		value:        value,
		chaos:        true,
		createdTick:  s.tick,
		timeoutTicks: timeoutTicks(timeoutMs),
		mindChange:   s.policy.MindChangeEligible(),
	}
	s.logger.Debug("promise created",
		"handle", e.handle, "timeout_ticks", e.timeoutTicks, "mind_change", e.mindChange)
	return s.register(e)
}

// SpawnTask runs an async function body on its own task and returns its
// completion promise. The body runs synchronously up to its first await (or
// to the end); only then does SpawnTask return.
func (s *Scheduler) SpawnTask(run func(t *Task) Object) *Promise {
	e := &promiseEntry{
		handle:       s.newHandle(),
		state:        PromisePending,
		createdTick:  s.tick,
		timeoutTicks: timeoutTicks(config.DefaultPromiseTimeoutMillis),
	}
	p := s.register(e)

	t := &Task{
		resume:  make(chan Object),
		yielded: make(chan struct{}),
	}
	go func() {
		result := run(t)
		s.complete(e, result)
		t.yielded <- struct{}{}
	}()
	<-t.yielded
	return p
}

// complete settles a completion entry with the task's result.
func (s *Scheduler) complete(e *promiseEntry, result Object) {
	if e.state != PromisePending {
		return // timed out while the task was still running
	}
	if err, ok := result.(*Error); ok {
		e.state = PromiseRejected
		e.errObj = err
	} else {
		e.state = PromiseResolved
		e.value = result
	}
	e.settledTick = s.tick
	s.logger.Debug("task completed", "handle", e.handle, "state", e.state)
}

// Await blocks until handle leaves Pending and returns the outcome: the
// resolution value, the rejection error, or a PromiseAbandoned error. From
// the top level (task == nil) it drives the scheduler itself; from a task it
// parks and lets the scheduler resume it.
func (s *Scheduler) Await(handle string, task *Task) Object {
	e := s.mustEntry(handle)
	if e.state == PromisePending {
		if task == nil {
			for ticks := 0; e.state == PromisePending; ticks++ {
				if ticks >= drainMaxTicks {
					panic("scheduler: await exceeded drain cap for " + handle)
				}
				s.Tick()
			}
		} else {
			e.waiters = append(e.waiters, task)
			return task.park()
		}
	}
	return s.outcome(e)
}

func (s *Scheduler) outcome(e *promiseEntry) Object {
	switch e.state {
	case PromiseResolved:
		return e.value
	case PromiseRejected:
		return e.errObj
	case PromiseAbandonedState:
		return errPromiseAbandoned(e.handle)
	default:
		panic("scheduler: outcome of pending promise " + e.handle)
	}
}

// Tick advances virtual time by one step: settle pending entries, give
// settled mind-change entries their flip draw, then resume waiters whose
// promises have left Pending. Entries are visited in creation order.
func (s *Scheduler) Tick() {
	s.tick++

	for _, h := range s.order {
		e := s.entries[h]
		if e.state != PromisePending {
			continue
		}
		if e.chaos {
			switch s.policy.SettlePending() {
			case chaos.SettleResolve:
				e.state = PromiseResolved
				e.settledTick = s.tick
			case chaos.SettleReject:
				e.state = PromiseRejected
				e.errObj = errTeapot()
				e.settledTick = s.tick
			case chaos.SettleAbandon:
				e.state = PromiseAbandonedState
				e.settledTick = s.tick
			}
		}
		// Timeout wins only if the draw left it pending.
		if e.state == PromisePending && s.tick-e.createdTick > e.timeoutTicks {
			e.state = PromiseAbandonedState
			e.settledTick = s.tick
			s.logger.Debug("promise timed out", "handle", e.handle)
		}
		if e.state != PromisePending {
			s.logger.Debug("promise settled", "handle", e.handle, "state", e.state, "tick", s.tick)
		}
	}

	// A mind-change entry flips to the opposite settlement at most once, on
	// a tick after the one it settled in.
	for _, h := range s.order {
		e := s.entries[h]
		if !e.mindChange || e.flipped || e.settledTick >= s.tick {
			continue
		}
		if e.state != PromiseResolved && e.state != PromiseRejected {
			continue
		}
		if s.policy.MindChangeFlip() {
			e.flipped = true
			if e.state == PromiseResolved {
				e.state = PromiseRejected
				e.errObj = errTeapot()
			} else {
				e.state = PromiseResolved
				e.errObj = nil
			}
			s.logger.Debug("promise changed its mind", "handle", e.handle, "state", e.state)
		}
	}

	for _, h := range s.order {
		e := s.entries[h]
		if e.state == PromisePending || len(e.waiters) == 0 {
			continue
		}
		waiters := e.waiters
		e.waiters = nil
		for _, w := range waiters {
			s.resumeTask(w, s.outcome(e))
		}
	}
}

// resumeTask hands the awaited outcome to a parked task and runs it until it
// parks again or finishes.
func (s *Scheduler) resumeTask(t *Task, result Object) {
	t.resume <- result
	<-t.yielded
}

// Drain runs ticks until every entry has settled. Called after the top-level
// statement list is exhausted so the program never exits with live promises.
func (s *Scheduler) Drain() {
	for i := 0; i < drainMaxTicks; i++ {
		if s.PendingCount() == 0 {
			return
		}
		s.Tick()
	}
	// Safety net: timeouts should have settled everything well before the
	// cap. Force-abandon the stragglers and resume whoever waits on them.
	for _, h := range s.order {
		e := s.entries[h]
		if e.state == PromisePending {
			e.state = PromiseAbandonedState
			e.settledTick = s.tick
			s.logger.Warn("promise force-abandoned at drain cap", "handle", e.handle)
		}
		waiters := e.waiters
		e.waiters = nil
		for _, w := range waiters {
			s.resumeTask(w, s.outcome(e))
		}
	}
}
