package sim

import (
	"sync"
	"time"
)

// LoopConfig tunes the fixed-timestep runner.
type LoopConfig struct {
	// TickRate is the target frames per second.
	TickRate int
	// CatchupMaxTicks caps the clamped frame delta at this many tick
	// budgets, so a stalled host never produces an explosive position
	// jump inside the components.
	CatchupMaxTicks int
}

// LoopTickContext describes one frame boundary.
type LoopTickContext struct {
	Tick  uint64
	Now   time.Time
	Delta float64
}

// LoopStepResult reports one executed frame.
type LoopStepResult struct {
	Tick         uint64
	Now          time.Time
	Delta        float64
	Snapshot     Snapshot
	Duration     time.Duration
	ClampedDelta bool
}

// LoopHooks lets the host observe frame boundaries.
type LoopHooks struct {
	Prepare   func(LoopTickContext)
	AfterStep func(LoopStepResult)
}

// Loop drives the world at a fixed timestep. It is the only caller into
// the world; host goroutines hand mutations over through Enqueue and
// they run at the next frame start, keeping the simulation
// single-threaded.
type Loop struct {
	world  *World
	config LoopConfig
	hooks  LoopHooks

	mu     sync.Mutex
	staged []func(*World)
}

// NewLoop wraps the world with a staging queue and a fixed-timestep
// runner.
func NewLoop(world *World, cfg LoopConfig, hooks LoopHooks) *Loop {
	if world == nil {
		return nil
	}
	return &Loop{world: world, config: cfg, hooks: hooks}
}

// Enqueue stages a mutation to run on the frame goroutine at the next
// frame start.
func (l *Loop) Enqueue(fn func(*World)) {
	if l == nil || fn == nil {
		return
	}
	l.mu.Lock()
	l.staged = append(l.staged, fn)
	l.mu.Unlock()
}

// Advance executes a single frame: staged mutations, then the world
// step, then a snapshot.
func (l *Loop) Advance(ctx LoopTickContext) LoopStepResult {
	if l == nil {
		return LoopStepResult{}
	}
	for _, fn := range l.drainStaged() {
		fn(l.world)
	}
	if l.hooks.Prepare != nil {
		l.hooks.Prepare(ctx)
	}
	l.world.Step(ctx.Now, ctx.Delta)
	return LoopStepResult{
		Tick:     ctx.Tick,
		Now:      ctx.Now,
		Delta:    ctx.Delta,
		Snapshot: l.world.Snapshot(),
	}
}

// Run drives the loop until the stop channel closes. The frame delta is
// clamped here — components assume a bounded dt and never clamp
// internally.
func (l *Loop) Run(stop <-chan struct{}) {
	if l == nil {
		return
	}
	tickRate := l.config.TickRate
	if tickRate <= 0 {
		tickRate = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	clock := l.world.deps.Clock
	last := clock.Now()
	budget := 1.0 / float64(tickRate)
	maxDt := budget
	if l.config.CatchupMaxTicks > 1 {
		maxDt = budget * float64(l.config.CatchupMaxTicks)
	}

	var tick uint64
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := clock.Now()
			dt := now.Sub(last).Seconds()
			clamped := false
			if dt <= 0 {
				dt = budget
			} else if dt > maxDt {
				dt = maxDt
				clamped = true
			}
			last = now
			tick++

			start := clock.Now()
			result := l.Advance(LoopTickContext{Tick: tick, Now: now, Delta: dt})
			result.Duration = clock.Now().Sub(start)
			result.ClampedDelta = clamped

			if l.hooks.AfterStep != nil {
				l.hooks.AfterStep(result)
			}
		}
	}
}

func (l *Loop) drainStaged() []func(*World) {
	l.mu.Lock()
	defer l.mu.Unlock()
	staged := l.staged
	l.staged = nil
	return staged
}
