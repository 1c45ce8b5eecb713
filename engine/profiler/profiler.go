package profiler

import (
	"log"
	"math"
	"runtime"
	"time"
)

// Stats is one interval's worth of frame timing.
type Stats struct {
	Frames   int
	FPS      float64
	MinFrame time.Duration
	MaxFrame time.Duration
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	minFrame       time.Duration
	maxFrame       time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	logger *log.Logger
	now    func() time.Time
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second and output
// goes to the standard logger.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		logger:         log.Default(),
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	p.resetFrameTimes()
	return p
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, min/max frame time, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()

	frame := currentTime.Sub(p.lastFrame)
	p.lastFrame = currentTime
	p.minFrame = min(p.minFrame, frame)
	p.maxFrame = max(p.maxFrame, frame)

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	p.last = Stats{
		Frames:   p.frameCount,
		FPS:      float64(p.frameCount) / elapsed.Seconds(),
		MinFrame: p.minFrame,
		MaxFrame: p.maxFrame,
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows and tracks churn, Sys is the process footprint.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Printf("[Profiler] FPS: %.2f | frame: %.2fms min, %.2fms max | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.last.FPS, millis(p.minFrame), millis(p.maxFrame), allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.resetFrameTimes()
	return true
}

// Last returns the stats of the most recently logged interval.
//
// Returns:
//   - Stats: zero until the first interval elapses
func (p *Profiler) Last() Stats {
	return p.last
}

func (p *Profiler) resetFrameTimes() {
	p.minFrame = time.Duration(math.MaxInt64)
	p.maxFrame = 0
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
