package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Stats is one interval's worth of frame and memory statistics.
type Stats struct {
	// FPS is the number of Tick calls per second over the interval.
	FPS float64
	// Frames is the number of Tick calls in the interval.
	Frames int
	// HeapMB is the live heap size.
	HeapMB float64
	// AllocRateMB is the allocation churn in MB/s.
	AllocRateMB float64
	// GCCount is the total number of completed GC cycles.
	GCCount uint32
	// LastPauseUs and MaxPauseUs are the last GC pause and the longest pause since the previous report.
	LastPauseUs uint64
	MaxPauseUs  uint64
	// SysMB is the memory obtained from the OS.
	SysMB float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Reports stats at a configurable interval, by default to the log.
type Profiler interface {
	// Tick should be called once per frame to track frame timing.
	// Reports performance statistics when the update interval has elapsed.
	//
	// Returns:
	//   - bool: true if stats were reported this tick, false otherwise
	Tick() bool

	// Last returns the most recently reported stats.
	//
	// Returns:
	//   - Stats: the last report, zero before the first interval elapses
	Last() Stats
}

type profiler struct {
	mu             *sync.Mutex
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now      func() time.Time
	reporter func(Stats)
}

var _ Profiler = &profiler{}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) Profiler {
	p := &profiler{
		mu:             &sync.Mutex{},
		updateInterval: time.Second,
		now:            time.Now,
		reporter:       logStats,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

func (p *profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		FPS:    float64(p.frameCount) / elapsed.Seconds(),
		Frames: p.frameCount,
		// Alloc is live heap; Sys is the process footprint
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = stats.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = stats

	p.reporter(stats)
	return true
}

func (p *profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func logStats(s Stats) {
	log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
}
