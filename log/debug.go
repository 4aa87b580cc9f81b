// Package log provides logging utilities including debug mode with layout
// profiling. Enable debug mode by setting GRIDBOARD_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "gridboard-debug.log")

// InitDebug initializes debug logging if GRIDBOARD_DEBUG=1 is set.
// Call this after Initialize in main.
func InitDebug() {
	if os.Getenv("GRIDBOARD_DEBUG") != "1" {
		// Initialize DebugLog as a no-op logger to prevent nil pointer panics
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Printf("could not open debug log file: %s", err)
		}
		// Fall back to no-op logger on error
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		fmt.Println("wrote debug logs to " + debugLogFileName)
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// LayoutProfiler tracks pack and render performance metrics.
type LayoutProfiler struct {
	mu            sync.RWMutex
	phases        map[string]*PhaseMetrics
	relayoutCount int64
	totalTime     time.Duration
	lastAt        time.Time
	timings       []time.Duration // Rolling window of relayout times
}

// PhaseMetrics tracks metrics for a single layout phase (resolve, pack, render).
type PhaseMetrics struct {
	Name    string
	Count   int64
	Total   time.Duration
	MinTime time.Duration
	MaxTime time.Duration
	LastAt  time.Time
}

// Global profiler instance
var profiler = &LayoutProfiler{
	phases:  make(map[string]*PhaseMetrics),
	timings: make([]time.Duration, 0, 100),
}

// GetProfiler returns the global layout profiler.
func GetProfiler() *LayoutProfiler {
	return profiler
}

// StartPhase begins timing a layout phase.
// Returns a function to call when the phase completes.
func (p *LayoutProfiler) StartPhase(phase string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		p.recordPhase(phase, elapsed)
	}
}

// recordPhase records a phase timing.
func (p *LayoutProfiler) recordPhase(phase string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	metrics, ok := p.phases[phase]
	if !ok {
		metrics = &PhaseMetrics{
			Name:    phase,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		p.phases[phase] = metrics
	}

	metrics.Count++
	metrics.Total += elapsed
	metrics.LastAt = time.Now()

	if elapsed < metrics.MinTime {
		metrics.MinTime = elapsed
	}
	if elapsed > metrics.MaxTime {
		metrics.MaxTime = elapsed
	}
}

// RecordRelayout records a complete relayout (pack + render).
func (p *LayoutProfiler) RecordRelayout(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.relayoutCount++
	p.totalTime += elapsed
	p.lastAt = time.Now()

	// Keep rolling window of last 100 relayout times
	if len(p.timings) >= 100 {
		p.timings = p.timings[1:]
	}
	p.timings = append(p.timings, elapsed)

	// A slow relayout shows up as input lag during resize
	if elapsed > 16*time.Millisecond {
		PerformanceWarning("slow relayout: %v", elapsed)
	}
}

// GetStats returns a summary of layout statistics.
func (p *LayoutProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Layout Profile ===\n")
	sb.WriteString(fmt.Sprintf("Total relayouts: %d\n", p.relayoutCount))

	if p.relayoutCount > 0 {
		avg := p.totalTime / time.Duration(p.relayoutCount)
		sb.WriteString(fmt.Sprintf("Avg relayout time: %v\n", avg))
	}

	if len(p.timings) > 0 {
		var sum time.Duration
		min := p.timings[0]
		max := p.timings[0]
		for _, t := range p.timings {
			sum += t
			if t < min {
				min = t
			}
			if t > max {
				max = t
			}
		}
		avg := sum / time.Duration(len(p.timings))
		sb.WriteString(fmt.Sprintf("Recent %d relayouts: avg=%v min=%v max=%v\n",
			len(p.timings), avg, min, max))
	}

	// Phase breakdown, sorted by total time
	sb.WriteString("\n--- Phases ---\n")

	phases := make([]*PhaseMetrics, 0, len(p.phases))
	for _, m := range p.phases {
		phases = append(phases, m)
	}
	sort.Slice(phases, func(i, j int) bool {
		return phases[i].Total > phases[j].Total
	})

	for _, m := range phases {
		avg := time.Duration(0)
		if m.Count > 0 {
			avg = m.Total / time.Duration(m.Count)
		}
		sb.WriteString(fmt.Sprintf("%s: count=%d avg=%v min=%v max=%v total=%v\n",
			m.Name, m.Count, avg, m.MinTime, m.MaxTime, m.Total))
	}

	return sb.String()
}

// LayoutTrace logs layout-related events (breakpoint changes, repacks).
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[LAYOUT] "+format, v...)
	}
}

// PackTrace logs placement decisions made by the packer.
func PackTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[PACK] "+format, v...)
	}
}

// InputTrace logs input handling events.
func InputTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[INPUT] "+format, v...)
	}
}

// PerformanceWarning logs performance-related warnings.
func PerformanceWarning(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[PERF WARNING] "+format, v...)
	}
}

// Reset clears all recorded metrics.
func (p *LayoutProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.phases = make(map[string]*PhaseMetrics)
	p.relayoutCount = 0
	p.totalTime = 0
	p.timings = p.timings[:0]
}
