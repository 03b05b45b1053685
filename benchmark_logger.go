package visioncore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/LynnColeArt/visioncore/internal/logging"
)

// BenchmarkResult captures the result of timing one kernel on one target
type BenchmarkResult struct {
	Kernel     string        `json:"kernel"`
	Target     string        `json:"target"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Status     string        `json:"status"` // "pass", "fail"
	Iterations int           `json:"iterations,omitempty"`
	NsPerOp    float64       `json:"ns_per_op,omitempty"`
	MPixPerSec float64       `json:"mpix_per_sec,omitempty"`
	Cycles     uint64        `json:"cycles,omitempty"`
	IPC        float64       `json:"ipc,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Error      string        `json:"error,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Name returns the kernel/target/size label of the result
func (r BenchmarkResult) Name() string {
	return fmt.Sprintf("%s/%s/%dx%d", r.Kernel, r.Target, r.Width, r.Height)
}

// BenchmarkLogger collects benchmark results of a session and mirrors them
// to a JSON file after every result
type BenchmarkLogger struct {
	mu          sync.Mutex
	results     []BenchmarkResult
	sessionFile string
}

// NewBenchmarkLogger starts a session writing to dir. An empty dir keeps
// results in memory only.
func NewBenchmarkLogger(dir, sessionName string) (*BenchmarkLogger, error) {
	bl := &BenchmarkLogger{}
	if dir == "" {
		return bl, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	bl.sessionFile = filepath.Join(dir, fmt.Sprintf("%s_%s.json", sessionName, timestamp))

	return bl, bl.flush()
}

// SessionFile returns the path results are written to, if any
func (bl *BenchmarkLogger) SessionFile() string {
	return bl.sessionFile
}

// Log records a single benchmark result
func (bl *BenchmarkLogger) Log(result BenchmarkResult) {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	bl.results = append(bl.results, result)

	// Flush to disk immediately to avoid losing data on crash
	if err := bl.flush(); err != nil {
		logging.WithField("file", bl.sessionFile).Warnf("failed to write benchmark log: %v", err)
	}
}

// LogPass records a successful run of iterations over a width x height
// domain. pc holds the totals measured across all iterations.
func (bl *BenchmarkLogger) LogPass(kernel string, kind TargetKind, width, height, iterations int, pc *PerfCounters) {
	iterations = max(iterations, 1)
	nsPerOp := float64(pc.Duration.Nanoseconds()) / float64(iterations)
	var mpix float64
	if nsPerOp > 0 {
		mpix = float64(width*height) / nsPerOp * 1e3
	}
	bl.Log(BenchmarkResult{
		Kernel:     kernel,
		Target:     kind.String(),
		Width:      width,
		Height:     height,
		Status:     "pass",
		Iterations: iterations,
		NsPerOp:    nsPerOp,
		MPixPerSec: mpix,
		Cycles:     pc.Cycles / uint64(iterations),
		IPC:        pc.IPC,
		Duration:   pc.Duration,
	})
}

// LogFail records a failed run
func (bl *BenchmarkLogger) LogFail(kernel string, kind TargetKind, width, height int, err error) {
	bl.Log(BenchmarkResult{
		Kernel: kernel,
		Target: kind.String(),
		Width:  width,
		Height: height,
		Status: "fail",
		Error:  err.Error(),
	})
}

// Results returns a copy of the results logged so far
func (bl *BenchmarkLogger) Results() []BenchmarkResult {
	bl.mu.Lock()
	defer bl.mu.Unlock()
	return append([]BenchmarkResult(nil), bl.results...)
}

// flush writes results to disk
func (bl *BenchmarkLogger) flush() error {
	if bl.sessionFile == "" {
		return nil
	}

	data, err := json.MarshalIndent(bl.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	return os.WriteFile(bl.sessionFile, data, 0644)
}

// LoadBenchmarkResults reads a session file written by a BenchmarkLogger
func LoadBenchmarkResults(path string) ([]BenchmarkResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []BenchmarkResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return results, nil
}

// WriteBenchmarkSummary prints one line per result, sorted by name, and a
// pass/fail total
func WriteBenchmarkSummary(w io.Writer, results []BenchmarkResult) {
	sorted := append([]BenchmarkResult(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	fmt.Fprintln(w, strings.Repeat("=", 72))

	passed, failed := 0, 0
	for _, r := range sorted {
		switch r.Status {
		case "pass":
			passed++
			fmt.Fprintf(w, "✓ %-40s %12.0f ns/op %10.2f MPix/s\n", r.Name(), r.NsPerOp, r.MPixPerSec)
		default:
			failed++
			fmt.Fprintf(w, "✗ %-40s FAILED: %s\n", r.Name(), r.Error)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "Total: %d | Passed: %d | Failed: %d\n", len(sorted), passed, failed)
}
