// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

// Package tinybench is a tiny benchmark runner with statistical significance
// testing against both the previous run and an optional reference
// implementation, used by the bench/ comparison harness.
package tinybench

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/codahale/tinystat"
)

const (
	DefaultSamples  = 100
	DefaultDuration = 10 * time.Millisecond
	DefaultTableFmt = "%-24s %-12s %-12s %-12s %-18s %-18s\n"
	DefaultFilename = "bench.json"
)

// Result represents a single benchmark result.
type Result struct {
	Name      string    `json:"name"`
	Samples   []float64 `json:"samples"`
	Allocs    []float64 `json:"-"`
	Timestamp int64     `json:"timestamp"`
}

// Option configures the benchmark runner.
type Option func(*config)

type config struct {
	filename string
	filter   string
	samples  int
	duration time.Duration
	tableFmt string
	showRef  bool
}

// WithFile sets the filename used to persist results across runs.
func WithFile(filename string) Option {
	return func(c *config) { c.filename = filename }
}

// WithFilter restricts execution to benchmarks whose name has the given prefix.
func WithFilter(prefix string) Option {
	return func(c *config) { c.filter = prefix }
}

// WithSamples sets the number of samples collected per benchmark.
func WithSamples(n int) Option {
	return func(c *config) { c.samples = n }
}

// WithDuration sets how long each sample runs for.
func WithDuration(d time.Duration) Option {
	return func(c *config) { c.duration = d }
}

// WithReference enables the reference-comparison column.
func WithReference() Option {
	return func(c *config) { c.showRef = true }
}

// B manages benchmarks and handles persistence.
type B struct {
	config
}

// Run executes benchmarks with the given configuration.
func Run(fn func(*B), opts ...Option) {
	cfg := config{
		filename: DefaultFilename,
		samples:  DefaultSamples,
		duration: DefaultDuration,
		tableFmt: DefaultTableFmt,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	runner := &B{config: cfg}
	runner.printHeader()
	fn(runner)
}

func (r *B) printHeader() {
	if r.showRef {
		fmt.Printf(r.tableFmt, "name", "time/op", "ops/s", "allocs/op", "vs prev", "vs ref")
		fmt.Printf(r.tableFmt, "------------------------", "------------", "------------", "------------", "------------------", "------------------")
		return
	}
	fmt.Printf("%-24s %-12s %-12s %-12s %-18s\n", "name", "time/op", "ops/s", "allocs/op", "vs prev")
	fmt.Printf("%-24s %-12s %-12s %-12s %-18s\n", "------------------------", "------------", "------------", "------------", "------------------")
}

func (r *B) shouldRun(name string) bool {
	if r.filter == "" {
		return true
	}
	return strings.HasPrefix(name, r.filter)
}

func (r *B) benchmark(fn func(int)) (samples []float64, allocs []float64) {
	samples = make([]float64, 0, r.samples)
	allocs = make([]float64, 0, r.samples)
	for s := 0; s < r.samples; s++ {
		runtime.GC()
		runtime.GC()

		var m1, m2 runtime.MemStats
		runtime.ReadMemStats(&m1)

		start := time.Now()
		ops := 0
		for time.Since(start) < r.duration {
			fn(ops)
			ops++
		}
		elapsed := time.Since(start)

		runtime.ReadMemStats(&m2)

		opsPerSec := float64(ops) / elapsed.Seconds()
		allocsPerOp := float64(m2.HeapAlloc-m1.HeapAlloc) / float64(ops)

		samples = append(samples, opsPerSec)
		allocs = append(allocs, allocsPerOp)
	}
	return samples, allocs
}

func (r *B) formatAllocs(allocsPerOp float64) string {
	if allocsPerOp >= 1000 {
		return fmt.Sprintf("%.1fK", allocsPerOp/1000)
	}
	return fmt.Sprintf("%.0f", allocsPerOp)
}

func (r *B) loadResults() map[string]Result {
	data, err := os.ReadFile(r.filename)
	if err != nil {
		return make(map[string]Result)
	}

	var results map[string]Result
	if err := json.Unmarshal(data, &results); err != nil {
		return make(map[string]Result)
	}
	return results
}

func (r *B) saveResult(result Result) {
	current := r.loadResults()
	current[result.Name] = result

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		fmt.Printf("error marshaling results: %v\n", err)
		return
	}
	if err := os.WriteFile(r.filename, data, 0644); err != nil {
		fmt.Printf("error writing results file: %v\n", err)
	}
}

func (r *B) formatComparison(ourSamples, otherSamples []float64) string {
	if len(otherSamples) == 0 {
		return "new"
	}

	our := tinystat.Summarize(ourSamples)
	other := tinystat.Summarize(otherSamples)
	if other.Mean == 0 {
		if our.Mean > 0 {
			return "faster: inf"
		}
		return "~ 1.00x"
	}

	speedup := our.Mean / other.Mean
	diff := tinystat.Compare(our, other, 99)
	if !diff.Significant() {
		return fmt.Sprintf("~ %.2fx (p=%.3f)", speedup, diff.PValue)
	}
	if speedup > 1 {
		return fmt.Sprintf("faster %.2fx (p=%.3f)", speedup, diff.PValue)
	}
	return fmt.Sprintf("slower %.2fx (p=%.3f)", speedup, diff.PValue)
}

func (r *B) formatTime(nsPerOp float64) string {
	if nsPerOp >= 1000000 {
		return fmt.Sprintf("%.1fms", nsPerOp/1000000)
	}
	return fmt.Sprintf("%.1fns", nsPerOp)
}

func (r *B) formatOps(opsPerSec float64) string {
	if opsPerSec >= 1000000 {
		return fmt.Sprintf("%.1fM", opsPerSec/1000000)
	}
	if opsPerSec >= 1000 {
		return fmt.Sprintf("%.1fK", opsPerSec/1000)
	}
	return fmt.Sprintf("%.0f", opsPerSec)
}

// Run executes a single named benchmark, optionally against a reference
// function, and persists the result for the next run's delta comparison.
func (r *B) Run(name string, ourFn func(int), refFn ...func(int)) {
	if !r.shouldRun(name) {
		return
	}

	prevResults := r.loadResults()

	ourSamples, ourAllocs := r.benchmark(ourFn)
	ourMean := tinystat.Summarize(ourSamples).Mean
	nsPerOp := 1e9 / ourMean

	var totalAllocs float64
	for _, v := range ourAllocs {
		totalAllocs += v
	}
	avgAllocsPerOp := totalAllocs / float64(len(ourSamples))

	result := Result{Name: name, Samples: ourSamples, Timestamp: time.Now().Unix()}

	delta := "new"
	if prev, ok := prevResults[name]; ok {
		delta = r.formatComparison(ourSamples, prev.Samples)
	}

	vsRef := ""
	if len(refFn) > 0 && refFn[0] != nil {
		refSamples, _ := r.benchmark(refFn[0])
		vsRef = r.formatComparison(ourSamples, refSamples)
	}

	if r.showRef {
		fmt.Printf(r.tableFmt, name, r.formatTime(nsPerOp), r.formatOps(ourMean), r.formatAllocs(avgAllocsPerOp), delta, vsRef)
	} else {
		fmt.Printf("%-24s %-12s %-12s %-12s %-18s\n", name, r.formatTime(nsPerOp), r.formatOps(ourMean), r.formatAllocs(avgAllocsPerOp), delta)
	}

	r.saveResult(result)
}
