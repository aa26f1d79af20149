// File: cmd/persistbench/main.go
// Author: momentics <momentics@gmail.com>
//
// Latency harness for the persistbuf pool. Drives the pool with random
// buffer sizes across the acquire/release, acquire-from, batch-release and
// ring-pipeline scenarios, reports per-scenario totals, and can run the same
// loops against sync.Pool and bytebufferpool baselines for comparison.

package main

import (
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/valyala/bytebufferpool"

	"github.com/momentics/persistbuf/api"
	"github.com/momentics/persistbuf/control"
	"github.com/momentics/persistbuf/pool"
	"github.com/momentics/persistbuf/trace"
)

var (
	flagMaxSize     int
	flagIterations  int
	flagBatchSize   int
	flagCompare     bool
	flagTrace       bool
	flagCleanup     time.Duration
	flagPipelineCap uint64
)

var rootCmd = &cobra.Command{
	Use:   "persistbench",
	Short: "Latency harness for the persistbuf recyclable buffer pool",
	RunE:  run,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagMaxSize, "max-size", 500000, "upper bound for any requested buffer size")
	flags.IntVar(&flagIterations, "iterations", 1000000, "iterations per scenario")
	flags.IntVar(&flagBatchSize, "batch-size", 10, "handles per batched release")
	flags.BoolVar(&flagCompare, "compare", false, "also run sync.Pool and bytebufferpool baselines")
	flags.BoolVar(&flagTrace, "trace", false, "attach the allocation tracker and log lifecycle events")
	flags.DurationVar(&flagCleanup, "cleanup-timeout", 0, "age-based reclamation timeout (0 disables)")
	flags.Uint64Var(&flagPipelineCap, "pipeline-cap", 1024, "handle ring capacity for the pipeline scenario (power of two)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if flagTrace {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	var opts []pool.Option
	var tracker *trace.Tracker
	if flagTrace {
		tracker = trace.New(logger)
		opts = append(opts, pool.WithTracker(tracker))
	}

	pool.Initialize(opts...)
	p := pool.Default()
	if flagCleanup > 0 {
		p.SetCleanupTimeout(flagCleanup)
	}

	probes := control.NewDebugProbes()
	control.RegisterPoolProbes(probes, p)
	control.RegisterPlatformProbes(probes)
	if tracker != nil {
		control.RegisterTrackerProbes(probes, tracker)
	}

	metrics := control.NewMetricsRegistry()
	requests := 0

	elapsed := runAcquireRelease(p, flagMaxSize, flagIterations)
	metrics.AddDuration("scenario.acquire_release.ms", elapsed)
	requests += flagIterations
	logger.Info().Float64("ms", ms(elapsed)).Msg("acquire/release")

	elapsed = runAcquireFrom(p, flagIterations)
	metrics.AddDuration("scenario.acquire_from.ms", elapsed)
	requests += flagIterations
	logger.Info().Float64("ms", ms(elapsed)).Msg("acquire-from")

	elapsed = runBatchRelease(p, flagMaxSize, flagIterations, flagBatchSize)
	metrics.AddDuration("scenario.batch_release.ms", elapsed)
	requests += flagIterations * flagBatchSize
	logger.Info().Float64("ms", ms(elapsed)).Msg("batch release")

	elapsed = runPipeline(p, flagMaxSize, flagIterations, flagPipelineCap)
	metrics.AddDuration("scenario.pipeline.ms", elapsed)
	requests += flagIterations
	logger.Info().Float64("ms", ms(elapsed)).Msg("ring pipeline")

	logger.Info().
		Int("allocated", p.BuffersAllocated()).
		Int("requests", requests).
		Msg("buffers allocated out of total buffer requests")
	logger.Info().Interface("state", probes.DumpState()).Msg("pool state")
	logger.Info().Interface("metrics", metrics.GetSnapshot()).Msg("scenario totals")

	if flagCompare {
		runBaselines(logger, flagMaxSize, flagIterations)
	}

	if tracker != nil {
		if err := tracker.Close(); err != nil {
			return err
		}
	}
	return nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func randSize(maxSize int) uint32 {
	return uint32(1 + rand.Intn(maxSize))
}

// runAcquireRelease times single acquires and releases of random sizes.
func runAcquireRelease(p api.Pool, maxSize, iters int) time.Duration {
	var total time.Duration
	for i := 0; i < iters; i++ {
		start := time.Now()
		b := p.Acquire(randSize(maxSize))
		total += time.Since(start)

		start = time.Now()
		p.Release(b)
		total += time.Since(start)
	}
	return total
}

// runAcquireFrom times acquires with copy-in of a shuffled payload.
func runAcquireFrom(p api.Pool, iters int) time.Duration {
	payload := []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
	var total time.Duration
	for i := 0; i < iters; i++ {
		rand.Shuffle(len(payload), func(a, b int) {
			payload[a], payload[b] = payload[b], payload[a]
		})

		start := time.Now()
		b := p.AcquireFrom(payload)
		total += time.Since(start)

		start = time.Now()
		p.Release(b)
		total += time.Since(start)
	}
	return total
}

// runBatchRelease times only the batched release of batchSize handles.
func runBatchRelease(p api.Pool, maxSize, iters, batchSize int) time.Duration {
	batch := pool.NewBatch(batchSize)
	var total time.Duration
	for i := 0; i < iters; i++ {
		for j := 0; j < batchSize; j++ {
			batch.Append(p.Acquire(randSize(maxSize)))
		}
		start := time.Now()
		batch.ReleaseTo(p)
		total += time.Since(start)
	}
	return total
}

// runPipeline hands acquired buffers to a releasing goroutine through a
// lock-free handle ring, timing the whole pipeline.
func runPipeline(p api.Pool, maxSize, iters int, ringCap uint64) time.Duration {
	ring := pool.NewHandleRing(ringCap)
	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		released := 0
		for released < iters {
			b, ok := ring.Dequeue()
			if !ok {
				runtime.Gosched()
				continue
			}
			p.Release(b)
			released++
		}
	}()

	for i := 0; i < iters; i++ {
		b := p.Acquire(randSize(maxSize))
		for !ring.Enqueue(b) {
			runtime.Gosched()
		}
	}
	wg.Wait()
	return time.Since(start)
}

// runBaselines drives the same acquire/release loop over sync.Pool and
// bytebufferpool for a rough comparison. Neither baseline offers best-fit
// capacity matching or age-based reclamation, so the comparison is about raw
// handle turnaround only.
func runBaselines(logger zerolog.Logger, maxSize, iters int) {
	sp := sync.Pool{
		New: func() any {
			b := make([]byte, 0, maxSize)
			return &b
		},
	}
	start := time.Now()
	for i := 0; i < iters; i++ {
		n := int(randSize(maxSize))
		buf := sp.Get().(*[]byte)
		if cap(*buf) < n {
			nb := make([]byte, n)
			buf = &nb
		}
		*buf = (*buf)[:n]
		sp.Put(buf)
	}
	logger.Info().Float64("ms", ms(time.Since(start))).Msg("baseline sync.Pool")

	start = time.Now()
	for i := 0; i < iters; i++ {
		n := int(randSize(maxSize))
		bb := bytebufferpool.Get()
		if cap(bb.B) < n {
			bb.B = make([]byte, n)
		} else {
			bb.B = bb.B[:n]
		}
		bytebufferpool.Put(bb)
	}
	logger.Info().Float64("ms", ms(time.Since(start))).Msg("baseline bytebufferpool")
}
