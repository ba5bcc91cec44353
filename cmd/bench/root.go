package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/rMutex/cmd/util"
	"github.com/ValentinKolb/rMutex/lib/common"
	"github.com/ValentinKolb/rMutex/lib/lockmgr"
	"github.com/ValentinKolb/rMutex/lib/mutex"
	"github.com/ValentinKolb/rMutex/lib/stats"
	vmetrics "github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log = logger.GetLogger("bench")

	benchCmdConfig = &common.BenchConfig{}
	BenchCmd       = &cobra.Command{
		Use:     "bench",
		Short:   "Run a lock contention benchmark",
		Long:    `Run workers that contend for a set of named locks and report latencies, failed attempts and mutual exclusion violations. The configuration can be set via command line flags or environment variables. The format of the environment variables is RMUTEX_<flag> (e.g. RMUTEX_WORKERS=32)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "workers"
	BenchCmd.Flags().Int(key, 16, util.WrapString("Number of concurrent workers"))

	key = "keys"
	BenchCmd.Flags().Int(key, 4, util.WrapString("How many different lock keys the workers contend for"))

	key = "iterations"
	BenchCmd.Flags().Int(key, 1000, util.WrapString("Lock operations per worker"))

	key = "attempt-timeout"
	BenchCmd.Flags().Duration(key, 10*time.Millisecond, util.WrapString("Budget of a single attempt (e.g. 10ms). Zero uses blocking acquires instead"))

	key = "hold-time"
	BenchCmd.Flags().Duration(key, 100*time.Microsecond, util.WrapString("How long a worker keeps a lock once it got it"))

	key = "hold-count"
	BenchCmd.Flags().Bool(key, false, util.WrapString("Whether nested acquisitions must be balanced by releases (every worker re-enters its lock once)"))

	key = "metrics"
	BenchCmd.Flags().Bool(key, false, util.WrapString("Print the collected metrics in Prometheus text format after the run"))

	util.SetupLoggingFlags(BenchCmd)
}

// processConfig reads the configuration from the command line flags and environment variables
func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	benchCmdConfig.Workers = viper.GetInt("workers")
	benchCmdConfig.Keys = viper.GetInt("keys")
	benchCmdConfig.Iterations = viper.GetInt("iterations")
	benchCmdConfig.AttemptTimeout = viper.GetDuration("attempt-timeout")
	benchCmdConfig.HoldTime = viper.GetDuration("hold-time")
	benchCmdConfig.HoldCount = viper.GetBool("hold-count")
	benchCmdConfig.PrintMetrics = viper.GetBool("metrics")
	benchCmdConfig.LogLevel = viper.GetString("log-level")

	if err := benchCmdConfig.Validate(); err != nil {
		return err
	}
	return common.InitLoggers(benchCmdConfig.LogLevel)
}

func run(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Lock contention benchmark")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintln(out, benchCmdConfig.String())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := Run(ctx, *benchCmdConfig)
	if err != nil {
		return err
	}
	res.Print(out)

	if benchCmdConfig.PrintMetrics {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "METRICS")
		vmetrics.WritePrometheus(out, false)
	}

	if res.Violations > 0 {
		return fmt.Errorf("mutual exclusion violated %d times", res.Violations)
	}
	return nil
}

// --------------------------------------------------------------------------
// Benchmark runner
// --------------------------------------------------------------------------

// Result is the outcome of a benchmark run
type Result struct {
	Acquired    int64
	Failed      int64
	Interrupted int64
	Violations  int64
	Elapsed     time.Duration
	// Spread of the acquisitions over the workers
	Fairness stats.Fairness
	// Latency of the lock calls, successful or not
	Latency gometrics.Timer
}

// Run executes the benchmark described by cfg. A cancelled ctx stops all
// workers, their pending lock calls are counted as interrupted.
func Run(ctx context.Context, cfg common.BenchConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []mutex.Option
	if cfg.HoldCount {
		opts = append(opts, mutex.WithHoldCount())
	}
	mgr := lockmgr.NewLockManager(opts...)

	keys := make([]string, cfg.Keys)
	inside := make([]atomic.Int32, cfg.Keys)
	for i := range keys {
		keys[i] = fmt.Sprintf("bench:%d", i)
	}

	res := &Result{Latency: gometrics.NewTimer()}
	var acquired, failed, interrupted, violations atomic.Int64
	perWorker := make([]int64, cfg.Workers)

	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	start := time.Now()

	for w := 0; w < cfg.Workers; w++ {
		go func(worker int) {
			defer wg.Done()
			me := mutex.NewOwner()
			log.Debugf("worker %d started as %s", worker, me)

			for i := 0; i < cfg.Iterations; i++ {
				idx := rand.Intn(len(keys))
				key := keys[idx]

				callStart := time.Now()
				var ok bool
				var err error
				if cfg.AttemptTimeout > 0 {
					ok, err = mgr.AttemptLock(ctx, key, me, cfg.AttemptTimeout)
				} else {
					ok, err = mgr.AcquireLock(ctx, key, me)
				}
				res.Latency.UpdateSince(callStart)

				switch {
				case errors.Is(err, mutex.ErrInterrupted):
					interrupted.Add(1)
					return
				case err != nil:
					log.Errorf("worker %d: %v", worker, err)
					return
				case !ok:
					failed.Add(1)
					continue
				}
				acquired.Add(1)
				perWorker[worker]++

				if n := inside[idx].Add(1); n != 1 {
					violations.Add(1)
					log.Errorf("worker %d: %d holders of %s", worker, n, key)
				}
				if cfg.HoldCount {
					// a nested section that releases on its own
					if ok, _ := mgr.AttemptLock(ctx, key, me, 0); ok {
						mgr.ReleaseLock(key, me)
					}
				}
				if cfg.HoldTime > 0 {
					time.Sleep(cfg.HoldTime)
				}
				inside[idx].Add(-1)

				if !mgr.ReleaseLock(key, me) {
					log.Warningf("worker %d: release of %s had no effect", worker, key)
				}
			}
		}(w)
	}

	wg.Wait()

	res.Elapsed = time.Since(start)
	res.Acquired = acquired.Load()
	res.Failed = failed.Load()
	res.Interrupted = interrupted.Load()
	res.Violations = violations.Load()
	res.Fairness = stats.NewFairness(perWorker)
	return res, nil
}

// Print writes a human readable report of the result
func (r *Result) Print(w io.Writer) {
	snap := r.Latency.Snapshot()
	ps := snap.Percentiles([]float64{0.5, 0.9, 0.99})

	fmt.Fprintln(w, "RESULTS")
	fmt.Fprintf(w, "  %-22s: %v\n", "Elapsed", r.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  %-22s: %d\n", "Lock Calls", snap.Count())
	fmt.Fprintf(w, "  %-22s: %d\n", "Acquired", r.Acquired)
	fmt.Fprintf(w, "  %-22s: %d\n", "Failed Attempts", r.Failed)
	fmt.Fprintf(w, "  %-22s: %d\n", "Interrupted", r.Interrupted)
	fmt.Fprintf(w, "  %-22s: %d\n", "Violations", r.Violations)
	if r.Elapsed > 0 {
		fmt.Fprintf(w, "  %-22s: %.0f ops/s\n", "Throughput", float64(r.Acquired)/r.Elapsed.Seconds())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "FAIRNESS")
	fmt.Fprintf(w, "  %-22s: %.0f / %.1f / %.0f\n", "Per Worker min/mean/max", r.Fairness.Min, r.Fairness.Mean, r.Fairness.Max)
	fmt.Fprintf(w, "  %-22s: %.2f\n", "Quality", r.Fairness.Quality)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "LATENCY")
	fmt.Fprintf(w, "  %-22s: %v\n", "Mean", time.Duration(snap.Mean()))
	fmt.Fprintf(w, "  %-22s: %v\n", "p50", time.Duration(ps[0]))
	fmt.Fprintf(w, "  %-22s: %v\n", "p90", time.Duration(ps[1]))
	fmt.Fprintf(w, "  %-22s: %v\n", "p99", time.Duration(ps[2]))
	fmt.Fprintf(w, "  %-22s: %v\n", "Max", time.Duration(snap.Max()))
}
