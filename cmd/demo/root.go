package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ValentinKolb/rMutex/cmd/util"
	"github.com/ValentinKolb/rMutex/lib/common"
	"github.com/ValentinKolb/rMutex/lib/mutex"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	stepDelay time.Duration

	DemoCmd = &cobra.Command{
		Use:     "demo",
		Short:   "Walk through the locking scenarios",
		Long:    `Run the basic locking scenarios (non-blocking try, reentrancy, timed attempts, interruption) against a fresh mutex each and print a trace of every step.`,
		PreRunE: processConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunScenarios(cmd.Context(), cmd.OutOrStdout(), stepDelay)
		},
	}
)

func init() {
	key := "step-delay"
	DemoCmd.Flags().Duration(key, 50*time.Millisecond, util.WrapString("Time budget used for the timed steps of the scenarios"))

	util.SetupLoggingFlags(DemoCmd)
}

func processConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	stepDelay = viper.GetDuration("step-delay")
	if stepDelay <= 0 {
		return fmt.Errorf("step-delay must be positive, got %v", stepDelay)
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// --------------------------------------------------------------------------
// Scenarios
// --------------------------------------------------------------------------

// tracer prints the steps of a scenario and records the first failed expectation
type tracer struct {
	w     io.Writer
	start time.Time
	err   error
}

func (t *tracer) step(actor, format string, args ...interface{}) {
	fmt.Fprintf(t.w, "  [%6s] %-2s %s\n", time.Since(t.start).Round(time.Millisecond), actor, fmt.Sprintf(format, args...))
}

func (t *tracer) expect(cond bool, format string, args ...interface{}) {
	if !cond && t.err == nil {
		t.err = fmt.Errorf(format, args...)
		fmt.Fprintf(t.w, "  !! %v\n", t.err)
	}
}

type scenario struct {
	name string
	run  func(ctx context.Context, t *tracer, d time.Duration)
}

var scenarios = []scenario{
	{"try", tryScenario},
	{"reentrancy", reentrancyScenario},
	{"timed attempt", timedScenario},
	{"interruption", interruptionScenario},
}

// RunScenarios runs every scenario and writes the trace to w.
// d is the time budget of the timed steps.
func RunScenarios(ctx context.Context, w io.Writer, d time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, s := range scenarios {
		fmt.Fprintf(w, "\n%s\n", s.name)
		t := &tracer{w: w, start: time.Now()}
		s.run(ctx, t, d)
		if t.err != nil {
			return fmt.Errorf("scenario %s: %w", s.name, t.err)
		}
	}
	return nil
}

func tryScenario(ctx context.Context, t *tracer, _ time.Duration) {
	m := mutex.NewMutex(mutex.WithName("demo-try"))
	a, b := mutex.NewOwner(), mutex.NewOwner()

	ok, err := m.Acquire(ctx, a)
	t.step("A", "acquire() = %v, %v", ok, err)
	t.expect(ok && err == nil, "A could not acquire a free lock")

	ok, err = m.Attempt(ctx, b, 0)
	t.step("B", "attempt(0) = %v, %v", ok, err)
	t.expect(!ok && err == nil, "B obtained a held lock")

	t.step("A", "release() = %v", m.Release(a))

	ok, err = m.Attempt(ctx, b, 0)
	t.step("B", "attempt(0) = %v, %v", ok, err)
	t.expect(ok && err == nil, "B could not obtain a released lock")
}

func reentrancyScenario(ctx context.Context, t *tracer, _ time.Duration) {
	for _, counting := range []bool{false, true} {
		var opts []mutex.Option
		if counting {
			opts = append(opts, mutex.WithHoldCount())
		}
		m := mutex.NewMutex(append(opts, mutex.WithName("demo-reentrancy"))...)
		a, b := mutex.NewOwner(), mutex.NewOwner()
		t.step("", "hold count = %v", counting)

		ok1, _ := m.Acquire(ctx, a)
		ok2, _ := m.Acquire(ctx, a)
		t.step("A", "acquire() twice = %v, %v", ok1, ok2)
		t.step("A", "release() = %v", m.Release(a))

		ok, _ := m.Attempt(ctx, b, 0)
		t.step("B", "attempt(0) = %v", ok)
		t.expect(ok != counting, "unexpected state after one release (hold count = %v)", counting)

		if counting {
			t.step("A", "release() = %v", m.Release(a))
			ok, _ = m.Attempt(ctx, b, 0)
			t.step("B", "attempt(0) = %v", ok)
			t.expect(ok, "lock still held after balanced releases")
		}
	}
}

func timedScenario(ctx context.Context, t *tracer, d time.Duration) {
	m := mutex.NewMutex(mutex.WithName("demo-timed"))
	a, b := mutex.NewOwner(), mutex.NewOwner()

	_, _ = m.Acquire(ctx, a)
	t.step("A", "acquire()")

	start := time.Now()
	ok, err := m.Attempt(ctx, b, d)
	elapsed := time.Since(start)
	t.step("B", "attempt(%v) = %v, %v after %v", d, ok, err, elapsed.Round(time.Millisecond))
	t.expect(!ok && elapsed >= d, "attempt returned %v after %v", ok, elapsed)

	go func() {
		time.Sleep(d)
		m.Release(a)
	}()
	ok, err = m.Attempt(ctx, b, 10*d)
	t.step("B", "attempt(%v) = %v, %v (A released after %v)", 10*d, ok, err, d)
	t.expect(ok && err == nil, "B did not obtain a lock released before its deadline")
}

func interruptionScenario(ctx context.Context, t *tracer, d time.Duration) {
	m := mutex.NewMutex(mutex.WithName("demo-interruption"))
	a, b, c := mutex.NewOwner(), mutex.NewOwner(), mutex.NewOwner()

	_, _ = m.Acquire(ctx, a)
	t.step("A", "acquire()")

	ctxB, cancelB := context.WithCancel(ctx)
	defer cancelB()
	resB := make(chan error, 1)
	go func() {
		_, err := m.Acquire(ctxB, b)
		resB <- err
	}()
	resC := make(chan bool, 1)
	go func() {
		ok, _ := m.Acquire(ctx, c)
		resC <- ok
	}()

	time.Sleep(d)
	t.step("B", "cancelled while blocked")
	cancelB()
	errB := <-resB
	t.step("B", "acquire() failed: %v", errB)
	t.expect(errors.Is(errB, mutex.ErrInterrupted), "B returned %v", errB)

	owner, _ := m.Owner()
	t.expect(owner == a, "owner changed to %s", owner)

	t.step("A", "release() = %v", m.Release(a))
	select {
	case ok := <-resC:
		t.step("C", "acquire() = %v", ok)
		t.expect(ok, "C could not acquire")
	case <-time.After(10 * d):
		t.expect(false, "C was stranded")
	}
}
