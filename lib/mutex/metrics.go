package mutex

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// lockMetrics holds the metrics of all mutexes sharing a name
type lockMetrics struct {
	acquired       *metrics.Counter
	reentered      *metrics.Counter
	failed         *metrics.Counter
	interrupted    *metrics.Counter
	released       *metrics.Counter
	releaseIgnored *metrics.Counter
	waitSeconds    *metrics.Histogram
}

func newLockMetrics(name string) *lockMetrics {
	label := func(metric string) string {
		return fmt.Sprintf(`%s{mutex=%q}`, metric, name)
	}
	return &lockMetrics{
		acquired:       metrics.GetOrCreateCounter(label("rmutex_acquired_total")),
		reentered:      metrics.GetOrCreateCounter(label("rmutex_reentered_total")),
		failed:         metrics.GetOrCreateCounter(label("rmutex_attempts_failed_total")),
		interrupted:    metrics.GetOrCreateCounter(label("rmutex_interrupted_total")),
		released:       metrics.GetOrCreateCounter(label("rmutex_released_total")),
		releaseIgnored: metrics.GetOrCreateCounter(label("rmutex_release_ignored_total")),
		waitSeconds:    metrics.GetOrCreateHistogram(label("rmutex_wait_seconds")),
	}
}

// observeWait records how long a caller was parked
func (lm *lockMetrics) observeWait(start time.Time) {
	lm.waitSeconds.UpdateDuration(start)
}
