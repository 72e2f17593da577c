package telemetry

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

// Collector implements store.MetricsCollector on a private metrics.Set,
// so several collectors can coexist (one per test, one per process).
type Collector struct {
	set      *metrics.Set
	counters *xsync.MapOf[string, *metrics.Counter] // series name -> registered counter
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		set:      metrics.NewSet(),
		counters: xsync.NewMapOf[string, *metrics.Counter](),
	}
}

// IncrementCounter bumps the counter identified by metric and labels,
// registering the series on first use.
func (c *Collector) IncrementCounter(metric string, labels map[string]string) {
	name := seriesName(metric, labels)
	counter, _ := c.counters.LoadOrCompute(name, func() *metrics.Counter {
		return c.set.GetOrCreateCounter(name)
	})
	counter.Inc()
}

// RecordDuration adds duration, in seconds, to a histogram.
func (c *Collector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	c.set.GetOrCreateHistogram(seriesName(metric, labels)).Update(duration.Seconds())
}

// Counter returns the current value of a counter, 0 if it was never touched.
// Reading does not register the series.
func (c *Collector) Counter(metric string, labels map[string]string) uint64 {
	counter, ok := c.counters.Load(seriesName(metric, labels))
	if !ok {
		return 0
	}
	return counter.Get()
}

// WritePrometheus writes every series in Prometheus text format.
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// seriesName renders `metric{k1="v1",k2="v2"}` with keys sorted, which is
// the identity VictoriaMetrics uses for a series.
func seriesName(metric string, labels map[string]string) string {
	if len(labels) == 0 {
		return metric
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return metric + "{" + strings.Join(pairs, ",") + "}"
}
