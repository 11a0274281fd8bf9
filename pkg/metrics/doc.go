// Package metrics exports Prometheus metrics for the scheduler, the host
// adapter and live sessions.
//
// A Collector implements scheduler.Observer, so passing it with
// scheduler.WithObserver counts queued, deduplicated and flushed jobs.
// Host wraps any host adapter and counts operations by kind:
//
//	c := metrics.New(metrics.WithRegistry(reg))
//	sched := scheduler.New(scheduler.WithObserver(c))
//	r := runtime.NewRenderer(metrics.Host(memhost.New(), c), runtime.WithScheduler(sched))
package metrics
