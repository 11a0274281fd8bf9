// Package scheduler batches component updates.
//
// QueueJob records a job once per flush and requests a flush as a
// microtask. Microtasks run at the next checkpoint: either an explicit
// RunMicrotasks call or, inside a Loop, after every dispatched task. All
// jobs queued before the checkpoint run exactly once, in the order they
// were first queued.
//
//	s := scheduler.New()
//	job := scheduler.NewJob(render)
//	s.QueueJob(job)
//	s.QueueJob(job) // deduplicated
//	s.NextTick(func() { fmt.Println("after render") })
//	s.RunMicrotasks()
//
// Loop is the single goroutine that owns a tree: it runs dispatched tasks
// one at a time and drains the microtask queue after each.
package scheduler
