// Package parallel runs image work split into contiguous row ranges.
//
// Every ggedit filter shares one fork-join pattern: the destination height is
// cut into at most N disjoint [Start, End) row ranges by PartitionRows, and
// Executor.Run starts one goroutine per range and blocks until all of them
// return. Because the ranges are disjoint, workers never write the same
// destination sample and no locking is required.
//
// An Executor carries a budget of concurrently running workers. When a worker
// cannot be admitted, the range it would have served and every later range run
// synchronously on the calling goroutine. The result is the same; only the
// degree of parallelism drops. Such fallbacks are logged at Warn level and
// counted by Executor.Fallbacks.
package parallel
