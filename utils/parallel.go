// Package utils contains small helpers shared by the modtree packages.
package utils

import (
	"runtime"
	"sync"

	"go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// ParallelForEach runs work(i) for every i in [0, n), fanned out over at most
// ParallelFactor goroutines. Each goroutine owns one contiguous index range,
// so work funcs that only write state addressed by their own index need no
// locking. Blocks until all work has finished.
func ParallelForEach(n int, work func(i int)) {
	if n <= 0 {
		return
	}
	workers := ParallelFactor
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wait sync.WaitGroup
	for from := 0; from < n; from += chunk {
		to := from + chunk
		if to > n {
			to = n
		}
		fromCopy, toCopy := from, to
		wait.Add(1)
		utils.PanicCapturingGo(func() {
			defer wait.Done()
			for i := fromCopy; i < toCopy; i++ {
				work(i)
			}
		})
	}
	wait.Wait()
}
