// Package worker provides the bounded fan-out used by the scraping
// stage: independent fetches run on a fixed number of goroutines and
// their results are merged back by input index, so the output order
// never depends on scheduling.
package worker

import (
	"context"
	"sync"
)

// Map runs fn over every input on at most workers goroutines and
// returns the results in input order. A cancelled context stops
// workers from picking up new inputs; unprocessed slots keep the zero
// value of O.
func Map[I, O any](ctx context.Context, workers int, inputs []I, fn func(context.Context, I) O) []O {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	out := make([]O, len(inputs))
	if len(inputs) == 0 {
		return out
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = fn(ctx, inputs[i])
			}
		}()
	}

	for i := range inputs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return out
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return out
}
