package batch

import (
	"context"
	"sync"
)

// forEach calls fn for each index in [0, n) using up to workers goroutines.
// Indices not yet started when ctx is cancelled are skipped.
func forEach(ctx context.Context, workers, n int, fn func(ctx context.Context, i int)) {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(ctx, i)
			}
		}()
	}

	defer func() {
		close(jobs)
		wg.Wait()
	}()

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case jobs <- i:
		}
	}
}
