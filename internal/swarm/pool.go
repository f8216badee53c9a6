package swarm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// PoolResult is the outcome of one pool item. Err is set when the
// worker function failed or panicked for that item.
type PoolResult[R any] struct {
	Value R
	Err   error
}

// runPool fans fn out over items with at most concurrency workers in
// flight. Workers claim the next unclaimed index from a shared atomic
// cursor. Exactly len(items) results come back and result[i] always
// corresponds to items[i] regardless of completion order. A panic or
// error in one item is recorded at its index and never aborts the pool.
func runPool[T, R any](ctx context.Context, items []T, concurrency int, fn func(ctx context.Context, index int, item T) (R, error)) []PoolResult[R] {
	results := make([]PoolResult[R], len(items))
	if len(items) == 0 {
		return results
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(items) {
					return
				}
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					continue
				}
				results[i] = runOne(ctx, i, items[i], fn)
			}
		}()
	}

	wg.Wait()
	return results
}

// runOne invokes fn for a single item with panic containment.
func runOne[T, R any](ctx context.Context, index int, item T, fn func(ctx context.Context, index int, item T) (R, error)) (res PoolResult[R]) {
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("worker panic on item %d: %v", index, r)
		}
	}()

	value, err := fn(ctx, index, item)
	res.Value = value
	res.Err = err
	return res
}
