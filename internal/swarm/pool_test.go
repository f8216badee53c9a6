package swarm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunPool_IndexAlignmentAndConcurrency(t *testing.T) {
	items := make([]int, 10)
	for i := range items {
		items[i] = i * 10
	}

	var inFlight, maxInFlight atomic.Int64
	results := runPool(context.Background(), items, 3, func(ctx context.Context, index int, item int) (string, error) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			prev := maxInFlight.Load()
			if cur <= prev || maxInFlight.CompareAndSwap(prev, cur) {
				break
			}
		}
		time.Sleep(time.Duration(10-index) * time.Millisecond)
		return fmt.Sprintf("item-%d", item), nil
	})

	if len(results) != 10 {
		t.Fatalf("got %d results for 10 items", len(results))
	}
	for i, res := range results {
		want := fmt.Sprintf("item-%d", items[i])
		if res.Err != nil {
			t.Errorf("item %d failed: %v", i, res.Err)
		}
		if res.Value != want {
			t.Errorf("result[%d] = %q, want %q", i, res.Value, want)
		}
	}
	if maxInFlight.Load() > 3 {
		t.Errorf("max in-flight = %d, concurrency limit is 3", maxInFlight.Load())
	}
}

func TestRunPool_ErrorIsolation(t *testing.T) {
	boom := errors.New("boom")
	items := []int{0, 1, 2, 3}
	results := runPool(context.Background(), items, 2, func(ctx context.Context, index int, item int) (int, error) {
		if item == 2 {
			return 0, boom
		}
		return item * 2, nil
	})

	for i, res := range results {
		if i == 2 {
			if !errors.Is(res.Err, boom) {
				t.Errorf("failing item error = %v, want boom", res.Err)
			}
			continue
		}
		if res.Err != nil {
			t.Errorf("item %d affected by sibling failure: %v", i, res.Err)
		}
		if res.Value != items[i]*2 {
			t.Errorf("result[%d] = %d, want %d", i, res.Value, items[i]*2)
		}
	}
}

func TestRunPool_PanicContained(t *testing.T) {
	items := []string{"a", "b", "c"}
	results := runPool(context.Background(), items, 3, func(ctx context.Context, index int, item string) (string, error) {
		if item == "b" {
			panic("worker exploded")
		}
		return strings.ToUpper(item), nil
	})

	if results[1].Err == nil || !strings.Contains(results[1].Err.Error(), "panic") {
		t.Errorf("panic not recorded as error: %v", results[1].Err)
	}
	if results[0].Value != "A" || results[2].Value != "C" {
		t.Errorf("siblings affected by panic: %+v", results)
	}
}

func TestRunPool_EmptyItems(t *testing.T) {
	results := runPool(context.Background(), nil, 5, func(ctx context.Context, index int, item int) (int, error) {
		t.Error("worker invoked with no items")
		return 0, nil
	})
	if len(results) != 0 {
		t.Errorf("got %d results for empty input", len(results))
	}
}

func TestRunPool_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []int{1, 2, 3}
	results := runPool(ctx, items, 2, func(ctx context.Context, index int, item int) (int, error) {
		return item, nil
	})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("item %d ran despite canceled context: %v", i, res.Err)
		}
	}
}
