package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	// Leader blocks inside fn, keeping the key in flight while the
	// waiters line up behind it.
	leaderResult := make(chan any, 1)
	go func() {
		val, err, _ := flight.Do("leaderboard:c1", func() (any, error) {
			executions.Add(1)
			close(entered)
			<-release
			return 42, nil
		})
		if err != nil {
			t.Errorf("leader error: %v", err)
		}
		leaderResult <- val
	}()
	<-entered

	const waiters = 8
	var queued, wg sync.WaitGroup
	results := make([]any, waiters)
	shared := make([]bool, waiters)
	for i := 0; i < waiters; i++ {
		i := i
		queued.Add(1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			queued.Done()
			val, err, wasShared := flight.Do("leaderboard:c1", func() (any, error) {
				executions.Add(1)
				return nil, nil
			})
			if err != nil {
				t.Errorf("waiter %d error: %v", i, err)
			}
			results[i] = val
			shared[i] = wasShared
		}()
	}
	queued.Wait()
	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected a single execution, got %d", got)
	}
	if val := <-leaderResult; val != 42 {
		t.Fatalf("leader got %v, want 42", val)
	}
	for i, val := range results {
		if val != 42 {
			t.Fatalf("waiter %d got %v, want 42", i, val)
		}
		if !shared[i] {
			t.Fatalf("waiter %d did not share the leader's result", i)
		}
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	a, _, _ := flight.Do("a", func() (any, error) { return "a", nil })
	b, _, _ := flight.Do("b", func() (any, error) { return "b", nil })

	if a != "a" || b != "b" {
		t.Fatalf("unexpected results: %v, %v", a, b)
	}
}
