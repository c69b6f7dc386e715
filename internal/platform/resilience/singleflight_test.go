package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var executions atomic.Int32
	var shared atomic.Int32

	const callers = 16
	gate := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-gate
			v, err, wasShared := g.Do("fetch:week:23", func() (any, error) {
				executions.Add(1)
				time.Sleep(15 * time.Millisecond)
				return "payload", nil
			})
			if err != nil {
				t.Errorf("Do returned error: %v", err)
				return
			}
			if v != "payload" {
				t.Errorf("unexpected value %v", v)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}
	close(gate)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("fn executed %d times, want 1", got)
	}
	if got := shared.Load(); got != callers-1 {
		t.Fatalf("%d callers reported shared results, want %d", got, callers-1)
	}
}

func TestSingleFlight_KeyReusableAfterCompletion(t *testing.T) {
	var g SingleFlight
	var executions int

	for i := 0; i < 2; i++ {
		if _, err, _ := g.Do("k", func() (any, error) {
			executions++
			return nil, nil
		}); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	if executions != 2 {
		t.Fatalf("sequential calls should each execute, got %d", executions)
	}
}
