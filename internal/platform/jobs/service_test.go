package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunNow_ReturnsJobResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := New()
	svc.Start(ctx)

	value, err := svc.RunNow(ctx, JobPayrollRun, func(context.Context) (any, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("RunNow returned error: %v", err)
	}
	if value != 42 {
		t.Fatalf("expected 42, got %v", value)
	}
}

func TestRunNow_SerializesJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := New()
	svc.Start(ctx)

	var running int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RunNow(ctx, JobPayrollRun, func(context.Context) (any, error) {
				if atomic.AddInt32(&running, 1) != 1 {
					t.Error("two jobs ran concurrently")
				}
				defer atomic.AddInt32(&running, -1)
				return nil, nil
			})
			if err != nil {
				t.Errorf("RunNow returned error: %v", err)
			}
		}()
	}
	wg.Wait()
}
