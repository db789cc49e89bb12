package shutdownqueue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func reset() {
	q.mu.Lock()
	q.tasks = nil
	q.closed = false
	q.mu.Unlock()
}

func TestShutdown_RunsLIFO(t *testing.T) {
	reset()

	var order []int

	for i := 1; i <= 3; i++ {
		i := i
		Add(func(context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	err := Shutdown(context.Background())
	if err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	want := []int{3, 2, 1}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order: want %v, got %v", want, order)
		}
	}
}

func TestShutdown_AggregatesErrors(t *testing.T) {
	reset()

	boom := errors.New("boom")

	Add(func(context.Context) error { return boom })
	Add(func(context.Context) error { return nil })
	Add(func(context.Context) error { panic("kaput") })

	err := Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("want boom in joined error, got %v", err)
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	reset()

	var runs int

	Add(func(context.Context) error {
		runs++
		return nil
	})

	_ = Shutdown(context.Background())
	_ = Shutdown(context.Background())

	if runs != 1 {
		t.Fatalf("task ran %d times, want 1", runs)
	}
}

func TestShutdown_ContextCancel(t *testing.T) {
	reset()

	var second bool

	Add(func(context.Context) error {
		second = true
		return nil
	})
	Add(func(ctx context.Context) error {
		// runs first (LIFO); burn past the deadline
		time.Sleep(20 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := Shutdown(ctx)
	if err == nil {
		t.Fatal("want context error")
	}
	if second {
		t.Fatal("task after cancellation should not have run")
	}
}
