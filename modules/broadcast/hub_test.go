package broadcast

import (
	"context"
	"testing"
	"time"
)

// waitForCount polls ClientCount until it matches or the deadline passes.
func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("ClientCount() = %d, want %d", h.ClientCount(), want)
}

func TestHub_RegisterUnregister(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	c1 := &Client{ID: "c1", UserID: "user-1"}
	c2 := &Client{ID: "c2", UserID: "user-2"}

	h.Register(c1)
	h.Register(c2)
	waitForCount(t, h, 2)

	h.Unregister(c1)
	waitForCount(t, h, 1)

	// Unregistering an unknown client is a no-op.
	h.Unregister(&Client{ID: "ghost", UserID: "nobody"})
	waitForCount(t, h, 1)

	h.Unregister(c2)
	waitForCount(t, h, 0)

	cancel()
	h.Wait()
}

func TestHub_ShutdownStopsLoop(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	cancel()

	stopped := make(chan struct{})
	go func() {
		h.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop after context cancellation")
	}
}
