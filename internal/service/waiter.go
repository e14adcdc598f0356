package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a client can wait for notifications
	WaitTimeout = 25 * time.Second
)

// WaitRegistry manages long-polling clients waiting for a game to change
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string][]*WaitRequest // gameID → waiting clients
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

// WaitRequest is a single client waiting for game updates
type WaitRequest struct {
	Plies  int           // Last known ply count
	Done   chan struct{} // Closed exactly once when the wait ends
	GameID string
	once   sync.Once
	timer  *time.Timer
}

func (r *WaitRequest) release() {
	r.once.Do(func() {
		r.timer.Stop()
		close(r.Done)
	})
}

// NewWaitRegistry creates a new wait registry
func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string][]*WaitRequest),
		shutdown: make(chan struct{}),
	}
}

// RegisterWait registers a client to wait for a ply count other than plies
func (w *WaitRegistry) RegisterWait(gameID string, plies int, ctx context.Context) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	req := &WaitRequest{
		Plies:  plies,
		Done:   make(chan struct{}),
		GameID: gameID,
	}
	req.timer = time.AfterFunc(WaitTimeout, func() {
		w.removeWaiter(gameID, req)
		req.release()
	})

	if w.closed {
		req.release()
		return req.Done
	}

	w.waiters[gameID] = append(w.waiters[gameID], req)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			// Client disconnected
			w.removeWaiter(gameID, req)
			req.release()
		case <-req.Done:
		case <-w.shutdown:
			req.release()
		}
	}()

	return req.Done
}

// NotifyGame releases waiters on gameID whose ply count is stale
func (w *WaitRegistry) NotifyGame(gameID string, plies int) {
	w.mu.Lock()
	var fired, kept []*WaitRequest
	for _, req := range w.waiters[gameID] {
		if req.Plies != plies {
			fired = append(fired, req)
		} else {
			kept = append(kept, req)
		}
	}
	if len(kept) == 0 {
		delete(w.waiters, gameID)
	} else {
		w.waiters[gameID] = kept
	}
	w.mu.Unlock()

	for _, req := range fired {
		req.release()
	}
}

// RemoveGame releases every waiter of a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	waitList := w.waiters[gameID]
	delete(w.waiters, gameID)
	w.mu.Unlock()

	for _, req := range waitList {
		req.release()
	}
}

// Shutdown releases all waiters and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.waiters = make(map[string][]*WaitRequest)
	close(w.shutdown)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out after %s", timeout)
	}
}

// removeWaiter drops a specific waiter from the registry
func (w *WaitRegistry) removeWaiter(gameID string, req *WaitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waitList := w.waiters[gameID]
	for i, waiter := range waitList {
		if waiter == req {
			w.waiters[gameID] = append(waitList[:i], waitList[i+1:]...)
			break
		}
	}

	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}
