package scheduler

import (
	"context"
	"sync"
)

// lifecycle owns a set of goroutines that share one cancellable context.
// Its mutex also guards whatever state the owner ties to running.
type lifecycle struct {
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// start runs onStart under the lock, then launches n copies of run. It
// returns false without doing anything when already running.
func (l *lifecycle) start(ctx context.Context, n int, onStart func(), run func(ctx context.Context, id int)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return false
	}
	l.running = true
	if onStart != nil {
		onStart()
	}

	ctx, l.cancel = context.WithCancel(ctx)
	l.wg.Add(n)
	for id := range n {
		go func() {
			defer l.wg.Done()
			run(ctx, id)
		}()
	}
	return true
}

// stop runs onStop under the lock, cancels the goroutines and waits for
// them until ctx ends. stopped is false when nothing was running.
func (l *lifecycle) stop(ctx context.Context, onStop func()) (stopped bool, err error) {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return false, nil
	}
	l.running = false
	if onStop != nil {
		onStop()
	}
	l.cancel()
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true, nil
	case <-ctx.Done():
		return true, ctx.Err()
	}
}

func (l *lifecycle) isRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
