////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"sync"
	"time"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/stoppable"
	"go.uber.org/ratelimit"
)

// throttle runs call at most once per window. Triggers that arrive while a
// call is waiting for its window are merged into that call. The worker
// goroutine starts on the first Trigger.
type throttle struct {
	name    string
	limiter ratelimit.Limiter
	call    func()
	pending chan struct{}
	stop    *stoppable.Single

	started bool
	closed  bool
	mux     sync.Mutex
}

func newThrottle(name string, window time.Duration, call func()) *throttle {
	var limiter ratelimit.Limiter
	if window > 0 {
		limiter = ratelimit.New(1, ratelimit.Per(window), ratelimit.WithoutSlack)
	} else {
		limiter = ratelimit.NewUnlimited()
	}

	return &throttle{
		name:    name,
		limiter: limiter,
		call:    call,
		pending: make(chan struct{}, 1),
		stop:    stoppable.NewSingle(name),
	}
}

// Trigger requests a call. It returns false once the throttle is closed.
func (t *throttle) Trigger() bool {
	t.mux.Lock()
	defer t.mux.Unlock()

	if t.closed {
		return false
	}
	if !t.started {
		t.started = true
		go t.run()
	}

	select {
	case t.pending <- struct{}{}:
	default:
		jww.TRACE.Printf("[%s] Merged trigger into pending call", t.name)
	}
	return true
}

// Close drops any pending call and stops the worker.
func (t *throttle) Close() {
	t.mux.Lock()
	if t.closed {
		t.mux.Unlock()
		return
	}
	t.closed = true
	started := t.started
	t.mux.Unlock()

	if started {
		_ = t.stop.Close()
	}
}

// Stoppable returns the handle of the worker goroutine.
func (t *throttle) Stoppable() stoppable.Stoppable {
	return t.stop
}

func (t *throttle) run() {
	for {
		select {
		case <-t.stop.Quit():
			t.stop.ToStopped()
			return
		case <-t.pending:
		}

		t.limiter.Take()

		// Anything triggered while waiting is served by this call
		select {
		case <-t.pending:
		default:
		}

		select {
		case <-t.stop.Quit():
			jww.DEBUG.Printf("[%s] Dropping pending call on close", t.name)
			t.stop.ToStopped()
			return
		default:
		}

		t.call()
	}
}
