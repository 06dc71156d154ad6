////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package stoppable

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// Error messages.
const (
	toStoppingErr = "failed to set the status of single stoppable %q to " +
		"stopping when status is %s instead of %s"
	stopTimeoutErr = "single stoppable %q did not stop within %s"
)

// Single allows stopping a single goroutine using a channel. It adheres to the
// Stoppable interface.
type Single struct {
	name    string
	quit    chan struct{}
	stopped chan struct{}
	status  uint32
	once    sync.Once
}

// NewSingle returns a new running Single.
func NewSingle(name string) *Single {
	return &Single{
		name:    name,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		status:  uint32(Running),
	}
}

// Name returns the name of the Single.
func (s *Single) Name() string {
	return s.name
}

// GetStatus returns the status of the Single.
func (s *Single) GetStatus() Status {
	return Status(atomic.LoadUint32(&s.status))
}

// IsRunning returns true if Single is marked as running.
func (s *Single) IsRunning() bool {
	return s.GetStatus() == Running
}

// IsStopped returns true if Single is marked as stopped.
func (s *Single) IsStopped() bool {
	return s.GetStatus() == Stopped
}

// Quit returns a receive-only channel that is closed when the Single is asked
// to stop.
func (s *Single) Quit() <-chan struct{} {
	return s.quit
}

// ToStopped is called by the goroutine once it has exited. It panics if the
// Single was not stopping.
func (s *Single) ToStopped() {
	if !atomic.CompareAndSwapUint32(&s.status, uint32(Stopping), uint32(Stopped)) {
		jww.FATAL.Panicf("Failed to set the status of single stoppable %q to "+
			"stopped when status is %s instead of %s.",
			s.name, s.GetStatus(), Stopping)
	}
	close(s.stopped)
	jww.TRACE.Printf("Single stoppable %q stopped", s.name)
}

// Close signals the goroutine to stop. Only the first call has an effect;
// later calls return nil.
func (s *Single) Close() error {
	var err error
	s.once.Do(func() {
		if !atomic.CompareAndSwapUint32(&s.status, uint32(Running), uint32(Stopping)) {
			err = errors.Errorf(toStoppingErr, s.name, s.GetStatus(), Running)
			return
		}
		close(s.quit)
	})

	if err != nil {
		jww.ERROR.Print(err.Error())
	}
	return err
}

// WaitForStopped blocks until the goroutine has called ToStopped or the
// timeout elapses.
func (s *Single) WaitForStopped(timeout time.Duration) error {
	select {
	case <-s.stopped:
		return nil
	case <-time.After(timeout):
		return errors.Errorf(stopTimeoutErr, s.name, timeout)
	}
}
