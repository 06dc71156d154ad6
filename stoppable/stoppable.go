////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package stoppable signals background goroutines to stop and tracks whether
// they have.
package stoppable

import "time"

// Stoppable is a handle on a background goroutine.
type Stoppable interface {
	Close() error
	WaitForStopped(timeout time.Duration) error
	IsRunning() bool
	Name() string
}

// Status is the lifecycle state of a Stoppable.
type Status uint32

const (
	Running Status = iota
	Stopping
	Stopped
)

// String returns the Status as a human-readable name.
func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "INVALID STATUS"
	}
}
