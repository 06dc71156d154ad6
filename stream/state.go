////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package stream

import "time"

// State is the connection state.
type State uint32

const (
	Disconnected State = iota
	Connecting
	Connected
)

var stateStrings = map[State]string{
	Disconnected: "disconnected",
	Connecting:   "connecting",
	Connected:    "connected",
}

// String returns the State as a human-readable name.
func (s State) String() string {
	if str, ok := stateStrings[s]; ok {
		return str
	}
	return "INVALID STATE"
}

// Status is a point-in-time view of a Manager.
type Status struct {
	State State

	// Since is when State was entered.
	Since time.Time

	// Attempts is the number of reconnects scheduled since the last
	// successful open or explicit Connect.
	Attempts int
}
