////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package event implements the typed events shared by the stream and the
// client, and the Dispatcher used at client and channel scope.
package event

// Handler receives a published Event. Handlers run synchronously on the
// publishing goroutine, in registration order.
type Handler func(ev Event)

// Subscriber is implemented by every scope that accepts event handlers.
type Subscriber interface {
	// Subscribe registers h for kind and returns the function that removes
	// that single registration.
	Subscribe(kind Kind, h Handler) (unsubscribe func(), err error)
}

// Publisher delivers events to registered handlers.
type Publisher interface {
	Publish(ev Event)
}
