////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package event

import (
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/errs"
)

// registration is one Subscribe call. Removal is by identity of the
// registration, so the same Handler may be registered several times and is
// removed one registration at a time.
type registration struct {
	h Handler
}

// Dispatcher is a publish/subscribe registry keyed by event Kind. It is safe
// for concurrent use.
//
// A panic in a handler is not recovered; it propagates to the caller of
// Publish, and handlers registered after it do not run for that event.
type Dispatcher struct {
	name     string
	handlers map[Kind][]*registration
	mux      sync.RWMutex
}

// NewDispatcher returns an empty Dispatcher. The name is only used in logs.
func NewDispatcher(name string) *Dispatcher {
	return &Dispatcher{
		name:     name,
		handlers: make(map[Kind][]*registration),
	}
}

// Subscribe registers h for kind. It returns an InvalidArgument error if h is
// nil. The returned function removes exactly this registration; calling it
// again is a no-op.
func (d *Dispatcher) Subscribe(kind Kind, h Handler) (func(), error) {
	if h == nil {
		return nil, errs.New(errs.InvalidArgument,
			"invalid callback, it has to be a function")
	}

	reg := &registration{h: h}

	d.mux.Lock()
	d.handlers[kind] = append(d.handlers[kind], reg)
	d.mux.Unlock()

	jww.TRACE.Printf("[%s] Subscribed handler for %s", d.name, kind)

	var once sync.Once
	return func() { once.Do(func() { d.remove(kind, reg) }) }, nil
}

// remove deletes reg from the handler list of kind, preserving order.
func (d *Dispatcher) remove(kind Kind, reg *registration) {
	d.mux.Lock()
	defer d.mux.Unlock()

	list := d.handlers[kind]
	for i := range list {
		if list[i] == reg {
			newList := make([]*registration, 0, len(list)-1)
			newList = append(newList, list[:i]...)
			newList = append(newList, list[i+1:]...)
			if len(newList) == 0 {
				delete(d.handlers, kind)
			} else {
				d.handlers[kind] = newList
			}
			jww.TRACE.Printf("[%s] Unsubscribed handler for %s", d.name, kind)
			return
		}
	}
}

// Publish calls every handler registered for ev.Kind() at the time of the
// call, in registration order, passing ev unchanged. The lock is not held
// while handlers run, so a handler may subscribe or unsubscribe.
func (d *Dispatcher) Publish(ev Event) {
	if ev == nil {
		return
	}

	d.mux.RLock()
	list := d.handlers[ev.Kind()]
	d.mux.RUnlock()

	for _, reg := range list {
		reg.h(ev)
	}
}

// Len returns the number of registrations for kind.
func (d *Dispatcher) Len(kind Kind) int {
	d.mux.RLock()
	defer d.mux.RUnlock()
	return len(d.handlers[kind])
}
