////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/event"
)

// handleFrame is the stream frame callback. Frames that do not decode are
// dropped.
func (c *Client) handleFrame(raw []byte) {
	ev, err := event.Decode(raw)
	if err != nil {
		jww.WARN.Printf("Dropping stream frame: %+v", err)
		return
	}
	c.dispatch(ev)
}

// dispatch routes one event: client bookkeeping first, then the cached
// channel the event names, then every client subscriber.
func (c *Client) dispatch(ev event.Event) {
	jww.DEBUG.Printf("Dispatching %s", event.String(ev))

	switch e := ev.(type) {
	case *event.TotalUnreadCountEvent:
		c.mux.Lock()
		c.totalUnread = e.TotalUnreadCount
		c.mux.Unlock()
	case *event.ChannelCreatedEvent:
		c.channels.Reconcile(e.Channel)
	}

	if id := ev.ChannelID(); id != "" {
		if ch, ok := c.channels.Get(id); ok {
			ch.ApplyEvent(ev)
		}
	}

	c.events.Publish(ev)
}
