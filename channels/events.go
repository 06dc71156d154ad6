////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"context"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/event"
	"gitlab.com/nexchat/client/model"
)

// ApplyEvent applies one event to the channel and notifies the channel's
// subscribers.
//
//   - message.new sets the last message. When the author is not the
//     logged-in user the unread count is incremented first, through an
//     internal channel.updateUnReadCount event whose subscribers run before
//     the message.new subscribers.
//   - channel.updateUnReadCount sets the unread count to the given value.
//   - channel.update re-fetches the channel in the background and notifies
//     its subscribers once the fetch has been applied. Nothing is published
//     when the fetch fails.
//
// Any other kind is ignored.
func (c *Channel) ApplyEvent(ev event.Event) {
	if id := ev.ChannelID(); id != "" && id != c.id {
		jww.WARN.Printf("Channel %s dropping %s event for channel %s",
			c.id, ev.Kind(), id)
		return
	}

	switch e := ev.(type) {
	case *event.MessageNewEvent:
		c.applyMessageNew(e)
	case *event.UnreadCountEvent:
		c.applyUnreadCount(e)
	case *event.ChannelUpdateEvent:
		go c.refresh(e)
	default:
		jww.TRACE.Printf("Channel %s ignoring %s event", c.id, ev.Kind())
	}
}

func (c *Channel) applyMessageNew(e *event.MessageNewEvent) {
	selfID := c.session.SelfID()

	c.mux.Lock()
	msg := e.Message
	c.lastMessage = &msg
	if !msg.CreatedAt.IsZero() {
		c.lastActivityAt = msg.CreatedAt
	}
	increment := msg.Author.ExternalUserID != selfID
	unread := c.unreadCount
	if increment {
		unread++
		c.unreadCount = unread
	}
	c.mux.Unlock()

	if increment {
		c.events.Publish(&event.UnreadCountEvent{
			ChannelUnreadCount: model.ChannelUnreadCount{
				ChannelID:   c.id,
				UnreadCount: unread,
			},
		})
	}

	c.events.Publish(e)
}

func (c *Channel) applyUnreadCount(e *event.UnreadCountEvent) {
	n := e.UnreadCount
	if n < 0 {
		n = 0
	}

	c.mux.Lock()
	c.unreadCount = n
	c.mux.Unlock()

	c.events.Publish(e)
}

// refresh force-fetches the channel and then publishes e.
func (c *Channel) refresh(e *event.ChannelUpdateEvent) {
	ctx := context.Background()
	if c.params.RefreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.params.RefreshTimeout)
		defer cancel()
	}

	if _, err := c.session.FetchChannelByID(ctx, c.id, true); err != nil {
		jww.WARN.Printf("Failed to refresh channel %s after update: %+v",
			c.id, err)
		return
	}
	c.events.Publish(e)
}
