////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"net/url"
	"sync"
	"time"

	"gitlab.com/nexchat/client/event"
	"gitlab.com/nexchat/client/model"
)

// Channel is the cached state of one conversation. All fields are guarded by
// mux and only change through ApplySnapshot and ApplyEvent.
type Channel struct {
	id      string
	session Session
	params  Params
	events  *event.Dispatcher
	markRd  *throttle

	channelType    string
	name           string
	imageURL       string
	metadata       map[string]interface{}
	members        []model.ChannelMember
	lastMessage    *model.Message
	lastActivityAt time.Time
	unreadCount    int
	isBlocked      bool
	otherIsBlocked bool

	mux sync.RWMutex
}

// newChannel builds a Channel from its first snapshot.
func newChannel(s Session, params Params, data model.ChannelData) *Channel {
	c := &Channel{
		id:      data.ChannelID,
		session: s,
		params:  params,
		events:  event.NewDispatcher("channel " + data.ChannelID),
	}
	c.markRd = newThrottle("markRead "+data.ChannelID,
		params.MarkReadWindow, c.sendMarkRead)
	c.ApplySnapshot(data)
	return c
}

// Subscribe registers h for events of the given kind scoped to this channel.
func (c *Channel) Subscribe(kind event.Kind, h event.Handler) (func(), error) {
	return c.events.Subscribe(kind, h)
}

// ID returns the server assigned channel ID.
func (c *Channel) ID() string { return c.id }

func (c *Channel) Type() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.channelType
}

func (c *Channel) Name() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.name
}

func (c *Channel) ImageURL() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.imageURL
}

// Metadata returns a copy of the channel metadata.
func (c *Channel) Metadata() map[string]interface{} {
	c.mux.RLock()
	defer c.mux.RUnlock()
	if c.metadata == nil {
		return nil
	}
	md := make(map[string]interface{}, len(c.metadata))
	for k, v := range c.metadata {
		md[k] = v
	}
	return md
}

// Members returns a copy of the member list.
func (c *Channel) Members() []model.ChannelMember {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return append([]model.ChannelMember{}, c.members...)
}

// LastMessage returns the most recent message seen, or nil.
func (c *Channel) LastMessage() *model.Message {
	c.mux.RLock()
	defer c.mux.RUnlock()
	if c.lastMessage == nil {
		return nil
	}
	m := *c.lastMessage
	return &m
}

func (c *Channel) LastActivityAt() time.Time {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.lastActivityAt
}

// UnreadCount returns the number of unread messages for the logged-in user.
func (c *Channel) UnreadCount() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.unreadCount
}

// IsBlocked reports whether the logged-in user has blocked the channel.
func (c *Channel) IsBlocked() bool {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.isBlocked
}

// IsOtherUserBlocked reports whether any other member has blocked the
// channel. It is only meaningful for two member channels.
func (c *Channel) IsOtherUserBlocked() bool {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.otherIsBlocked
}

// path returns the escaped API path of the channel.
func (c *Channel) path() string {
	return "/channels/" + url.PathEscape(c.id)
}

// memberPath returns the escaped API path of one member of the channel.
func (c *Channel) memberPath(userID string) string {
	return c.path() + "/members/" + url.PathEscape(userID)
}

// detach stops background work. The Channel keeps its last state.
func (c *Channel) detach() {
	c.markRd.Close()
}
