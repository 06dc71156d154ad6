////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"github.com/golang-collections/collections/set"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/model"
)

// ApplySnapshot replaces the state of the channel with a full snapshot and
// recomputes the fields derived from the logged-in user's member row. It
// never fails. A missing member list is treated as empty and duplicate
// members keep their first row.
func (c *Channel) ApplySnapshot(data model.ChannelData) {
	if data.ChannelID != "" && data.ChannelID != c.id {
		jww.WARN.Printf("Ignoring snapshot of channel %s for channel %s",
			data.ChannelID, c.id)
		return
	}

	selfID := c.session.SelfID()
	members := dedupeMembers(data.Members)

	var (
		unread     int
		blocked    bool
		otherBlock bool
	)
	for i := range members {
		m := &members[i]
		if selfID != "" && m.User.ExternalUserID == selfID {
			unread = m.UnreadCount
			blocked = m.HasBlockedChannel
		} else if m.HasBlockedChannel {
			otherBlock = true
		}
	}
	if unread < 0 {
		unread = 0
	}

	var last *model.Message
	if len(data.Messages) > 0 {
		m := data.Messages[0]
		last = &m
	}

	c.mux.Lock()
	defer c.mux.Unlock()

	c.channelType = data.ChannelType
	c.name = data.ChannelName
	c.imageURL = data.ChannelImageURL
	c.metadata = data.Metadata
	c.members = members
	c.lastMessage = last
	c.lastActivityAt = data.LastActivityAt
	c.unreadCount = unread
	c.isBlocked = blocked
	c.otherIsBlocked = otherBlock

	jww.TRACE.Printf("Applied snapshot to channel %s: %d members, "+
		"%d unread", c.id, len(members), unread)
}

// dedupeMembers returns the members with duplicate user IDs removed, keeping
// order. It never returns nil.
func dedupeMembers(in []model.ChannelMember) []model.ChannelMember {
	out := make([]model.ChannelMember, 0, len(in))
	seen := set.New()
	for _, m := range in {
		if seen.Has(m.User.ExternalUserID) {
			jww.DEBUG.Printf("Dropping duplicate member %s",
				m.User.ExternalUserID)
			continue
		}
		seen.Insert(m.User.ExternalUserID)
		out = append(out, m)
	}
	return out
}
