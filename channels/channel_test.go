////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/nexchat/client/event"
	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/restlike"
)

// Tests that Channel adheres to the event.Subscriber interface.
var _ event.Subscriber = (*Channel)(nil)

// Derived fields are recomputed from the logged-in user's row.
func TestChannel_ApplySnapshot(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{
		ChannelID:   "c1",
		ChannelType: "messaging",
		ChannelName: "general",
		Members: []model.ChannelMember{
			member("me", 3, true),
			member("you", 7, false),
			member("them", 1, true),
		},
		Messages: []model.Message{{MessageID: "m2"}, {MessageID: "m1"}},
	})

	if c.UnreadCount() != 3 {
		t.Errorf("Unexpected unread count.\nexpected: %d\nreceived: %d",
			3, c.UnreadCount())
	}
	require.True(t, c.IsBlocked())
	require.True(t, c.IsOtherUserBlocked())
	require.Equal(t, "m2", c.LastMessage().MessageID)
	require.Equal(t, "general", c.Name())
	require.Equal(t, "messaging", c.Type())

	// A second snapshot fully replaces the derived fields.
	c.ApplySnapshot(model.ChannelData{
		ChannelID: "c1",
		Members:   []model.ChannelMember{member("me", 0, false), member("you", 0, false)},
	})
	require.Equal(t, 0, c.UnreadCount())
	require.False(t, c.IsBlocked())
	require.False(t, c.IsOtherUserBlocked())
	require.Nil(t, c.LastMessage())
	require.Equal(t, "", c.Name())
}

// Without an identity, or without a matching row, the unread count is zero.
func TestChannel_ApplySnapshot_NoSelfRow(t *testing.T) {
	for _, self := range []string{"", "stranger"} {
		s := newMockSession(t, self, testParams())
		c := s.reg.Reconcile(model.ChannelData{
			ChannelID: "c1",
			Members:   []model.ChannelMember{member("a", 4, false)},
		})
		require.Equal(t, 0, c.UnreadCount(), "self %q", self)
		require.False(t, c.IsBlocked(), "self %q", self)
	}
}

// A missing member list degrades to an empty one and duplicates are dropped.
func TestChannel_ApplySnapshot_Members(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{ChannelID: "c1"})
	require.NotNil(t, c.Members())
	require.Len(t, c.Members(), 0)

	c.ApplySnapshot(model.ChannelData{
		ChannelID: "c1",
		Members: []model.ChannelMember{
			member("me", 2, false), member("you", 0, false), member("me", 9, true),
		},
	})
	require.Len(t, c.Members(), 2)
	require.Equal(t, 2, c.UnreadCount())
	require.False(t, c.IsBlocked())
}

// Unread count events set the absolute value; the last one wins.
func TestChannel_ApplyEvent_UnreadCount(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{ChannelID: "c1"})

	var seen []int
	_, err := c.Subscribe(event.ChannelUnreadCount, func(ev event.Event) {
		seen = append(seen, ev.(*event.UnreadCountEvent).UnreadCount)
	})
	require.NoError(t, err)

	for _, n := range []int{5, 2, 9, 0, 4} {
		c.ApplyEvent(&event.UnreadCountEvent{
			ChannelUnreadCount: model.ChannelUnreadCount{ChannelID: "c1", UnreadCount: n},
		})
		require.Equal(t, n, c.UnreadCount())
	}
	require.Equal(t, []int{5, 2, 9, 0, 4}, seen)
}

// A message from someone else increments the unread count before the
// message.new subscribers run; one's own message does not.
func TestChannel_ApplyEvent_MessageNew(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{
		ChannelID: "c1",
		Members:   []model.ChannelMember{member("me", 2, false)},
	})

	var order []string
	var unreadAtMessage int
	_, _ = c.Subscribe(event.ChannelUnreadCount, func(event.Event) {
		order = append(order, "unread")
	})
	_, _ = c.Subscribe(event.MessageNew, func(event.Event) {
		order = append(order, "message")
		unreadAtMessage = c.UnreadCount()
	})

	other := model.Message{MessageID: "m1", ChannelID: "c1",
		Author: model.User{ExternalUserID: "you"}}
	c.ApplyEvent(&event.MessageNewEvent{Message: other})
	require.Equal(t, 3, c.UnreadCount())
	require.Equal(t, 3, unreadAtMessage)
	require.Equal(t, []string{"unread", "message"}, order)
	require.Equal(t, "m1", c.LastMessage().MessageID)

	order = nil
	own := model.Message{MessageID: "m2", ChannelID: "c1",
		Author: model.User{ExternalUserID: "me"}}
	c.ApplyEvent(&event.MessageNewEvent{Message: own})
	require.Equal(t, 3, c.UnreadCount())
	require.Equal(t, []string{"message"}, order)
	require.Equal(t, "m2", c.LastMessage().MessageID)
}

// channel.update subscribers only run after the forced re-fetch has been
// applied.
func TestChannel_ApplyEvent_ChannelUpdate(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{ChannelID: "c1", ChannelName: "old"})

	release := make(chan struct{})
	body := mustJSON(t, map[string]interface{}{"channel": model.ChannelData{
		ChannelID: "c1", ChannelName: "new",
	}})
	s.req.Handle(restlike.Get, "/channels/c1", blockingHandler(release, body))

	notified := make(chan string, 1)
	_, _ = c.Subscribe(event.ChannelUpdate, func(event.Event) {
		notified <- c.Name()
	})

	c.ApplyEvent(&event.ChannelUpdateEvent{
		ChannelUpdate: model.ChannelUpdate{ChannelID: "c1"},
	})

	select {
	case <-notified:
		t.Fatal("Subscriber notified before the re-fetch resolved")
	case <-time.After(30 * time.Millisecond):
	}
	require.Equal(t, "old", c.Name())

	close(release)
	select {
	case name := <-notified:
		require.Equal(t, "new", name)
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for channel.update subscriber")
	}
}

// A failed re-fetch publishes nothing.
func TestChannel_ApplyEvent_ChannelUpdateFailure(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{ChannelID: "c1"})
	s.req.Respond(restlike.Get, "/channels/c1", 500, `{"error":"boom"}`)

	notified := make(chan struct{}, 1)
	_, _ = c.Subscribe(event.ChannelUpdate, func(event.Event) {
		notified <- struct{}{}
	})
	c.ApplyEvent(&event.ChannelUpdateEvent{
		ChannelUpdate: model.ChannelUpdate{ChannelID: "c1"},
	})

	require.Eventually(t, func() bool {
		return len(s.req.CallsTo(restlike.Get, "/channels/c1")) == 1
	}, time.Second, 5*time.Millisecond)
	select {
	case <-notified:
		t.Fatal("Subscriber notified after a failed re-fetch")
	case <-time.After(30 * time.Millisecond):
	}
}

// Events for other channels and kinds the channel does not handle are
// ignored.
func TestChannel_ApplyEvent_Ignored(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{ChannelID: "c1"})

	c.ApplyEvent(&event.UnreadCountEvent{
		ChannelUnreadCount: model.ChannelUnreadCount{ChannelID: "c2", UnreadCount: 8},
	})
	c.ApplyEvent(&event.TotalUnreadCountEvent{TotalUnreadCount: 8})
	require.Equal(t, 0, c.UnreadCount())
}

// Unsubscribing twice removes exactly one registration.
func TestChannel_Subscribe(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{ChannelID: "c1"})

	calls := 0
	h := func(event.Event) { calls++ }
	unsub1, err := c.Subscribe(event.ChannelUnreadCount, h)
	require.NoError(t, err)
	_, err = c.Subscribe(event.ChannelUnreadCount, h)
	require.NoError(t, err)

	unsub1()
	unsub1()
	c.ApplyEvent(&event.UnreadCountEvent{
		ChannelUnreadCount: model.ChannelUnreadCount{ChannelID: "c1", UnreadCount: 1},
	})
	require.Equal(t, 1, calls)

	_, err = c.Subscribe(event.MessageNew, nil)
	require.Error(t, err)
}
