////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/nexchat/client/model"
)

// Reconciling the same ID twice returns the same instance, updated.
func TestRegistry_Reconcile(t *testing.T) {
	s := newMockSession(t, "me", testParams())

	first := s.reg.Reconcile(model.ChannelData{
		ChannelID: "c1",
		Members:   []model.ChannelMember{member("me", 1, false)},
	})
	second := s.reg.Reconcile(model.ChannelData{
		ChannelID: "c1",
		Members:   []model.ChannelMember{member("me", 4, true)},
	})

	if first != second {
		t.Errorf("Reconcile returned a new instance for a cached channel."+
			"\nexpected: %p\nreceived: %p", first, second)
	}
	require.Equal(t, 4, first.UnreadCount())
	require.True(t, first.IsBlocked())
	require.Equal(t, 1, s.reg.Len())

	c, ok := s.reg.Get("c1")
	require.True(t, ok)
	require.Same(t, first, c)
}

func TestRegistry_Reconcile_NoID(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	c := s.reg.Reconcile(model.ChannelData{})
	require.NotNil(t, c)
	require.Equal(t, 0, s.reg.Len())
}

func TestRegistry_ChannelsAndClear(t *testing.T) {
	s := newMockSession(t, "me", testParams())
	for _, id := range []string{"b", "c", "a"} {
		s.reg.Reconcile(model.ChannelData{ChannelID: id})
	}

	list := s.reg.Channels()
	require.Len(t, list, 3)
	require.Equal(t, "a", list[0].ID())
	require.Equal(t, "c", list[2].ID())

	old := list[0]
	s.reg.Clear()
	require.Equal(t, 0, s.reg.Len())
	_, ok := s.reg.Get("a")
	require.False(t, ok)

	// A new snapshot after clearing creates a new instance.
	fresh := s.reg.Reconcile(model.ChannelData{ChannelID: "a"})
	require.NotSame(t, old, fresh)
}
