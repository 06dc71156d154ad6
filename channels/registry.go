////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"sort"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/model"
)

// Registry is the identity map of cached channels: it holds at most one
// Channel per channel ID for the lifetime of a session.
type Registry struct {
	session  Session
	params   Params
	channels map[string]*Channel
	mux      sync.RWMutex
}

// NewRegistry returns an empty Registry whose channels use s.
func NewRegistry(s Session, params Params) *Registry {
	return &Registry{
		session:  s,
		params:   params,
		channels: make(map[string]*Channel),
	}
}

// Reconcile applies a snapshot to the cached channel with the same ID and
// returns it, or caches and returns a new channel built from the snapshot.
// A snapshot without an ID yields a channel that is not cached.
func (r *Registry) Reconcile(data model.ChannelData) *Channel {
	if data.ChannelID == "" {
		jww.WARN.Printf("Not caching channel snapshot without an ID")
		return newChannel(r.session, r.params, data)
	}

	r.mux.Lock()
	c, exists := r.channels[data.ChannelID]
	if !exists {
		c = newChannel(r.session, r.params, data)
		r.channels[data.ChannelID] = c
		r.mux.Unlock()
		jww.DEBUG.Printf("Cached new channel %s", data.ChannelID)
		return c
	}
	r.mux.Unlock()

	c.ApplySnapshot(data)
	return c
}

// Get returns the cached channel with the given ID.
func (r *Registry) Get(channelID string) (*Channel, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	c, exists := r.channels[channelID]
	return c, exists
}

// Channels returns every cached channel sorted by ID.
func (r *Registry) Channels() []*Channel {
	r.mux.RLock()
	list := make([]*Channel, 0, len(r.channels))
	for _, c := range r.channels {
		list = append(list, c)
	}
	r.mux.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].id < list[j].id })
	return list
}

// Len returns the number of cached channels.
func (r *Registry) Len() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.channels)
}

// Clear empties the cache. Removed channels keep their last state but no
// longer receive events, and their pending mark-read requests are dropped.
func (r *Registry) Clear() {
	r.mux.Lock()
	old := r.channels
	r.channels = make(map[string]*Channel)
	r.mux.Unlock()

	for _, c := range old {
		c.detach()
	}
	jww.DEBUG.Printf("Cleared %d cached channels", len(old))
}
