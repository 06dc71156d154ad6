////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package channels holds the cached Channel entity, the events it applies to
// itself and the Registry that keeps one Channel per channel ID.
package channels

import (
	"context"
	"time"

	"gitlab.com/nexchat/client/restlike"
)

// Session is the view a Channel has of the client that owns it. The Channel
// never owns the Session.
type Session interface {
	restlike.Caller

	// SelfID returns the external user ID of the logged-in user, or an empty
	// string when no user is logged in.
	SelfID() string

	// FetchChannelByID returns the cached channel with the given ID, fetching it
	// from the server when it is not cached or force is set. The fetched
	// snapshot is reconciled into the cache.
	FetchChannelByID(ctx context.Context, channelID string, force bool) (*Channel, error)
}

// Params configures the channels created by a Registry.
type Params struct {
	// MarkReadWindow is the minimum time between two mark-read requests for
	// the same channel.
	MarkReadWindow time.Duration

	// MessagePageSize is the page size used by FetchMessages when no limit
	// is given.
	MessagePageSize int

	// RefreshTimeout bounds the re-fetch triggered by a channel.update
	// event. Zero means no timeout.
	RefreshTimeout time.Duration
}

// GetDefaultParams returns the default channel Params.
func GetDefaultParams() Params {
	return Params{
		MarkReadWindow:  5 * time.Second,
		MessagePageSize: 20,
		RefreshTimeout:  30 * time.Second,
	}
}
