////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package model

import "time"

// ChannelMember is one participant's row in a channel.
type ChannelMember struct {
	User              User      `json:"user"`
	UnreadCount       int       `json:"unreadCount"`
	HasBlockedChannel bool      `json:"hasBlockedChannel"`
	Status            string    `json:"status,omitempty"`
	JoinedAt          time.Time `json:"createdAt"`
}

// ChannelData is a complete channel snapshot as returned by the server.
// Messages, when present, is newest first.
type ChannelData struct {
	ChannelID       string                 `json:"channelId"`
	ChannelType     string                 `json:"channelType"`
	ChannelName     string                 `json:"channelName,omitempty"`
	ChannelImageURL string                 `json:"channelImageUrl,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	Members         []ChannelMember        `json:"members"`
	Messages        []Message              `json:"messages,omitempty"`
	LastActivityAt  time.Time              `json:"lastActivityAt"`
}

// ChannelUnreadCount is the payload of a channel.updateUnReadCount event.
// UnreadCount is absolute, not a delta.
type ChannelUnreadCount struct {
	ChannelID   string `json:"channelId"`
	UnreadCount int    `json:"unreadCount"`
}

// ChannelUpdate is the payload of a channel.update event. Only ChannelID is
// relied upon; the rest is informational.
type ChannelUpdate struct {
	ChannelID       string                 `json:"channelId"`
	ChannelName     string                 `json:"channelName,omitempty"`
	ChannelImageURL string                 `json:"channelImageUrl,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
	UnreadCount     *int                   `json:"unreadCount,omitempty"`
	IsBlocked       *bool                  `json:"isBlocked,omitempty"`
}

// ChannelPage is one page of a channel listing.
type ChannelPage struct {
	Channels   []ChannelData `json:"channels"`
	IsLastPage bool          `json:"isLastPage"`
}

// DisplayDetails is the name and image a UI should show for a channel.
type DisplayDetails struct {
	Name     string
	ImageURL string
}
