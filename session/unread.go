////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"gitlab.com/nexchat/client/event"
	"gitlab.com/nexchat/client/restlike"
)

type totalUnreadResponse struct {
	TotalUnreadCount int `json:"totalUnreadCount"`
}

// FetchTotalUnreadCount fetches the aggregate unread count of the logged-in
// user. The result is handled like a user.totalUnreadCount event.
func (c *Client) FetchTotalUnreadCount(ctx context.Context) (int, error) {
	selfID, err := c.requireLogin("FetchTotalUnreadCount")
	if err != nil {
		return 0, err
	}

	req := &restlike.Request{
		Method: restlike.Get,
		URI: restlike.URI(
			"/users/" + url.PathEscape(selfID) + "/total-unread-count"),
	}
	var resp totalUnreadResponse
	if err = c.Call(ctx, req, &resp); err != nil {
		return 0, errors.WithMessage(err, "failed to fetch total unread count")
	}

	// Drop results that land after a logout or user switch
	if c.SelfID() == selfID {
		c.dispatch(&event.TotalUnreadCountEvent{
			TotalUnreadCount: resp.TotalUnreadCount,
		})
	}
	return resp.TotalUnreadCount, nil
}

// TotalUnreadCount returns the last known aggregate unread count.
func (c *Client) TotalUnreadCount() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.totalUnread
}
