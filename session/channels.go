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
	"strconv"

	"github.com/pkg/errors"
	"gitlab.com/nexchat/client/channels"
	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/restlike"
)

type channelResponse struct {
	Channel model.ChannelData `json:"channel"`
}

// ChannelList is one page of the logged-in user's channels.
type ChannelList struct {
	Channels   []*channels.Channel
	IsLastPage bool
}

// FetchChannelByID returns the cached channel, or fetches and caches it when
// it is not cached or force is set. A fetched snapshot is applied to the
// cached instance, so the returned pointer is stable for a channel ID.
func (c *Client) FetchChannelByID(ctx context.Context, channelID string,
	force bool) (*channels.Channel, error) {
	if err := requireArg("channelId", channelID); err != nil {
		return nil, err
	}
	if ch, ok := c.channels.Get(channelID); ok && !force {
		return ch, nil
	}

	req := &restlike.Request{
		Method: restlike.Get,
		URI:    restlike.URI("/channels/" + url.PathEscape(channelID)),
	}
	var resp channelResponse
	if err := c.Call(ctx, req, &resp); err != nil {
		return nil, errors.WithMessagef(err, "failed to fetch channel %s",
			channelID)
	}
	if resp.Channel.ChannelID == "" {
		resp.Channel.ChannelID = channelID
	}
	return c.channels.Reconcile(resp.Channel), nil
}

// ListUserChannels returns a page of the logged-in user's channels, each
// reconciled into the cache.
func (c *Client) ListUserChannels(ctx context.Context, page model.PageRequest) (
	*ChannelList, error) {
	selfID, err := c.requireLogin("ListUserChannels")
	if err != nil {
		return nil, err
	}

	req := &restlike.Request{
		Method: restlike.Get,
		URI:    restlike.URI("/users/" + url.PathEscape(selfID) + "/channels"),
		Query:  c.pageQuery(page),
	}
	var resp model.ChannelPage
	if err = c.Call(ctx, req, &resp); err != nil {
		return nil, errors.WithMessage(err, "failed to list channels")
	}

	list := &ChannelList{
		Channels:   make([]*channels.Channel, 0, len(resp.Channels)),
		IsLastPage: resp.IsLastPage,
	}
	for _, data := range resp.Channels {
		list.Channels = append(list.Channels, c.channels.Reconcile(data))
	}
	return list, nil
}

// CreateChannel creates a channel with the given members and caches it.
func (c *Client) CreateChannel(ctx context.Context, members []string) (
	*channels.Channel, error) {
	body := map[string][]string{"members": members}
	if members == nil {
		body["members"] = []string{}
	}

	req := &restlike.Request{
		Method: restlike.Post,
		URI:    "/channels",
		Body:   body,
	}
	var resp channelResponse
	if err := c.Call(ctx, req, &resp); err != nil {
		return nil, errors.WithMessage(err, "failed to create channel")
	}
	return c.channels.Reconcile(resp.Channel), nil
}

// pageQuery builds the limit/offset query, using the default channel page
// size when no limit is set.
func (c *Client) pageQuery(page model.PageRequest) url.Values {
	limit := page.Limit
	if limit <= 0 {
		limit = c.params.DefaultChannelPageSize
	}
	if limit <= 0 {
		limit = GetDefaultParams().DefaultChannelPageSize
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}
