////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/errs"
	"gitlab.com/nexchat/client/event"
	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/restlike"
)

// SendMessageParams is the content of a message to send.
type SendMessageParams struct {
	Text        string
	URLPreview  []model.URLPreview
	Attachments []model.Attachment

	// SenderID sends on behalf of another user. It defaults to the
	// logged-in user and is required in server mode.
	SenderID string
}

type sendMessageBody struct {
	Text        string             `json:"text,omitempty"`
	URLPreview  []model.URLPreview `json:"urlPreview,omitempty"`
	Attachments []model.Attachment `json:"attachments,omitempty"`
}

type messageResponse struct {
	Message model.Message `json:"message"`
}

// SendMessage posts a message to the channel and returns the message as
// stored by the server. The local state is not changed; the message arrives
// back through the stream.
func (c *Channel) SendMessage(ctx context.Context, p SendMessageParams) (
	*model.Message, error) {
	sender := p.SenderID
	if sender == "" {
		sender = c.session.SelfID()
	}
	if sender == "" {
		return nil, errs.InvalidInvocationErr("SendMessage", noSenderErr)
	}

	req := &restlike.Request{
		Method: restlike.Post,
		URI:    restlike.URI(c.memberPath(sender) + "/message"),
		Body: sendMessageBody{
			Text:        p.Text,
			URLPreview:  p.URLPreview,
			Attachments: p.Attachments,
		},
	}

	var resp messageResponse
	if err := c.call(ctx, req, &resp, sendMessageErr); err != nil {
		return nil, err
	}
	return &resp.Message, nil
}

// MessageQuery selects a page of message history.
type MessageQuery struct {
	// Before returns messages created before this time. The zero time
	// returns the most recent page.
	Before time.Time

	// Limit is the page size. Zero uses the configured default.
	Limit int
}

// FetchMessages returns a page of history, newest first. It does not change
// the cached last message.
func (c *Channel) FetchMessages(ctx context.Context, q MessageQuery) (
	*model.MessagePage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = c.params.MessagePageSize
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if !q.Before.IsZero() {
		query.Set("lastCreatedAt", model.FormatTimestamp(q.Before))
	}

	req := &restlike.Request{
		Method: restlike.Get,
		URI:    restlike.URI(c.path() + "/messages"),
		Query:  query,
	}

	page := &model.MessagePage{}
	if err := c.call(ctx, req, page, fetchMessagesErr); err != nil {
		return nil, err
	}
	if page.Messages == nil {
		page.Messages = []model.Message{}
	}
	return page, nil
}

// Block blocks the channel for the logged-in user. IsBlocked only changes
// with the next snapshot.
func (c *Channel) Block(ctx context.Context) error {
	return c.memberAction(ctx, "Block", "/block", blockErr)
}

// Unblock reverses Block.
func (c *Channel) Unblock(ctx context.Context) error {
	return c.memberAction(ctx, "Unblock", "/un-block", unblockErr)
}

func (c *Channel) memberAction(ctx context.Context, op, suffix,
	fallback string) error {
	selfID := c.session.SelfID()
	if selfID == "" {
		return errs.InvalidInvocationErr(op, notLoggedInErr)
	}
	req := &restlike.Request{
		Method: restlike.Post,
		URI:    restlike.URI(c.memberPath(selfID) + suffix),
	}
	return c.call(ctx, req, nil, fallback)
}

// MarkRead sets the unread count to zero and notifies subscribers before
// returning. The server is told in the background, at most once per
// MarkReadWindow; calls inside the window are merged into one trailing
// request. Failures of that request are logged only.
func (c *Channel) MarkRead() {
	c.applyUnreadCount(&event.UnreadCountEvent{
		ChannelUnreadCount: model.ChannelUnreadCount{ChannelID: c.id},
	})

	if c.session.SelfID() == "" {
		jww.DEBUG.Printf("Not sending mark read for channel %s: "+
			"no user logged in", c.id)
		return
	}
	if !c.markRd.Trigger() {
		jww.DEBUG.Printf("Not sending mark read for channel %s: "+
			"channel is detached", c.id)
	}
}

// sendMarkRead is run by the mark-read throttle.
func (c *Channel) sendMarkRead() {
	selfID := c.session.SelfID()
	if selfID == "" {
		return
	}

	ctx := context.Background()
	if c.params.RefreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.params.RefreshTimeout)
		defer cancel()
	}

	req := &restlike.Request{
		Method: restlike.Post,
		URI:    restlike.URI(c.memberPath(selfID) + "/read"),
	}
	if err := c.call(ctx, req, nil, markReadErr); err != nil {
		jww.WARN.Printf("Failed to mark channel %s as read: %+v", c.id, err)
		return
	}
	jww.DEBUG.Printf("Marked channel %s as read", c.id)
}

// call sends req through the session and adds msg to any error.
func (c *Channel) call(ctx context.Context, req *restlike.Request,
	out interface{}, msg string) error {
	return errors.WithMessage(c.session.Call(ctx, req, out), msg)
}
