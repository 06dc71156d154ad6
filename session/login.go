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
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/notifications"
	"gitlab.com/nexchat/client/restlike"
)

type userResponse struct {
	User model.User `json:"user"`
}

// LoginUser authenticates userID with authToken. On success the identity is
// used for every following call, the total unread count is refreshed in the
// background and the event stream is connected. It is only available in
// client mode.
//
// Logging in as a different user than the current one drops the channel
// cache first. Logging in again with a new token reopens the stream with it.
func (c *Client) LoginUser(ctx context.Context, userID, authToken string) (
	*model.User, error) {
	if err := c.requireClient("LoginUser"); err != nil {
		return nil, err
	}
	if err := requireArg("externalUserId", userID); err != nil {
		return nil, err
	}
	if err := requireArg("authToken", authToken); err != nil {
		return nil, err
	}

	req := &restlike.Request{
		Method:  restlike.Get,
		URI:     restlike.URI("/users/" + url.PathEscape(userID)),
		Headers: restlike.Headers{AuthTokenHeader: authToken},
	}
	var resp userResponse
	if err := c.call(ctx, req, &resp, requestFailedErr); err != nil {
		return nil, errors.WithMessagef(err, "failed to log in %s", userID)
	}
	if resp.User.ExternalUserID == "" {
		resp.User.ExternalUserID = userID
	}

	c.mux.Lock()
	previous, previousToken := c.selfID, c.authToken
	c.selfID = userID
	c.authToken = authToken
	c.user = resp.User
	c.mux.Unlock()

	if previous != "" && previous != userID {
		jww.INFO.Printf("Switching user from %s to %s", previous, userID)
		c.stream.Close()
		c.channels.Clear()
	} else if previous == userID && previousToken != authToken {
		jww.INFO.Printf("Auth token of %s changed, reopening stream", userID)
		c.stream.Close()
	}
	jww.INFO.Printf("Logged in as %s", userID)

	go func() {
		if _, err := c.FetchTotalUnreadCount(context.Background()); err != nil {
			jww.WARN.Printf("Failed to refresh total unread count: %+v", err)
		}
	}()

	if err := c.Connect(); err != nil {
		jww.WARN.Printf("Failed to connect after login: %+v", err)
	}

	u := resp.User
	return &u, nil
}

// LogoutUser removes the registered push token, if any, forgets the
// identity, drops the channel cache and closes the stream. Failing to remove
// the push token does not stop the logout.
func (c *Client) LogoutUser(ctx context.Context) {
	if err := c.push.Unregister(ctx); err != nil &&
		!errors.Is(err, notifications.ErrNoTokenRegistered) {
		jww.WARN.Printf("Failed to remove push token on logout: %+v", err)
	}

	c.mux.Lock()
	selfID := c.selfID
	c.selfID = ""
	c.authToken = ""
	c.user = model.User{}
	c.totalUnread = 0
	c.mux.Unlock()

	c.stream.Close()
	c.channels.Clear()

	if selfID != "" {
		jww.INFO.Printf("Logged out %s", selfID)
	}
}
