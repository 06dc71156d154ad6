////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	"context"

	"gitlab.com/nexchat/client/notifications"
)

// SetPushToken registers a device push token for the logged-in user. The
// token is remembered and removed again by LogoutUser, even when the
// registration request itself failed. Request failures are only logged.
func (c *Client) SetPushToken(ctx context.Context, token string,
	provider notifications.Provider) error {
	return c.push.Register(ctx, token, provider)
}

// UnsetPushToken removes the registered push token. It returns
// notifications.ErrNoTokenRegistered when none is registered.
func (c *Client) UnsetPushToken(ctx context.Context) error {
	return c.push.Unregister(ctx)
}

// PushToken returns the registered push token, if any.
func (c *Client) PushToken() (notifications.Token, bool) {
	return c.push.Stored()
}
