////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import "gitlab.com/nexchat/client/errs"

// Error messages.
const (
	apiKeyRequiredErr    = "API Key is required"
	transportRequiredErr = "a requester and a dialer are required"
	requestFailedErr     = "Request failed"
	serverOnlyErr        = "this method should not be called on the frontend"
	clientOnlyErr        = "this method is not supported for server to " +
		"server integration"
	loginRequiredErr = "call LoginUser first"
	emptyArgumentErr = "%s cannot be empty"
	updateUserErr    = "Error updating user"
	upsertUserErr    = "Error upserting user"
	mimeMismatchErr  = "mimeType mismatch"
	urlCountErr      = "expected %d upload urls, received %d"
)

// requireServer fails unless the client is in server mode.
func (c *Client) requireServer(op string) error {
	if c.mode != ServerMode {
		return errs.InvalidInvocationErr(op, serverOnlyErr)
	}
	return nil
}

// requireClient fails unless the client is in client mode.
func (c *Client) requireClient(op string) error {
	if c.mode != ClientMode {
		return errs.InvalidInvocationErr(op, clientOnlyErr)
	}
	return nil
}

// requireLogin returns the logged-in user ID or fails.
func (c *Client) requireLogin(op string) (string, error) {
	selfID := c.SelfID()
	if selfID == "" {
		return "", errs.InvalidInvocationErr(op, loginRequiredErr)
	}
	return selfID, nil
}

func requireArg(name, value string) error {
	if value == "" {
		return errs.Newf(errs.InvalidArgument, emptyArgumentErr, name)
	}
	return nil
}
