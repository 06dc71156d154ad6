////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"gitlab.com/nexchat/client/errs"
	"gitlab.com/nexchat/client/stream"
)

// Connect opens the event stream with the session credentials. It returns
// immediately; use ConnectionState to follow the connection. It is a no-op
// while connecting or connected, and fails in server mode or before login.
func (c *Client) Connect() error {
	if err := c.requireClient("Connect"); err != nil {
		return err
	}

	c.mux.RLock()
	selfID, token := c.selfID, c.authToken
	c.mux.RUnlock()
	if selfID == "" || token == "" {
		return errs.InvalidInvocationErr("Connect", loginRequiredErr)
	}

	header := http.Header{}
	header.Set(APIKeyHeader, c.params.APIKey)
	header.Set(AuthTokenHeader, token)
	c.stream.Connect(header)
	return nil
}

// ConnectionState returns the state of the event stream.
func (c *Client) ConnectionState() stream.State {
	return c.stream.State()
}

// ReconnectAttempts returns the number of reconnects scheduled since the
// stream last opened.
func (c *Client) ReconnectAttempts() int {
	return c.stream.Status().Attempts
}

// SendFrame sends payload as one JSON frame on the stream. It fails with
// stream.ErrNotConnected, without queueing, when the stream is not open.
func (c *Client) SendFrame(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(errs.InvalidArgument,
			errors.WithStack(err), "frame cannot be serialized")
	}
	return c.stream.Send(data)
}
