////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package stream owns the long-lived duplex connection that delivers push
// events. Manager runs the disconnected/connecting/connected state machine
// and the bounded, fixed-delay reconnect loop on top of any Dialer.
package stream

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Dialer opens duplex connections.
type Dialer interface {
	Dial(ctx context.Context, url string, header http.Header) (Conn, error)
}

// Conn is an open duplex connection carrying text frames. ReadMessage blocks
// until a frame arrives; it returns an error once the connection is closed
// from either end. Close unblocks a pending ReadMessage.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// WebsocketDialer dials with github.com/gorilla/websocket.
type WebsocketDialer struct {
	Dialer *websocket.Dialer
}

// NewWebsocketDialer returns a WebsocketDialer using the default gorilla
// dialer settings.
func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{Dialer: websocket.DefaultDialer}
}

// Dial implements Dialer.
func (d *WebsocketDialer) Dial(ctx context.Context, url string,
	header http.Header) (Conn, error) {
	dialer := d.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	ws, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, errors.Wrapf(err, "error dialing %s (status %d)",
				url, resp.StatusCode)
		}
		return nil, errors.Wrapf(err, "error dialing %s", url)
	}
	return &websocketConn{ws: ws}, nil
}

// websocketConn adapts *websocket.Conn to Conn. Binary frames are passed
// through unchanged.
type websocketConn struct {
	ws *websocket.Conn
}

func (c *websocketConn) ReadMessage() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

func (c *websocketConn) WriteMessage(data []byte) error {
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *websocketConn) Close() error {
	_ = c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.ws.Close()
}

// describeClose returns a loggable description of a read error. Close frames
// report their code and reason.
func describeClose(err error) string {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return err.Error()
}
