////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/nexchat/client/event"
	"gitlab.com/nexchat/client/restlike"
	"gitlab.com/nexchat/client/stream"
)

const testToken = "token-me"

func testClientParams(secret string) Params {
	p := GetDefaultParams()
	p.APIKey = "dev_key"
	p.APISecret = secret
	p.MarkReadWindow = 20 * time.Millisecond
	p.ReconnectDelay = time.Hour
	p.DialTimeout = time.Second
	p.RequestTimeout = time.Second
	return p
}

func newTestClient(t *testing.T, secret string) (*Client,
	*restlike.MockRequester, *stream.MockDialer) {
	r := restlike.NewMockRequester(t)
	d := stream.NewMockDialer(t)
	c, err := NewClientWithTransport(testClientParams(secret), r, d, nil)
	require.NoError(t, err)
	return c, r, d
}

// loggedInClient returns a client logged in as "me" with an open stream.
func loggedInClient(t *testing.T) (*Client, *restlike.MockRequester,
	*stream.MockConn) {
	c, r, d := newTestClient(t, "")
	r.Respond(restlike.Get, "/users/me", 200,
		`{"user":{"externalUserId":"me","userName":"Me"}}`)
	r.Respond(restlike.Get, "/users/me/total-unread-count", 200,
		`{"totalUnreadCount":7}`)

	refreshed := make(chan struct{}, 1)
	unsub, err := c.Subscribe(event.UserTotalUnreadCount, func(event.Event) {
		refreshed <- struct{}{}
	})
	require.NoError(t, err)
	defer unsub()

	_, err = c.LoginUser(ctxBG(), "me", testToken)
	require.NoError(t, err)

	var conn *stream.MockConn
	select {
	case conn = <-d.Dialed():
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for stream dial")
	}
	waitFor(t, func() bool { return c.ConnectionState() == stream.Connected })
	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for total unread refresh")
	}
	require.Equal(t, 7, c.TotalUnreadCount())
	return c, r, conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
