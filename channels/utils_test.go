////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/restlike"
)

// mockSession is a Session backed by a restlike.MockRequester and a Registry.
type mockSession struct {
	selfID string
	req    *restlike.MockRequester
	reg    *Registry
	mux    sync.Mutex
}

func newMockSession(t *testing.T, selfID string, params Params) *mockSession {
	s := &mockSession{
		selfID: selfID,
		req:    restlike.NewMockRequester(t),
	}
	s.reg = NewRegistry(s, params)
	return s
}

func (s *mockSession) SelfID() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.selfID
}

func (s *mockSession) setSelf(id string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.selfID = id
}

func (s *mockSession) Call(ctx context.Context, req *restlike.Request,
	out interface{}) error {
	return restlike.Do(ctx, s.req, req, out, "request failed")
}

func (s *mockSession) FetchChannelByID(ctx context.Context, channelID string,
	force bool) (*Channel, error) {
	if c, ok := s.reg.Get(channelID); ok && !force {
		return c, nil
	}
	var resp struct {
		Channel model.ChannelData `json:"channel"`
	}
	err := s.Call(ctx, &restlike.Request{
		Method: restlike.Get,
		URI:    restlike.URI("/channels/" + channelID),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return s.reg.Reconcile(resp.Channel), nil
}

func testParams() Params {
	p := GetDefaultParams()
	p.MarkReadWindow = 50 * time.Millisecond
	p.RefreshTimeout = time.Second
	return p
}

func member(id string, unread int, blocked bool) model.ChannelMember {
	return model.ChannelMember{
		User:              model.User{ExternalUserID: id},
		UnreadCount:       unread,
		HasBlockedChannel: blocked,
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal %T: %+v", v, err)
	}
	return string(data)
}

// blockingHandler answers 200 with body once release is closed.
func blockingHandler(release <-chan struct{}, body string) restlike.MockHandler {
	return func(ctx context.Context, _ *restlike.Request) (*restlike.Response, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &restlike.Response{Status: 200, Data: []byte(body)}, nil
	}
}
