////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package notifications

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gitlab.com/elixxir/ekv"
	"gitlab.com/nexchat/client/errs"
	"gitlab.com/nexchat/client/restlike"
)

type mockSession struct {
	selfID string
	req    *restlike.MockRequester
	mux    sync.Mutex
}

func (s *mockSession) SelfID() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.selfID
}

func (s *mockSession) Call(ctx context.Context, req *restlike.Request,
	out interface{}) error {
	return restlike.Do(ctx, s.req, req, out, "request failed")
}

func newTestManager(t *testing.T, self string, kv ekv.KeyValue) (
	*Manager, *mockSession) {
	s := &mockSession{selfID: self, req: restlike.NewMockRequester(t)}
	return NewManager(s, kv), s
}

func TestManager_Register(t *testing.T) {
	kv := ekv.MakeMemstore()
	m, s := newTestManager(t, "me", kv)
	s.req.Respond(restlike.Post, "/users/me/push-token", 200, `{}`)

	require.NoError(t, m.Register(context.Background(), "tok", FCM))

	calls := s.req.CallsTo(restlike.Post, "/users/me/push-token")
	require.Len(t, calls, 1)
	body := calls[0].Body.(map[string]string)
	require.Equal(t, "tok", body["pushToken"])
	require.Equal(t, "FCM", body["provider"])

	stored, ok := m.Stored()
	require.True(t, ok)
	expected := Token{Token: "tok", Provider: FCM, UserID: "me"}
	if stored != expected {
		t.Errorf("Unexpected stored token.\nexpected: %+v\nreceived: %+v",
			expected, stored)
	}

	// A new manager on the same store loads the token.
	loaded, _ := newTestManager(t, "me", kv)
	stored, ok = loaded.Stored()
	require.True(t, ok)
	require.Equal(t, expected, stored)
}

func TestManager_Register_Invalid(t *testing.T) {
	m, s := newTestManager(t, "", nil)
	err := m.Register(context.Background(), "tok", APNS)
	require.True(t, errs.Is(err, errs.InvalidInvocation), "%+v", err)

	s.selfID = "me"
	err = m.Register(context.Background(), "", APNS)
	require.True(t, errs.Is(err, errs.InvalidArgument), "%+v", err)
	err = m.Register(context.Background(), "tok", Provider("GCM"))
	require.True(t, errs.Is(err, errs.InvalidArgument), "%+v", err)
	require.Len(t, s.req.Calls(), 0)

	_, ok := m.Stored()
	require.False(t, ok)
}

// A failed registration is only logged and the token is kept for removal.
func TestManager_Register_RequestFails(t *testing.T) {
	kv := ekv.MakeMemstore()
	m, s := newTestManager(t, "me", kv)
	s.req.Respond(restlike.Post, "/users/me/push-token", 500,
		`{"error":"bad token"}`)

	require.NoError(t, m.Register(context.Background(), "tok", APNS))
	require.Len(t, s.req.CallsTo(restlike.Post, "/users/me/push-token"), 1)

	stored, ok := m.Stored()
	require.True(t, ok)
	expected := Token{Token: "tok", Provider: APNS, UserID: "me"}
	if stored != expected {
		t.Errorf("Unexpected stored token.\nexpected: %+v\nreceived: %+v",
			expected, stored)
	}

	loaded, _ := newTestManager(t, "me", kv)
	stored, ok = loaded.Stored()
	require.True(t, ok)
	require.Equal(t, expected, stored)

	s.req.Respond(restlike.Post, "/users/me/push-token/delete", 200, `{}`)
	require.NoError(t, m.Unregister(context.Background()))
	_, ok = m.Stored()
	require.False(t, ok)
}

func TestManager_Unregister(t *testing.T) {
	kv := ekv.MakeMemstore()
	m, s := newTestManager(t, "me", kv)

	err := m.Unregister(context.Background())
	require.True(t, errors.Is(err, ErrNoTokenRegistered), "%+v", err)

	s.req.Respond(restlike.Post, "/users/me/push-token", 200, `{}`)
	s.req.Fail(restlike.Post, "/users/me/push-token/delete",
		errors.New("offline"))
	require.NoError(t, m.Register(context.Background(), "tok", APNS))

	// A failed removal keeps the token.
	err = m.Unregister(context.Background())
	require.True(t, errs.Is(err, errs.NetworkError), "%+v", err)
	_, ok := m.Stored()
	require.True(t, ok)

	s.req.Respond(restlike.Post, "/users/me/push-token/delete", 200, `{}`)
	require.NoError(t, m.Unregister(context.Background()))
	_, ok = m.Stored()
	require.False(t, ok)

	body := s.req.CallsTo(restlike.Post, "/users/me/push-token/delete")[1].
		Body.(map[string]string)
	require.Equal(t, "tok", body["pushToken"])

	loaded, _ := newTestManager(t, "me", kv)
	_, ok = loaded.Stored()
	require.False(t, ok)
}

func TestProvider_Valid(t *testing.T) {
	require.True(t, FCM.Valid())
	require.True(t, APNS.Valid())
	require.False(t, Provider("").Valid())
}
