////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package notifications

import (
	"context"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/ekv"
	"gitlab.com/nexchat/client/errs"
	"gitlab.com/nexchat/client/restlike"
)

const tokenStoreKey = "notificationsPushToken"

// Error messages.
const (
	notLoggedInErr     = "a user must be logged in"
	emptyTokenErr      = "the push token cannot be empty"
	invalidProviderErr = "unknown push provider %q"
	setTokenErr        = "failed to set push token"
	unsetTokenErr      = "failed to unset push token"
	storeTokenErr      = "failed to store push token"
)

// ErrNoTokenRegistered is returned by Unregister when no token is stored.
var ErrNoTokenRegistered = errors.New("no push token is registered")

// Manager registers and unregisters the push token.
type Manager struct {
	session Session
	kv      ekv.KeyValue
	token   Token
	mux     sync.Mutex
}

// NewManager returns a Manager storing its token in kv. A nil kv uses an
// in-memory store. A token left in kv by an earlier Manager is loaded.
func NewManager(s Session, kv ekv.KeyValue) *Manager {
	if kv == nil {
		kv = ekv.MakeMemstore()
	}
	m := &Manager{session: s, kv: kv}
	m.loadTokenUnsafe()
	return m
}

// Register stores token and sends it to the server for the logged-in user.
// Only invalid arguments and a missing login are returned. A failed request
// is logged and the token stays stored, so Unregister still removes it.
func (m *Manager) Register(ctx context.Context, token string,
	provider Provider) error {
	selfID := m.session.SelfID()
	if selfID == "" {
		return errs.InvalidInvocationErr("SetPushToken", notLoggedInErr)
	}
	if token == "" {
		return errs.New(errs.InvalidArgument, emptyTokenErr)
	}
	if !provider.Valid() {
		return errs.Newf(errs.InvalidArgument, invalidProviderErr, provider)
	}

	m.mux.Lock()
	defer m.mux.Unlock()

	if err := m.setTokenUnsafe(Token{
		Token: token, Provider: provider, UserID: selfID,
	}); err != nil {
		jww.WARN.Printf("%+v", err)
	}

	req := &restlike.Request{
		Method: restlike.Post,
		URI:    restlike.URI("/users/" + url.PathEscape(selfID) + "/push-token"),
		Body: map[string]string{
			"pushToken": token,
			"provider":  string(provider),
		},
	}
	if err := m.session.Call(ctx, req, nil); err != nil {
		jww.WARN.Printf("%+v", errors.WithMessage(err, setTokenErr))
		return nil
	}

	jww.INFO.Printf("Registered %s push token for %s", provider, selfID)
	return nil
}

// Unregister removes the stored token from the server and from storage. It
// returns ErrNoTokenRegistered when there is nothing to remove.
func (m *Manager) Unregister(ctx context.Context) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if m.token.Token == "" {
		return errors.WithStack(ErrNoTokenRegistered)
	}

	userID := m.token.UserID
	if userID == "" {
		userID = m.session.SelfID()
	}
	if userID == "" {
		return errs.InvalidInvocationErr("UnsetPushToken", notLoggedInErr)
	}

	req := &restlike.Request{
		Method: restlike.Post,
		URI: restlike.URI(
			"/users/" + url.PathEscape(userID) + "/push-token/delete"),
		Body: map[string]string{"pushToken": m.token.Token},
	}
	if err := m.session.Call(ctx, req, nil); err != nil {
		return errors.WithMessage(err, unsetTokenErr)
	}

	m.deleteTokenUnsafe()
	jww.INFO.Printf("Unregistered push token for %s", userID)
	return nil
}

// Stored returns the registered token, if any.
func (m *Manager) Stored() (Token, bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.token, m.token.Token != ""
}

func (m *Manager) setTokenUnsafe(t Token) error {
	m.token = t
	return errors.Wrap(m.kv.SetInterface(tokenStoreKey, t), storeTokenErr)
}

func (m *Manager) loadTokenUnsafe() {
	var t Token
	if err := m.kv.GetInterface(tokenStoreKey, &t); err != nil {
		if ekv.Exists(err) {
			jww.WARN.Printf("Failed to load push token: %+v", err)
		}
		return
	}
	m.token = t
}

func (m *Manager) deleteTokenUnsafe() {
	m.token = Token{}
	if err := m.kv.Delete(tokenStoreKey); err != nil && ekv.Exists(err) {
		jww.WARN.Printf("Failed to delete stored push token: %+v", err)
	}
}
