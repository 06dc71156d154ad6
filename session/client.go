////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package session is the chat client: it holds the identity of the session,
// the cache of channels, the event stream and every pull operation of the
// API. Every event and every fetched channel flows through the Client so
// that each channel ID maps to a single cached Channel.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/ekv"
	"gitlab.com/nexchat/client/channels"
	"gitlab.com/nexchat/client/errs"
	"gitlab.com/nexchat/client/event"
	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/notifications"
	"gitlab.com/nexchat/client/restlike"
	"gitlab.com/nexchat/client/stream"
)

// Header names carrying credentials.
const (
	APIKeyHeader    = "api_key"
	APISecretHeader = "api_secret"
	AuthTokenHeader = "auth_token"
)

// Mode is the kind of integration a Client runs as.
type Mode uint8

const (
	// ClientMode acts on behalf of a logged-in end user.
	ClientMode Mode = iota

	// ServerMode is a server side integration authenticated by the API
	// secret.
	ServerMode
)

// String returns the Mode as a human-readable name.
func (m Mode) String() string {
	switch m {
	case ClientMode:
		return "client"
	case ServerMode:
		return "server"
	default:
		return "INVALID MODE"
	}
}

// Client is one chat session. It is safe for concurrent use.
type Client struct {
	params    Params
	mode      Mode
	requester restlike.Requester
	http      *restlike.HTTPRequester

	stream   *stream.Manager
	events   *event.Dispatcher
	channels *channels.Registry
	push     *notifications.Manager

	selfID      string
	authToken   string
	user        model.User
	totalUnread int

	mux sync.RWMutex
}

// NewClient returns a Client talking HTTP and WebSocket to the endpoints
// selected by params.
func NewClient(params Params) (*Client, error) {
	if params.APIKey == "" {
		return nil, errs.New(errs.InvalidArgument, apiKeyRequiredErr)
	}
	h, err := restlike.NewHTTPRequester(params.httpParams())
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create client")
	}
	c, err := NewClientWithTransport(params, h, stream.NewWebsocketDialer(), nil)
	if err != nil {
		return nil, err
	}
	c.http = h
	return c, nil
}

// NewClientWithTransport returns a Client using the given transports. The
// push token is persisted in kv; a nil kv keeps it in memory.
func NewClientWithTransport(params Params, r restlike.Requester,
	d stream.Dialer, kv ekv.KeyValue) (*Client, error) {
	if params.APIKey == "" {
		return nil, errs.New(errs.InvalidArgument, apiKeyRequiredErr)
	}
	if r == nil || d == nil {
		return nil, errs.New(errs.InvalidArgument, transportRequiredErr)
	}

	c := &Client{
		params:    params,
		mode:      ClientMode,
		requester: r,
		events:    event.NewDispatcher("client"),
	}
	if params.APISecret != "" {
		c.mode = ServerMode
	}
	c.stream = stream.NewManager(d, params.streamParams(), c.handleFrame)
	c.channels = channels.NewRegistry(c, params.channelParams())
	c.push = notifications.NewManager(c, kv)

	baseURL, streamURL := params.Endpoints()
	jww.INFO.Printf("Created %s mode client for %s (stream %s)",
		c.mode, baseURL, streamURL)
	return c, nil
}

// Mode returns the integration mode selected by the API secret.
func (c *Client) Mode() Mode {
	return c.mode
}

// SelfID returns the external user ID of the logged-in user, or an empty
// string.
func (c *Client) SelfID() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.selfID
}

// User returns the profile of the logged-in user.
func (c *Client) User() (model.User, bool) {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.user, c.selfID != ""
}

// Subscribe registers h for every event of the given kind received by the
// client, whether or not a cached channel also handled it.
func (c *Client) Subscribe(kind event.Kind, h event.Handler) (func(), error) {
	return c.events.Subscribe(kind, h)
}

// Channel returns the cached channel with the given ID.
func (c *Client) Channel(channelID string) (*channels.Channel, bool) {
	return c.channels.Get(channelID)
}

// Channels returns every cached channel.
func (c *Client) Channels() []*channels.Channel {
	return c.channels.Channels()
}

// SetDebugLogging toggles DEBUG logging of every API round trip. It only
// has an effect on clients built by NewClient.
func (c *Client) SetDebugLogging(enabled bool) {
	if c.http == nil {
		jww.DEBUG.Printf("Debug logging not supported by the transport")
		return
	}
	c.http.SetDebug(enabled)
}

// Call sends req with the session credentials and decodes the result into
// out.
func (c *Client) Call(ctx context.Context, req *restlike.Request,
	out interface{}) error {
	return c.call(ctx, req, out, requestFailedErr)
}

func (c *Client) call(ctx context.Context, req *restlike.Request,
	out interface{}, fallback string) error {
	authed := *req
	authed.Headers = c.credentials().Merge(req.Headers)
	return restlike.Do(ctx, c.requester, &authed, out, fallback)
}

// credentials returns the headers sent with every request.
func (c *Client) credentials() restlike.Headers {
	c.mux.RLock()
	defer c.mux.RUnlock()

	h := restlike.Headers{APIKeyHeader: c.params.APIKey}
	if c.params.APISecret != "" {
		h[APISecretHeader] = c.params.APISecret
	}
	if c.authToken != "" {
		h[AuthTokenHeader] = c.authToken
	}
	return h
}
