////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/nexchat/client/channels"
	"gitlab.com/nexchat/client/restlike"
	"gitlab.com/nexchat/client/stream"
)

// Environment endpoints. An API key starting with DevKeyPrefix is routed to
// the development pair.
const (
	DevKeyPrefix = "dev_"

	ProdBaseURL   = "https://api.nexchat.io"
	ProdStreamURL = "wss://ws.nexchat.io"
	DevBaseURL    = "https://dev-api.nexchat.io"
	DevStreamURL  = "wss://dev-ws.nexchat.io"
)

// Params configures a Client.
type Params struct {
	// APIKey identifies the application. Required.
	APIKey string

	// APISecret selects server integration mode when set.
	APISecret string

	// BaseURL and StreamURL override the endpoints chosen from the API key.
	BaseURL   string
	StreamURL string

	// ReconnectDelay is the fixed wait before each stream reconnect. Zero
	// uses the default.
	ReconnectDelay time.Duration

	// MaxReconnectAttempts bounds the reconnects after the last successful
	// stream open. Zero uses the default.
	MaxReconnectAttempts uint64

	// DialTimeout bounds each stream dial.
	DialTimeout time.Duration

	// MarkReadWindow is the minimum time between two mark-read requests for
	// one channel. Zero uses the default.
	MarkReadWindow time.Duration

	// RequestTimeout bounds each API round trip.
	RequestTimeout time.Duration

	// RequestsPerSecond caps the API request rate. Zero is unlimited.
	RequestsPerSecond int

	// DefaultChannelPageSize and DefaultMessagePageSize are used when a
	// page request gives no limit.
	DefaultChannelPageSize int
	DefaultMessagePageSize int
}

// GetDefaultParams returns the default Client Params. The API key still has
// to be set.
func GetDefaultParams() Params {
	return Params{
		ReconnectDelay:         1500 * time.Millisecond,
		MaxReconnectAttempts:   10,
		DialTimeout:            30 * time.Second,
		MarkReadWindow:         5 * time.Second,
		RequestTimeout:         30 * time.Second,
		RequestsPerSecond:      0,
		DefaultChannelPageSize: 10,
		DefaultMessagePageSize: 20,
	}
}

// ParseParams returns the default Params overridden by the given JSON, if
// any.
func ParseParams(data string) (Params, error) {
	p := GetDefaultParams()
	if len(data) > 0 {
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return Params{}, errors.Wrap(err, "failed to parse client params")
		}
	}
	return p, nil
}

// IsDevKey reports whether apiKey selects the development environment.
func IsDevKey(apiKey string) bool {
	return strings.HasPrefix(apiKey, DevKeyPrefix)
}

// Endpoints returns the API base URL and stream URL for the params.
func (p Params) Endpoints() (baseURL, streamURL string) {
	baseURL, streamURL = ProdBaseURL, ProdStreamURL
	if IsDevKey(p.APIKey) {
		baseURL, streamURL = DevBaseURL, DevStreamURL
	}
	if p.BaseURL != "" {
		baseURL = p.BaseURL
	}
	if p.StreamURL != "" {
		streamURL = p.StreamURL
	}
	return baseURL, streamURL
}

func (p Params) httpParams() restlike.HTTPParams {
	baseURL, _ := p.Endpoints()
	return restlike.HTTPParams{
		BaseURL:           baseURL,
		Timeout:           p.RequestTimeout,
		RequestsPerSecond: p.RequestsPerSecond,
	}
}

func (p Params) streamParams() stream.Params {
	_, streamURL := p.Endpoints()
	sp := stream.GetDefaultParams(streamURL)
	if p.ReconnectDelay > 0 {
		sp.ReconnectDelay = p.ReconnectDelay
	}
	if p.MaxReconnectAttempts > 0 {
		sp.MaxReconnectAttempts = p.MaxReconnectAttempts
	}
	if p.DialTimeout > 0 {
		sp.DialTimeout = p.DialTimeout
	}
	return sp
}

func (p Params) channelParams() channels.Params {
	cp := channels.GetDefaultParams()
	if p.MarkReadWindow > 0 {
		cp.MarkReadWindow = p.MarkReadWindow
	}
	if p.DefaultMessagePageSize > 0 {
		cp.MessagePageSize = p.DefaultMessagePageSize
	}
	if p.RequestTimeout > 0 {
		cp.RefreshTimeout = p.RequestTimeout
	}
	return cp
}
