////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package stream

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/xx_network/primitives/netTime"
)

// ErrNotConnected is returned by Send when there is no open connection. The
// frame is dropped, never queued.
var ErrNotConnected = errors.New("stream is not connected")

// Params configures a Manager.
type Params struct {
	// URL is the stream endpoint.
	URL string

	// ReconnectDelay is the fixed wait before each reconnect attempt.
	ReconnectDelay time.Duration

	// MaxReconnectAttempts is the number of reconnects scheduled after the
	// last successful open before the loop gives up.
	MaxReconnectAttempts uint64

	// DialTimeout bounds each dial. Zero means no timeout.
	DialTimeout time.Duration
}

// GetDefaultParams returns the default stream Params for url.
func GetDefaultParams(url string) Params {
	return Params{
		URL:                  url,
		ReconnectDelay:       1500 * time.Millisecond,
		MaxReconnectAttempts: 10,
		DialTimeout:          30 * time.Second,
	}
}

// FrameHandler receives every inbound frame on the reader goroutine.
type FrameHandler func(data []byte)

// scheduleFunc runs f after d and returns a function that cancels it.
type scheduleFunc func(d time.Duration, f func()) (cancel func())

func afterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// Manager owns at most one connection at a time.
//
// A close from either end moves to Disconnected and schedules a reconnect
// after the fixed delay. Once MaxReconnectAttempts reconnects have been
// scheduled without a successful open the loop stops silently until the next
// explicit Connect. A dial failure counts as a close.
type Manager struct {
	dialer   Dialer
	params   Params
	onFrame  FrameHandler
	schedule scheduleFunc

	state    State
	since    time.Time
	conn     Conn
	header   http.Header
	policy   backoff.BackOff
	attempts int

	// generation is bumped by every explicit Connect and Close so that
	// goroutines and timers belonging to an older connection do nothing.
	generation  uint64
	cancelRetry func()

	mux sync.Mutex
}

// NewManager returns a disconnected Manager.
func NewManager(dialer Dialer, params Params, onFrame FrameHandler) *Manager {
	return newManager(dialer, params, onFrame, afterFunc)
}

func newManager(dialer Dialer, params Params, onFrame FrameHandler,
	schedule scheduleFunc) *Manager {
	return &Manager{
		dialer:   dialer,
		params:   params,
		onFrame:  onFrame,
		schedule: schedule,
		state:    Disconnected,
		since:    netTime.Now(),
		policy: backoff.WithMaxRetries(
			backoff.NewConstantBackOff(params.ReconnectDelay),
			params.MaxReconnectAttempts),
	}
}

// Connect starts connecting with the given credential headers. It does not
// block on the dial. It is a no-op when already connecting or connected.
// Otherwise it resets the reconnect counter.
func (m *Manager) Connect(header http.Header) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if m.state != Disconnected {
		jww.DEBUG.Printf("Stream already %s, will not connect again", m.state)
		return
	}

	m.generation++
	m.stopRetryUnsafe()
	m.header = header.Clone()
	m.policy.Reset()
	m.attempts = 0
	m.dialUnsafe()
}

// Close closes the current connection, if any, and stops the reconnect loop.
func (m *Manager) Close() {
	m.mux.Lock()
	m.generation++
	m.stopRetryUnsafe()
	conn := m.conn
	m.conn = nil
	m.setStateUnsafe(Disconnected)
	m.mux.Unlock()

	if conn != nil {
		if err := conn.Close(); err != nil {
			jww.DEBUG.Printf("Error closing stream: %+v", err)
		}
		jww.INFO.Printf("Stream closed")
	}
}

// Send writes one frame if connected. Otherwise the frame is dropped and
// ErrNotConnected is returned.
func (m *Manager) Send(data []byte) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if m.state != Connected || m.conn == nil {
		jww.WARN.Printf("Stream is %s, dropping outbound frame", m.state)
		return ErrNotConnected
	}
	if err := m.conn.WriteMessage(data); err != nil {
		return errors.Wrap(err, "failed to write frame")
	}
	return nil
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.state
}

// Status returns the state, when it was entered and the reconnect count.
func (m *Manager) Status() Status {
	m.mux.Lock()
	defer m.mux.Unlock()
	return Status{State: m.state, Since: m.since, Attempts: m.attempts}
}

func (m *Manager) setStateUnsafe(s State) {
	if m.state == s {
		return
	}
	jww.DEBUG.Printf("Stream state %s -> %s", m.state, s)
	m.state = s
	m.since = netTime.Now()
}

func (m *Manager) stopRetryUnsafe() {
	if m.cancelRetry != nil {
		m.cancelRetry()
		m.cancelRetry = nil
	}
}

// dialUnsafe moves to Connecting and dials in a new goroutine. The lock must
// be held.
func (m *Manager) dialUnsafe() {
	m.setStateUnsafe(Connecting)
	go m.dial(m.generation, m.header.Clone())
}

func (m *Manager) dial(gen uint64, header http.Header) {
	ctx := context.Background()
	if m.params.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.params.DialTimeout)
		defer cancel()
	}

	jww.DEBUG.Printf("Attempting stream connection to %s", m.params.URL)
	conn, err := m.dialer.Dial(ctx, m.params.URL, header)

	m.mux.Lock()
	if gen != m.generation {
		m.mux.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		jww.WARN.Printf("Stream connection failed: %+v", err)
		m.closedUnsafe()
		m.mux.Unlock()
		return
	}

	m.conn = conn
	m.setStateUnsafe(Connected)
	m.policy.Reset()
	m.attempts = 0
	m.mux.Unlock()

	jww.INFO.Printf("Connected to stream %s", m.params.URL)
	go m.read(gen, conn)
}

// read delivers frames until the connection ends.
func (m *Manager) read(gen uint64, conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			m.mux.Lock()
			current := gen == m.generation && m.conn == conn
			if current {
				jww.WARN.Printf("Stream connection closed: %s", describeClose(err))
				m.closedUnsafe()
			}
			m.mux.Unlock()
			return
		}
		jww.TRACE.Printf("Received stream frame: %s", data)
		m.onFrame(data)
	}
}

// closedUnsafe handles the end of the current connection: move to
// Disconnected and schedule the next attempt, unless the ceiling has been
// reached. The lock must be held.
func (m *Manager) closedUnsafe() {
	m.conn = nil
	m.setStateUnsafe(Disconnected)

	delay := m.policy.NextBackOff()
	if delay == backoff.Stop {
		jww.ERROR.Printf("Max stream connection attempts (%d) reached, "+
			"giving up until the next Connect", m.params.MaxReconnectAttempts)
		return
	}

	m.attempts++
	gen := m.generation
	jww.DEBUG.Printf("Will try to reconnect to stream in %s (attempt %d of %d)",
		delay, m.attempts, m.params.MaxReconnectAttempts)
	m.cancelRetry = m.schedule(delay, func() { m.retry(gen) })
}

func (m *Manager) retry(gen uint64) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if gen != m.generation || m.state != Disconnected {
		return
	}
	m.cancelRetry = nil
	m.dialUnsafe()
}
