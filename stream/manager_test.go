////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package stream

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// manualScheduler holds scheduled retries until the test runs them.
type manualScheduler struct {
	delays []time.Duration
	funcs  []func()
	mux    sync.Mutex
}

func (s *manualScheduler) schedule(d time.Duration, f func()) func() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.delays = append(s.delays, d)
	s.funcs = append(s.funcs, f)
	return func() {}
}

func (s *manualScheduler) count() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.funcs)
}

func (s *manualScheduler) run(i int) {
	s.mux.Lock()
	f := s.funcs[i]
	s.mux.Unlock()
	f()
}

func testParams() Params {
	p := GetDefaultParams("wss://stream.test")
	p.DialTimeout = time.Second
	return p
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

func header(token string) http.Header {
	h := http.Header{}
	h.Set("auth_token", token)
	return h
}

// Stream delivers frames to the handler after a successful open.
func TestManager_ConnectDeliversFrames(t *testing.T) {
	d := NewMockDialer(t)
	frames := make(chan []byte, 4)
	m := newManager(d, testParams(), func(b []byte) { frames <- b },
		(&manualScheduler{}).schedule)

	m.Connect(header("tok"))
	conn := <-d.Dialed()
	waitFor(t, func() bool { return m.State() == Connected })

	conn.Deliver([]byte(`{"eventType":"message.new"}`))
	select {
	case f := <-frames:
		require.Equal(t, `{"eventType":"message.new"}`, string(f))
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for frame")
	}

	require.Equal(t, "tok", d.Dials()[0].Get("auth_token"))
}

// A second Connect while connecting or connected does not dial again.
func TestManager_ConnectIdempotent(t *testing.T) {
	d := NewMockDialer(t)
	m := newManager(d, testParams(), func([]byte) {},
		(&manualScheduler{}).schedule)

	m.Connect(header("tok"))
	<-d.Dialed()
	waitFor(t, func() bool { return m.State() == Connected })
	m.Connect(header("tok"))
	m.Connect(header("tok"))

	if n := len(d.Dials()); n != 1 {
		t.Errorf("Unexpected number of dials.\nexpected: %d\nreceived: %d", 1, n)
	}
}

// Eleven consecutive failed connections schedule exactly ten reconnects.
func TestManager_ReconnectCeiling(t *testing.T) {
	d := NewMockDialer(t)
	d.Fail(errors.New("refused"))
	s := &manualScheduler{}
	m := newManager(d, testParams(), func([]byte) {}, s.schedule)

	m.Connect(header("tok"))
	<-d.Failed()
	waitFor(t, func() bool { return s.count() == 1 })

	for i := 0; i < 10; i++ {
		s.run(i)
		<-d.Failed()
		if i < 9 {
			want := i + 2
			waitFor(t, func() bool { return s.count() == want })
		}
	}

	// Eleventh close: no further reconnect.
	waitFor(t, func() bool { return m.State() == Disconnected })
	time.Sleep(20 * time.Millisecond)
	if n := s.count(); n != 10 {
		t.Errorf("Unexpected number of scheduled reconnects."+
			"\nexpected: %d\nreceived: %d", 10, n)
	}
	require.Len(t, d.Dials(), 11)
	for _, delay := range s.delays {
		require.Equal(t, 1500*time.Millisecond, delay)
	}

	// An explicit Connect resets the counter.
	d.Fail(nil)
	m.Connect(header("tok"))
	<-d.Dialed()
	waitFor(t, func() bool { return m.State() == Connected })
	require.Equal(t, 0, m.Status().Attempts)
}

// A remote close after a successful open schedules a reconnect that reuses
// the same headers.
func TestManager_RemoteCloseReconnects(t *testing.T) {
	d := NewMockDialer(t)
	s := &manualScheduler{}
	m := newManager(d, testParams(), func([]byte) {}, s.schedule)

	m.Connect(header("tok"))
	conn := <-d.Dialed()
	waitFor(t, func() bool { return m.State() == Connected })

	_ = conn.Close()
	waitFor(t, func() bool { return s.count() == 1 })
	require.Equal(t, Disconnected, m.State())
	require.Equal(t, 1, m.Status().Attempts)

	s.run(0)
	<-d.Dialed()
	waitFor(t, func() bool { return m.State() == Connected })
	require.Equal(t, 0, m.Status().Attempts)
	require.Equal(t, "tok", d.Dials()[1].Get("auth_token"))
}

// An explicit Close never schedules a reconnect.
func TestManager_CloseNoReconnect(t *testing.T) {
	d := NewMockDialer(t)
	s := &manualScheduler{}
	m := newManager(d, testParams(), func([]byte) {}, s.schedule)

	m.Connect(header("tok"))
	conn := <-d.Dialed()
	waitFor(t, func() bool { return m.State() == Connected })

	m.Close()
	require.True(t, conn.Closed())
	require.Equal(t, Disconnected, m.State())
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 0, s.count())
}

// Send only writes while connected.
func TestManager_Send(t *testing.T) {
	d := NewMockDialer(t)
	m := newManager(d, testParams(), func([]byte) {},
		(&manualScheduler{}).schedule)

	err := m.Send([]byte("early"))
	require.ErrorIs(t, err, ErrNotConnected)

	m.Connect(header("tok"))
	conn := <-d.Dialed()
	waitFor(t, func() bool { return m.State() == Connected })

	require.NoError(t, m.Send([]byte("hello")))
	require.Equal(t, [][]byte{[]byte("hello")}, conn.Written())
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		Disconnected: "disconnected",
		Connecting:   "connecting",
		Connected:    "connected",
		State(42):    "INVALID STATE",
	}
	for s, expected := range tests {
		if s.String() != expected {
			t.Errorf("Unexpected string.\nexpected: %s\nreceived: %s",
				expected, s.String())
		}
	}
}
