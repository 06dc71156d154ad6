////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package stream

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
)

// MockDialer is an in-memory Dialer for tests. When Fail is set every dial
// fails; otherwise each dial returns a new MockConn.
type MockDialer struct {
	fail   error
	dials  []http.Header
	conns  []*MockConn
	dialed chan *MockConn
	failed chan struct{}
	mux    sync.Mutex
}

// NewMockDialer returns a MockDialer. It panics if not called from a test.
func NewMockDialer(t interface{}) *MockDialer {
	switch t.(type) {
	case *testing.T, *testing.M, *testing.B, *testing.PB:
		break
	default:
		jww.FATAL.Panicf("NewMockDialer is restricted to testing only. "+
			"Got %T", t)
	}
	return &MockDialer{
		dialed: make(chan *MockConn, 64),
		failed: make(chan struct{}, 64),
	}
}

// Fail makes every following dial return err. A nil err restores success.
func (d *MockDialer) Fail(err error) {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.fail = err
}

// Dial implements Dialer.
func (d *MockDialer) Dial(_ context.Context, _ string,
	header http.Header) (Conn, error) {
	d.mux.Lock()
	d.dials = append(d.dials, header.Clone())
	fail := d.fail
	if fail != nil {
		d.mux.Unlock()
		d.failed <- struct{}{}
		return nil, fail
	}
	c := newMockConn()
	d.conns = append(d.conns, c)
	d.mux.Unlock()
	d.dialed <- c
	return c, nil
}

// Dials returns the headers of every dial so far.
func (d *MockDialer) Dials() []http.Header {
	d.mux.Lock()
	defer d.mux.Unlock()
	return append([]http.Header(nil), d.dials...)
}

// Dialed returns a channel receiving every successfully opened MockConn.
func (d *MockDialer) Dialed() <-chan *MockConn { return d.dialed }

// Failed returns a channel signalled on every failed dial.
func (d *MockDialer) Failed() <-chan struct{} { return d.failed }

// MockConn is an in-memory Conn.
type MockConn struct {
	inbound chan []byte
	closed  chan struct{}
	written [][]byte
	once    sync.Once
	mux     sync.Mutex
}

func newMockConn() *MockConn {
	return &MockConn{
		inbound: make(chan []byte, 64),
		closed:  make(chan struct{}),
	}
}

// Deliver queues an inbound frame.
func (c *MockConn) Deliver(data []byte) { c.inbound <- data }

// ReadMessage implements Conn.
func (c *MockConn) ReadMessage() ([]byte, error) {
	select {
	case data := <-c.inbound:
		return data, nil
	case <-c.closed:
		return nil, io.EOF
	}
}

// WriteMessage implements Conn.
func (c *MockConn) WriteMessage(data []byte) error {
	select {
	case <-c.closed:
		return errors.New("write on closed mock connection")
	default:
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	c.written = append(c.written, append([]byte(nil), data...))
	return nil
}

// Close implements Conn. It also simulates a remote close when called by a
// test.
func (c *MockConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

// Closed reports whether Close has been called.
func (c *MockConn) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Written returns every frame written so far.
func (c *MockConn) Written() [][]byte {
	c.mux.Lock()
	defer c.mux.Unlock()
	return append([][]byte(nil), c.written...)
}
