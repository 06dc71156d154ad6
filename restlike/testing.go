////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package restlike

import (
	"context"
	"fmt"
	"sync"
	"testing"

	jww "github.com/spf13/jwalterweatherman"
)

// MockHandler produces the result of one mocked round trip.
type MockHandler func(ctx context.Context, req *Request) (*Response, error)

// MockRequester is an in-memory Requester with scripted routes. Requests to
// unknown routes get a 404 response. It is restricted to tests.
type MockRequester struct {
	routes map[string]MockHandler
	calls  []*Request
	mux    sync.Mutex
}

// NewMockRequester returns an empty MockRequester. It panics if t is not a
// testing object.
func NewMockRequester(t interface{}) *MockRequester {
	switch t.(type) {
	case *testing.T, *testing.M, *testing.B, *testing.PB:
		break
	default:
		jww.FATAL.Panicf("NewMockRequester is restricted to testing "+
			"only. Got %T", t)
	}
	return &MockRequester{routes: make(map[string]MockHandler)}
}

func routeKey(method Method, uri URI) string {
	return method.String() + " " + string(uri)
}

// Handle sets the handler for method and uri, replacing any previous one.
func (m *MockRequester) Handle(method Method, uri URI, h MockHandler) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.routes[routeKey(method, uri)] = h
}

// Respond makes method and uri always answer with status and body.
func (m *MockRequester) Respond(method Method, uri URI, status int, body string) {
	m.Handle(method, uri, func(context.Context, *Request) (*Response, error) {
		return &Response{Status: status, Data: []byte(body)}, nil
	})
}

// Fail makes method and uri always fail at the transport level with err.
func (m *MockRequester) Fail(method Method, uri URI, err error) {
	m.Handle(method, uri, func(context.Context, *Request) (*Response, error) {
		return nil, err
	})
}

// Request implements Requester. Handlers run without the lock held, so they
// may block.
func (m *MockRequester) Request(ctx context.Context, req *Request) (*Response, error) {
	m.mux.Lock()
	m.calls = append(m.calls, req)
	h, ok := m.routes[routeKey(req.Method, req.URI)]
	m.mux.Unlock()

	if !ok {
		return &Response{Status: 404, Data: []byte(fmt.Sprintf(
			`{"error":"no mock route for %s"}`, routeKey(req.Method, req.URI)))}, nil
	}
	return h(ctx, req)
}

// Calls returns every request received so far, in order.
func (m *MockRequester) Calls() []*Request {
	m.mux.Lock()
	defer m.mux.Unlock()
	return append([]*Request(nil), m.calls...)
}

// CallsTo returns the requests received for method and uri.
func (m *MockRequester) CallsTo(method Method, uri URI) []*Request {
	m.mux.Lock()
	defer m.mux.Unlock()
	var out []*Request
	for _, c := range m.calls {
		if c.Method == method && c.URI == uri {
			out = append(out, c)
		}
	}
	return out
}
