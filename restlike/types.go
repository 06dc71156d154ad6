////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package restlike is the request/response transport used by the client. A
// Requester sends an HTTP-shaped Request and returns the raw Response; it
// knows nothing about the chat API itself.
package restlike

import (
	"net/http"
	"net/url"
)

// URI is the path of a Request relative to the API base URL.
type URI string

// Method defines the possible Request types.
type Method uint32

const (
	// Undefined default value
	Undefined Method = iota
	// Get retrieves an existing resource.
	Get
	// Post creates a new resource.
	Post
	// Put updates an existing resource.
	Put
	// Patch partially updates an existing resource.
	Patch
	// Delete a resource.
	Delete
)

// methodStrings maps Method values to their HTTP verbs.
var methodStrings = map[Method]string{
	Undefined: "undefined",
	Get:       http.MethodGet,
	Post:      http.MethodPost,
	Put:       http.MethodPut,
	Patch:     http.MethodPatch,
	Delete:    http.MethodDelete,
}

// String returns the HTTP verb of the Method.
func (m Method) String() string {
	if methodStr, ok := methodStrings[m]; ok {
		return methodStr
	}
	return methodStrings[Undefined]
}

// Headers are the header values sent with a Request.
type Headers map[string]string

// Merge returns a new Headers with the entries of h overridden by other.
// Entries in other with an empty value remove the key.
func (h Headers) Merge(other Headers) Headers {
	out := make(Headers, len(h)+len(other))
	for k, v := range h {
		out[k] = v
	}
	for k, v := range other {
		if v == "" {
			delete(out, k)
		} else {
			out[k] = v
		}
	}
	return out
}

// Request is one request/response round trip.
type Request struct {
	Method  Method
	URI     URI
	Body    interface{}
	Query   url.Values
	Headers Headers
}

// String returns the verb and path of the Request.
func (r *Request) String() string {
	s := r.Method.String() + " " + string(r.URI)
	if len(r.Query) > 0 {
		s += "?" + r.Query.Encode()
	}
	return s
}

// Response is the raw result of a Request that reached the server.
type Response struct {
	Status int
	Data   []byte
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
