////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package restlike

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"go.uber.org/ratelimit"
)

// RequestIDHeader carries a unique id per request for server side tracing.
const RequestIDHeader = "X-Request-Id"

// HTTPParams configures an HTTPRequester.
type HTTPParams struct {
	// BaseURL is prepended to every Request URI.
	BaseURL string

	// Timeout bounds each round trip. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond caps the outgoing request rate. Zero means
	// unlimited.
	RequestsPerSecond int

	// HTTPClient is used for all requests. If nil, a client with Timeout is
	// created.
	HTTPClient *http.Client
}

// HTTPRequester is the net/http implementation of Requester.
type HTTPRequester struct {
	baseURL    string
	httpClient *http.Client
	limiter    ratelimit.Limiter
	debug      uint32
}

// NewHTTPRequester returns an HTTPRequester for the given params.
func NewHTTPRequester(p HTTPParams) (*HTTPRequester, error) {
	if p.BaseURL == "" {
		return nil, errors.New("restlike: BaseURL is required")
	}

	httpClient := p.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: p.Timeout}
	}

	limiter := ratelimit.NewUnlimited()
	if p.RequestsPerSecond > 0 {
		limiter = ratelimit.New(p.RequestsPerSecond)
	}

	return &HTTPRequester{
		baseURL:    strings.TrimRight(p.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

// SetDebug toggles logging of every request and response at DEBUG level.
func (h *HTTPRequester) SetDebug(enabled bool) {
	var v uint32
	if enabled {
		v = 1
	}
	atomic.StoreUint32(&h.debug, v)
}

func (h *HTTPRequester) debugEnabled() bool {
	return atomic.LoadUint32(&h.debug) == 1
}

// Request implements Requester.
func (h *HTTPRequester) Request(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal body of %s", req)
		}
		body = bytes.NewReader(data)
	}

	target := h.baseURL + "/" + strings.TrimLeft(string(req.URI), "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s", req)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)

	h.limiter.Take()

	start := time.Now()
	httpResp, err := h.httpClient.Do(httpReq)
	if err != nil {
		if h.debugEnabled() {
			jww.DEBUG.Printf("[%s] %s failed: %+v", requestID, req, err)
		}
		return nil, errors.Wrapf(err, "%s", req)
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response of %s", req)
	}

	if h.debugEnabled() {
		jww.DEBUG.Printf("[%s] %s -> %d in %s (%d bytes)", requestID, req,
			httpResp.StatusCode, time.Since(start), len(data))
	}

	return &Response{Status: httpResp.StatusCode, Data: data}, nil
}
