////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package restlike

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"gitlab.com/nexchat/client/errs"
)

// Requester sends a Request. It returns a non-nil Response for every request
// that reached the server, whatever its status, and an error only when the
// transport itself failed.
type Requester interface {
	Request(ctx context.Context, req *Request) (*Response, error)
}

// Caller performs an API call and decodes the JSON result into out. It is
// what higher layers depend on.
type Caller interface {
	Call(ctx context.Context, req *Request, out interface{}) error
}

// Do sends req over r and translates the outcome. Transport failures become
// NetworkError, non-2xx responses become Unauthorized or ServerError with
// the richest message available, and a 2xx body is decoded into out when out
// is not nil. The fallback message is used when nothing better is known.
func Do(ctx context.Context, r Requester, req *Request, out interface{},
	fallback string) error {
	resp, err := r.Request(ctx, req)
	if err != nil {
		if errs.KindOf(err) != errs.Unknown {
			return err
		}
		return errs.Wrap(errs.NetworkError, err, req.String())
	}

	if !resp.OK() {
		return errs.FromResponse(resp.Status, resp.Data, fallback)
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err = json.Unmarshal(resp.Data, out); err != nil {
		return errs.Wrap(errs.ServerError,
			errors.Wrap(err, "failed to parse response"), req.String())
	}
	return nil
}
