////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	"context"

	"github.com/pkg/errors"
	"gitlab.com/nexchat/client/errs"
	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/restlike"
)

type uploadURLRequest struct {
	Metadata []model.UploadRequest `json:"metadata"`
}

type uploadURLResponse struct {
	URLs []model.UploadURL `json:"urls"`
}

// CreateUploadURLs requests one signed upload URL per file. The URLs are
// matched to the files by position and carry the file URI back; a MIME type
// or count mismatch fails with ServerError.
func (c *Client) CreateUploadURLs(ctx context.Context,
	files []model.UploadRequest) ([]model.UploadURL, error) {
	if len(files) == 0 {
		return []model.UploadURL{}, nil
	}

	req := &restlike.Request{
		Method: restlike.Post,
		URI:    "/upload-url",
		Body:   uploadURLRequest{Metadata: files},
	}
	var resp uploadURLResponse
	if err := c.Call(ctx, req, &resp); err != nil {
		return nil, errors.WithMessage(err, "failed to create upload urls")
	}

	if len(resp.URLs) != len(files) {
		return nil, errs.Newf(errs.ServerError, urlCountErr, len(files),
			len(resp.URLs))
	}

	urls := make([]model.UploadURL, len(files))
	for i, u := range resp.URLs {
		if u.MimeType != files[i].MimeType {
			return nil, errs.Newf(errs.ServerError, "%s for %s: %q != %q",
				mimeMismatchErr, files[i].FileURI, files[i].MimeType,
				u.MimeType)
		}
		u.URI = files[i].FileURI
		urls[i] = u
	}
	return urls, nil
}
