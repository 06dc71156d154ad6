////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package model

// UploadRequest describes a local file the caller wants to upload.
type UploadRequest struct {
	MimeType string `json:"mimeType"`
	FileURI  string `json:"fileUri"`
}

// UploadURL is a signed upload URL issued by the server, paired with the
// local file URI it was requested for.
type UploadURL struct {
	FileID   string `json:"fileId"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
	URI      string `json:"uri"`
}
