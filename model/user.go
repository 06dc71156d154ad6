////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package model contains the wire data model shared by the request/response
// API and the event stream.
package model

// User is an external identity known to the chat service.
type User struct {
	ExternalUserID  string                 `json:"externalUserId"`
	UserName        string                 `json:"userName,omitempty"`
	ProfileImageURL string                 `json:"profileImageUrl,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// UserUpdate is the mutable part of a User. Nil fields are left untouched by
// the server.
type UserUpdate struct {
	UserName        *string                `json:"userName,omitempty"`
	ProfileImageURL *string                `json:"profileImageUrl,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users      []User `json:"users"`
	IsLastPage bool   `json:"isLastPage"`
}

// PageRequest is the offset+limit request shape shared by every listing.
type PageRequest struct {
	Limit  int
	Offset int
}
