////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package session

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/nexchat/client/model"
	"gitlab.com/nexchat/client/restlike"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// CreateUserToken mints an auth token for userID. It is only available in
// server mode.
func (c *Client) CreateUserToken(ctx context.Context, userID string) (
	string, error) {
	if err := c.requireServer("CreateUserToken"); err != nil {
		return "", err
	}
	if err := requireArg("externalUserId", userID); err != nil {
		return "", err
	}

	req := &restlike.Request{
		Method: restlike.Post,
		URI:    restlike.URI("/users/" + url.PathEscape(userID) + "/token"),
	}
	var resp tokenResponse
	if err := c.Call(ctx, req, &resp); err != nil {
		return "", errors.WithMessagef(err, "failed to create token for %s",
			userID)
	}
	return resp.Token, nil
}

// ListUsers returns a page of the application's users.
func (c *Client) ListUsers(ctx context.Context, page model.PageRequest) (
	*model.UserPage, error) {
	req := &restlike.Request{
		Method: restlike.Get,
		URI:    "/users",
		Query:  c.pageQuery(page),
	}
	resp := &model.UserPage{}
	if err := c.Call(ctx, req, resp); err != nil {
		return nil, errors.WithMessage(err, "failed to list users")
	}
	if resp.Users == nil {
		resp.Users = []model.User{}
	}
	return resp, nil
}

// UpdateUser changes the profile of the logged-in user and returns the
// stored profile, which also becomes the session's profile. It is only
// available in client mode.
func (c *Client) UpdateUser(ctx context.Context, update model.UserUpdate) (
	*model.User, error) {
	if err := c.requireClient("UpdateUser"); err != nil {
		return nil, err
	}
	selfID, err := c.requireLogin("UpdateUser")
	if err != nil {
		return nil, err
	}

	req := &restlike.Request{
		Method: restlike.Put,
		URI:    restlike.URI("/users/" + url.PathEscape(selfID)),
		Body:   update,
	}
	var resp userResponse
	if err = c.call(ctx, req, &resp, updateUserErr); err != nil {
		return nil, err
	}

	c.mux.Lock()
	if c.selfID == selfID {
		c.user = resp.User
		if c.user.ExternalUserID == "" {
			c.user.ExternalUserID = selfID
		}
	}
	c.mux.Unlock()
	jww.DEBUG.Printf("Updated profile of %s", selfID)

	u := resp.User
	return &u, nil
}

// UpsertUser creates or replaces the user with the given external ID. It is
// only available in server mode.
func (c *Client) UpsertUser(ctx context.Context, user model.User) (
	*model.User, error) {
	if err := c.requireServer("UpsertUser"); err != nil {
		return nil, err
	}
	if err := requireArg("externalUserId", user.ExternalUserID); err != nil {
		return nil, err
	}

	req := &restlike.Request{
		Method: restlike.Put,
		URI:    restlike.URI("/users/" + url.PathEscape(user.ExternalUserID)),
		Body: model.UserUpdate{
			UserName:        optional(user.UserName),
			ProfileImageURL: optional(user.ProfileImageURL),
			Metadata:        user.Metadata,
		},
	}
	var resp userResponse
	if err := c.call(ctx, req, &resp, upsertUserErr); err != nil {
		return nil, err
	}
	u := resp.User
	return &u, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
