////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package notifications registers the device push-notification token of the
// logged-in user with the server and remembers it so it can be removed again
// on logout.
package notifications

import (
	"gitlab.com/nexchat/client/restlike"
)

// Provider is the push service a token belongs to.
type Provider string

const (
	// FCM is Firebase Cloud Messaging.
	FCM Provider = "FCM"

	// APNS is the Apple Push Notification service.
	APNS Provider = "APNS"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	return p == FCM || p == APNS
}

// Session is the view the Manager has of the client.
type Session interface {
	restlike.Caller

	// SelfID returns the external user ID of the logged-in user, or an empty
	// string when no user is logged in.
	SelfID() string
}

// Token is a registered push token.
type Token struct {
	Token    string   `json:"token"`
	Provider Provider `json:"provider"`
	UserID   string   `json:"userId"`
}
