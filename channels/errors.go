////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

// Error messages.
const (
	noSenderErr      = "a sender is required when no user is logged in"
	notLoggedInErr   = "a user must be logged in"
	sendMessageErr   = "failed to send message"
	fetchMessagesErr = "failed to fetch messages"
	blockErr         = "failed to block channel"
	unblockErr       = "failed to unblock channel"
	markReadErr      = "failed to mark channel as read"
)
