////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

// This is a comprehensive list of CLI flag name constants. Organized by
// subcommand, with root level CLI flags at the top of the list. Pulling flags
// using Viper should use the constants defined here.
const (
	//////////////// Root flags ///////////////////////////////////////////////

	// Credentials
	apiKeyFlag    = "apiKey"
	apiSecretFlag = "apiSecret"
	userFlag      = "user"
	authTokenFlag = "authToken"

	// Endpoints
	baseURLFlag   = "baseURL"
	streamURLFlag = "streamURL"
	paramsFlag    = "params"

	// Log flags
	logLevelFlag  = "logLevel"
	logFlag       = "log"
	debugHTTPFlag = "debugHTTP"

	// Misc
	configFlag     = "config"
	profileCPUFlag = "profile-cpu"
	timeoutFlag    = "timeout"

	///////////////// Listen subcommand flags /////////////////////////////////
	listenDurationFlag = "duration"

	///////////////// Channels subcommand flags ///////////////////////////////
	limitFlag  = "limit"
	offsetFlag = "offset"

	///////////////// Send subcommand flags ///////////////////////////////////
	channelFlag  = "channel"
	messageFlag  = "message"
	senderFlag   = "sender"
	markReadFlag = "markRead"
)
