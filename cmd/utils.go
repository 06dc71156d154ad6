////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/nexchat/client/session"
)

// loadParams builds the client params from the defaults, the params flag and
// the credential and endpoint flags, in increasing precedence.
func loadParams() session.Params {
	p, err := session.ParseParams(viper.GetString(paramsFlag))
	if err != nil {
		jww.FATAL.Panicf("%+v", err)
	}
	if v := viper.GetString(apiKeyFlag); v != "" {
		p.APIKey = v
	}
	if v := viper.GetString(apiSecretFlag); v != "" {
		p.APISecret = v
	}
	if v := viper.GetString(baseURLFlag); v != "" {
		p.BaseURL = v
	}
	if v := viper.GetString(streamURLFlag); v != "" {
		p.StreamURL = v
	}
	return p
}

// initClient creates the client from the flags.
func initClient() *session.Client {
	c, err := session.NewClient(loadParams())
	if err != nil {
		jww.FATAL.Panicf("Failed to create client: %+v", err)
	}
	c.SetDebugLogging(viper.GetBool(debugHTTPFlag))
	return c
}

// loginClient creates the client and logs in the user given by the flags.
func loginClient(ctx context.Context) *session.Client {
	c := initClient()
	userID := viper.GetString(userFlag)
	u, err := c.LoginUser(ctx, userID, viper.GetString(authTokenFlag))
	if err != nil {
		jww.FATAL.Panicf("Failed to log in %s: %+v", userID, err)
	}
	jww.INFO.Printf("Logged in as %s (%s)", u.ExternalUserID, u.UserName)
	return c
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		jww.FATAL.Panicf("Failed to marshal output: %+v", err)
	}
	fmt.Println(string(data))
}
