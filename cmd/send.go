////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/nexchat/client/channels"
)

// sendCmd sends one message to a channel.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to a channel",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		c := loginClient(ctx)
		defer c.LogoutUser(ctx)

		ch, err := c.FetchChannelByID(ctx, viper.GetString(channelFlag), false)
		if err != nil {
			jww.FATAL.Panicf("%+v", err)
		}

		msg, err := ch.SendMessage(ctx, channels.SendMessageParams{
			Text:     viper.GetString(messageFlag),
			SenderID: viper.GetString(senderFlag),
		})
		if err != nil {
			jww.FATAL.Panicf("Failed to send message: %+v", err)
		}
		printJSON(msg)

		if viper.GetBool(markReadFlag) {
			ch.MarkRead()
			// The read receipt is sent in the background and dropped on
			// logout
			time.Sleep(time.Second)
		}
	},
}

// tokenCmd mints an auth token for a user. It needs the API secret.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Create an auth token for a user (server mode)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		c := initClient()
		token, err := c.CreateUserToken(ctx, viper.GetString(userFlag))
		if err != nil {
			jww.FATAL.Panicf("Failed to create token: %+v", err)
		}
		printJSON(map[string]string{"token": token})
	},
}

func init() {
	sendCmd.Flags().String(channelFlag, "", "ID of the channel")
	bindFlag(sendCmd, channelFlag)

	sendCmd.Flags().StringP(messageFlag, "m", "", "Text of the message")
	bindFlag(sendCmd, messageFlag)

	sendCmd.Flags().String(senderFlag, "",
		"Send on behalf of this user instead of the logged-in one")
	bindFlag(sendCmd, senderFlag)

	sendCmd.Flags().Bool(markReadFlag, false,
		"Mark the channel as read after sending")
	bindFlag(sendCmd, markReadFlag)

	rootCmd.AddCommand(sendCmd, tokenCmd)
}
