////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/nexchat/client/model"
)

// channelsCmd lists the channels of the logged-in user.
var channelsCmd = &cobra.Command{
	Use:    "channels",
	Short:  "List the channels of the user",
	Args:   cobra.NoArgs,
	PreRun: bindPageFlags,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		c := loginClient(ctx)
		defer c.LogoutUser(ctx)

		list, err := c.ListUserChannels(ctx, model.PageRequest{
			Limit:  viper.GetInt(limitFlag),
			Offset: viper.GetInt(offsetFlag),
		})
		if err != nil {
			jww.FATAL.Panicf("Failed to list channels: %+v", err)
		}

		for _, ch := range list.Channels {
			details := ch.DisplayDetails()
			fmt.Printf("%s\t%s\tunread=%d\tblocked=%t\n", ch.ID(),
				details.Name, ch.UnreadCount(), ch.IsBlocked())
		}
		if !list.IsLastPage {
			fmt.Println("(more channels available)")
		}
	},
}

// usersCmd lists the users of the application.
var usersCmd = &cobra.Command{
	Use:    "users",
	Short:  "List the users of the application",
	Args:   cobra.NoArgs,
	PreRun: bindPageFlags,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		c := initClient()
		page, err := c.ListUsers(ctx, model.PageRequest{
			Limit:  viper.GetInt(limitFlag),
			Offset: viper.GetInt(offsetFlag),
		})
		if err != nil {
			jww.FATAL.Panicf("Failed to list users: %+v", err)
		}
		printJSON(page)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{channelsCmd, usersCmd} {
		cmd.Flags().Int(limitFlag, 0, "Page size (0 for the default)")
		cmd.Flags().Int(offsetFlag, 0, "Page offset")
		rootCmd.AddCommand(cmd)
	}
}

// bindPageFlags binds the paging flags of the command being run. They are
// shared by several commands, so they cannot be bound in init.
func bindPageFlags(cmd *cobra.Command, _ []string) {
	bindFlag(cmd, limitFlag)
	bindFlag(cmd, offsetFlag)
}
