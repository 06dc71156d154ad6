////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/nexchat/client/event"
)

// listenCmd logs in and prints every event received on the stream.
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Log in and print every event received from the stream",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		c := loginClient(ctx)
		defer c.LogoutUser(ctx)

		printEvents(c)

		var timeout <-chan time.Time
		if d := viper.GetDuration(listenDurationFlag); d > 0 {
			timeout = time.After(d)
		}
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				jww.INFO.Printf("Interrupted, logging out")
				return
			case <-timeout:
				jww.INFO.Printf("Listen duration elapsed, logging out")
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				jww.INFO.Printf("Stream %s, %d reconnect attempts, "+
					"%d unread", c.ConnectionState(), c.ReconnectAttempts(),
					c.TotalUnreadCount())
			}
		}
	},
}

// printEvents prints every event of every kind delivered by s.
func printEvents(s event.Subscriber) {
	for _, kind := range event.Kinds {
		_, err := s.Subscribe(kind, func(ev event.Event) {
			fmt.Println(event.String(ev))
		})
		if err != nil {
			jww.FATAL.Panicf("%+v", err)
		}
	}
}

func init() {
	listenCmd.Flags().Duration(listenDurationFlag, 0,
		"Stop listening after this long (0 waits for an interrupt)")
	bindFlag(listenCmd, listenDurationFlag)

	rootCmd.AddCommand(listenCmd)
}
