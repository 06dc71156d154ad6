////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package cmd initializes the CLI and config parsers as well as the logger.
package cmd

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var profiler interface{ Stop() }

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nexchat",
	Short: "Command line client for the nexchat API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLog(viper.GetUint(logLevelFlag), viper.GetString(logFlag))
		if dir := viper.GetString(profileCPUFlag); dir != "" {
			profiler = profile.Start(profile.CPUProfile,
				profile.ProfilePath(dir), profile.Quiet)
			jww.INFO.Printf("Writing CPU profile to %s", dir)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

// initLog initializes logging thresholds and the log path. If not path is
// provided, the log output is not set. Possible values for logLevel:
//
//	0  = info
//	1  = debug
//	2+ = trace
func initLog(threshold uint, logPath string) {
	if logPath != "-" && logPath != "" {
		// Disable stdout output
		jww.SetStdoutOutput(ioutil.Discard)
		// Use log file
		logOutput, err := os.OpenFile(logPath,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err.Error())
		}
		jww.SetLogOutput(logOutput)
	}

	if threshold > 1 {
		jww.INFO.Printf("log level set to: TRACE")
		jww.SetStdoutThreshold(jww.LevelTrace)
		jww.SetLogThreshold(jww.LevelTrace)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else if threshold == 1 {
		jww.INFO.Printf("log level set to: DEBUG")
		jww.SetStdoutThreshold(jww.LevelDebug)
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		jww.INFO.Printf("log level set to: INFO")
		jww.SetStdoutThreshold(jww.LevelInfo)
		jww.SetLogThreshold(jww.LevelInfo)
	}
}

// initConfig reads the config file, if any, and the NEXCHAT_ environment.
func initConfig() {
	viper.SetEnvPrefix("NEXCHAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfg := viper.GetString(configFlag); cfg != "" {
		viper.SetConfigFile(cfg)
		if err := viper.ReadInConfig(); err != nil {
			jww.FATAL.Panicf("Failed to read config file %s: %+v", cfg, err)
		}
	}
}

// commandContext returns the context bounding one command.
func commandContext() (context.Context, context.CancelFunc) {
	if timeout := viper.GetDuration(timeoutFlag); timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func init() {
	// NOTE: The point of init() is to be declarative.
	// There is one init in each sub command. Do not put variable declarations
	// here, and ensure all the Flags are of the *P variety, unless there's a
	// very good reason not to have them as local params to sub command."
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().UintP(logLevelFlag, "v", 0,
		"Verbose mode for debugging")
	bindPFlag(rootCmd, logLevelFlag)

	rootCmd.PersistentFlags().StringP(logFlag, "l", "-",
		"Path to the log output path (- is stdout)")
	bindPFlag(rootCmd, logFlag)

	rootCmd.PersistentFlags().Bool(debugHTTPFlag, false,
		"Log every API round trip at DEBUG level")
	bindPFlag(rootCmd, debugHTTPFlag)

	rootCmd.PersistentFlags().StringP(apiKeyFlag, "k", "",
		"API key of the application")
	bindPFlag(rootCmd, apiKeyFlag)

	rootCmd.PersistentFlags().String(apiSecretFlag, "",
		"API secret; selects server integration mode")
	bindPFlag(rootCmd, apiSecretFlag)

	rootCmd.PersistentFlags().StringP(userFlag, "u", "",
		"External user ID to act as")
	bindPFlag(rootCmd, userFlag)

	rootCmd.PersistentFlags().StringP(authTokenFlag, "t", "",
		"Auth token of the user")
	bindPFlag(rootCmd, authTokenFlag)

	rootCmd.PersistentFlags().String(baseURLFlag, "",
		"Override the API base URL")
	bindPFlag(rootCmd, baseURLFlag)

	rootCmd.PersistentFlags().String(streamURLFlag, "",
		"Override the event stream URL")
	bindPFlag(rootCmd, streamURLFlag)

	rootCmd.PersistentFlags().String(paramsFlag, "",
		"Client params as a JSON object, applied over the defaults")
	bindPFlag(rootCmd, paramsFlag)

	rootCmd.PersistentFlags().StringP(configFlag, "c", "",
		"Path to a config file")
	bindPFlag(rootCmd, configFlag)

	rootCmd.PersistentFlags().Duration(timeoutFlag, 0,
		"Bound on the whole command (0 for none)")
	bindPFlag(rootCmd, timeoutFlag)

	rootCmd.PersistentFlags().String(profileCPUFlag, "",
		"Enables cpu profiling, writing the profile to the given directory")
	bindPFlag(rootCmd, profileCPUFlag)
}

// bindPFlag binds the named persistent flag of cmd to viper.
func bindPFlag(cmd *cobra.Command, name string) {
	err := viper.BindPFlag(name, cmd.PersistentFlags().Lookup(name))
	if err != nil {
		jww.FATAL.Panicf("Failed to bind flag %s: %+v", name, err)
	}
}

// bindFlag binds the named local flag of cmd to viper.
func bindFlag(cmd *cobra.Command, name string) {
	err := viper.BindPFlag(name, cmd.Flags().Lookup(name))
	if err != nil {
		jww.FATAL.Panicf("Failed to bind flag %s: %+v", name, err)
	}
}
