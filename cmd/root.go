package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "devel"

var rootCmd = &cobra.Command{
	Use:     "ghup",
	Short:   "Upgrade a CLI tool from its GitHub repository",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Verbose(cmd)
	},
}

// Verbose Increase verbosity.
func Verbose(cmd *cobra.Command) {
	verbose, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		panic(err)
	}

	level := log.DebugLevel

	switch verbose {
	case 0:
		level = log.InfoLevel
	case 1:
		level = log.DebugLevel
	case 2:
		level = log.TraceLevel
	}

	log.SetLevel(level)
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase verbosity")

	viper.SetDefault("include_branches", true)

	viper.SetConfigName("ghup") // name of config file (without extension)
	viper.SetConfigType("yaml") // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath("$XDG_CONFIG_HOME")
	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {             // Handle errors reading the config file
		log.Info("generated config from current settings")
		viper.SafeWriteConfig()
	}
}

// Execute The main function for the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
