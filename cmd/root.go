// Package cmd is for command line interactions with the repeats application
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adderan/cactusRepeats/config"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "repeats",
	Short: `Estimate how many alignments repetitive seeds cost, and how much
seed sampling saves`,
	Long: `
Experiments on repeat handling in whole genome alignment.

"repeats collapse" models the number of random edges it takes to join a graph
into one connected component. "repeats sampling" runs lastz with seed
sampling over a range of thresholds and records the alignment statistics
at each.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("%v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().String("settings", config.RootSettingsFile, "path to a settings file <YAML>")
	rootCmd.PersistentFlags().String("log-level", "info", "workflow log level: debug, info, warn or error")

	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}
