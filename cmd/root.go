// Package cmd is for command line interactions with the pangenome application
package cmd

import (
	"log"

	"github.com/GregDucq/PanGenomePipeline/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "pangenome",
	Short: `Cluster genomes into a pan-genome hierarchy, level by level,
then flatten the results back to per-genome loci`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags shared by every subcommand
func init() {
	// settings is an optional parameter for a settings file (that overrides the defaults)
	rootCmd.PersistentFlags().StringP("settings", "s", config.RootSettingsFile, "pipeline settings")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "whether to log progress to stdout")
	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
