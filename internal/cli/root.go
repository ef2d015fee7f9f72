package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logMode string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "himalaya",
	Short: "Himalaya - Himalayan Database to Neo4j import pipeline",
	Long: `Himalaya turns the Himalayan Database expedition archive into a
Neo4j graph of expeditions, climbers and peaks.

It scrapes peak profiles from the Nepal Himal Peak Profile website
(with PeakVisor as a fallback source), reconciles peak identities
across datasets, cleans and stages the tabular extracts, and loads
the merged result into a labeled property graph for relationship
queries such as "who climbed together" or "which peaks are in which
range".

The pipeline runs in independent stages (scrape, stage, merge, load)
that hand whole CSV tables to each other, so any stage can be re-run
on its own.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("himalaya v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.himalaya/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "dev", "log encoding: dev or prod")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.himalaya")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match HIMALAYA_*
	viper.SetEnvPrefix("HIMALAYA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
