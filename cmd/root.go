// Package cmd implements the CLI commands for PlantPipe using Cobra.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/plantpipe/config"
	"github.com/gaurav-prasanna/plantpipe/logger"
)

// NewRootCmd builds the plantpipe command tree around a fresh viper instance.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "plantpipe",
		Short: "PlantPipe — convert plant descriptions into the site's CSV catalog",
		Long: `PlantPipe converts plant detail pages (HTML) and plain-text plant records
into pipe-delimited CSV rows, index page links, and an image rename script.

Usage:
  plantpipe convert -f <files...> [flags]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			logger.Init(logger.Options{
				Verbose: v.GetBool("verbose"),
				Debug:   v.GetBool("debug"),
				Quiet:   v.GetBool("quiet"),
				JSON:    v.GetBool("log_json"),
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.plantpipe.yaml or ./.plantpipe.yaml)")
	pf.BoolP("verbose", "v", false, "print per-file progress")
	pf.Bool("debug", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log errors")
	pf.Bool("log-json", false, "log as JSON lines")

	_ = v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = v.BindPFlag("debug", pf.Lookup("debug"))
	_ = v.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = v.BindPFlag("log_json", pf.Lookup("log-json"))

	rootCmd.AddCommand(newConvertCmd(v))
	return rootCmd
}

// initConfig layers PLANTPIPE_* environment variables and the config file
// under the flags bound to v. A missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".plantpipe")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PLANTPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
