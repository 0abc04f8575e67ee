// godolt is a command-line front end over the dolt client library. It exposes
// the common read operations of a Dolt repository with machine-readable
// output, delegating all of the actual work to the dolt binary.
package main

import (
	"fmt"
	"os"

	"github.com/doltops/godolt/pkg/dolt"
	"github.com/doltops/godolt/pkg/logger"
	"github.com/doltops/godolt/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	viper.SetEnvPrefix("GODOLT")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.godolt")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "godolt",
	Short: "A thin CLI over the dolt binary with machine-readable output",
	Long: `godolt wraps the dolt command-line tool and parses its output into
structured records, printed as text or JSON.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

// openRepo opens the repository named by the --repo flag (or the current
// directory), honouring a configured dolt binary path.
func openRepo() (*dolt.Dolt, error) {
	repo := viper.GetString("repo")
	if repo == "" {
		repo = "."
	}
	return dolt.Open(repo, handleOptions()...)
}

func handleOptions() []dolt.Option {
	var opts []dolt.Option
	if path := viper.GetString("dolt_path"); path != "" {
		opts = append(opts, dolt.WithBinaryPath(path))
	}
	return opts
}

func main() {
	rootCmd.PersistentFlags().String("repo", ".", "Path to the Dolt repository")
	rootCmd.PersistentFlags().String("dolt-path", "", "Path to the dolt binary (defaults to dolt on PATH)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress non-error output")

	viper.BindPFlag("repo", rootCmd.PersistentFlags().Lookup("repo"))
	viper.BindPFlag("dolt_path", rootCmd.PersistentFlags().Lookup("dolt-path"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(sqlCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
