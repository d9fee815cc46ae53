package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Settings holds every flag shared by init and find-mods. Grounded on the
// teacher's cmd/codegrep/root.go Config struct: plain fields, bound to
// viper so flags/env/config-file layer the way the teacher's do.
type Settings struct {
	NoGitignore bool     `json:"no_gitignore"`
	Ignore      []string `json:"ignore"`
	Verbose     bool     `json:"verbose"`
	JSON        bool     `json:"json"`
}

var settings Settings
var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:     "bmt",
	Short:   "Discover and track Balatro mod manifests in a project",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// initConfig (run by cobra.OnInitialize, after flag parsing) has
		// already loaded .bmt.yaml and the BMT_ env vars into viper by this
		// point, so reading back through viper.Get* here - rather than
		// trusting the BoolVar/StringArrayVar pointers directly - is what
		// actually gives flags > env > config file > default precedence.
		settings.NoGitignore = viper.GetBool("no-gitignore")
		settings.Ignore = viper.GetStringSlice("ignore")
		settings.Verbose = viper.GetBool("verbose")
		settings.JSON = viper.GetBool("json")

		level := slog.LevelWarn
		if settings.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVar(&settings.NoGitignore, "no-gitignore", false, "Do not respect .gitignore files during discovery")
	rootCmd.PersistentFlags().StringArrayVar(&settings.Ignore, "ignore", nil, "Additional ignore pattern (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&settings.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&settings.JSON, "json", false, "Emit machine-readable JSON output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(findModsCmd)

	viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	viper.SetConfigName(".bmt")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("BMT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
