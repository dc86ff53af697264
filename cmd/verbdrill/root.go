package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/verbdrill/internal/config"
	"github.com/aretw0/verbdrill/internal/platform"
)

var (
	verbose    bool
	configFile string

	// settings collects defaults, the config file, VERBDRILL_* variables and bound flags.
	settings = config.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "verbdrill",
	Short: "Practice verb forms by applying grammatical changes",
	Long: `verbdrill shows a word from your dictionary and a grammatical change,
then asks you to type the form that results. Without a subcommand it starts a drill.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		runPlay(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configFile, "config", "", "Config file (default: verbdrill.yaml in this or a parent directory)")
	flags.StringP("dict", "d", "dictionary.csv", "Dictionary file or doublestar pattern (e.g. 'words/**/*.csv')")
	flags.String("duplicates", "reject", "Policy for repeated feature vectors: reject or first")

	_ = settings.BindPFlag("dictionary.path", flags.Lookup("dict"))
	_ = settings.BindPFlag("dictionary.duplicates", flags.Lookup("duplicates"))
}

// loadConfig reads the configuration, switches logging to its settings and returns it
// with the dictionary pattern to load.
func loadConfig(cmd *cobra.Command) (*config.Config, string) {
	file := configFile
	if file == "" {
		if wd, err := os.Getwd(); err == nil {
			if found, err := platform.FindConfig(wd); err == nil {
				file = found
			}
		}
	}

	cfg, err := config.Load(settings, file)
	if err != nil {
		fatal("Error loading configuration", err)
	}
	slog.SetDefault(newLogger(cfg.Log, verbose, os.Stderr))
	if file != "" {
		slog.Debug("configuration loaded", "file", file)
	}

	pattern := cfg.Dictionary.Path
	if pathFromFile(settings, cmd.Flags().Changed("dict")) {
		pattern = platform.ResolvePath(file, pattern)
	}
	return cfg, pattern
}

// pathFromFile reports whether the dictionary path was taken from the config file, which
// is the only source anchored at the file's directory.
func pathFromFile(v *viper.Viper, flagSet bool) bool {
	if flagSet || !v.InConfig("dictionary.path") {
		return false
	}
	_, fromEnv := os.LookupEnv(config.EnvKey("dictionary.path"))
	return !fromEnv
}

func newLogger(cfg config.LogConfig, verbose bool, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
