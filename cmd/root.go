// Package cmd provides the CLI commands for Muse.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/config"
	"github.com/manav03panchal/muse/internal/errors"
	"github.com/manav03panchal/muse/internal/logging"
	"github.com/manav03panchal/muse/internal/output"
	"github.com/manav03panchal/muse/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// cfgManager holds the loaded configuration.
var cfgManager *config.Manager

// annotationNoRuntime marks commands that only need configuration.
const annotationNoRuntime = "muse/no-runtime"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "muse",
	Short: "A creative writing prompt generator",
	Long: `Muse generates writing prompts from a character, a setting and a
conflict, adds plot twists, explains the ideas hiding in a prompt and keeps
your favorites in a JSON file you can export.

Examples:
  muse prompt
  muse prompt noir
  muse twist
  muse save
  muse favorites list --since 'last week'
  muse export --format text -o prompts.txt
  muse chat`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		cfgManager, err = config.NewManager(flagConfig)
		if err != nil {
			return err
		}
		cfg := cfgManager.Get()

		initLogging(cfg)

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return err
		}

		if _, ok := cmd.Annotations[annotationNoRuntime]; ok {
			formatter := output.NewFormatter()
			formatter.Writer = cmd.OutOrStdout()
			formatter.Format = format
			formatter.ColorMode = colorMode
			ctx = &runtime.Context{Config: cfg, Formatter: formatter, Debug: flagDebug}
			return nil
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Config = cfg
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.Command = cmd.CommandPath()

		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeContext()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the current prompt
		return runCurrent(cmd, args)
	},
}

// initLogging configures the logger from config; --debug wins.
func initLogging(cfg *config.Config) {
	if flagDebug {
		logging.InitDebug()
		return
	}
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		JSON:   cfg.Log.JSON,
		Output: os.Stderr,
	})
}

func closeContext() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// runCurrent shows the current prompt.
func runCurrent(cmd *cobra.Command, args []string) error {
	p, err := ctx.Current()
	if err != nil {
		return err
	}

	switch {
	case ctx.IsJSON():
		status := "current"
		if p == nil {
			status = "none"
		}
		return ctx.JSONFormatter().PrintPrompt(status, p)
	case ctx.IsPlain():
		if p != nil {
			ctx.PlainFormatter().PrintPrompt(p)
		}
		return nil
	}

	if p == nil {
		ctx.CLIFormatter().PrintNoCurrent()
		return nil
	}
	ctx.CLIFormatter().PrintPrompt(p)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer closeContext()
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/muse/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("muse %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// printError reports err on stderr, or as JSON on stdout in JSON mode.
func printError(err error) {
	if ctx != nil && ctx.IsJSON() {
		_ = ctx.JSONFormatter().PrintError("error", err.Error(), errors.GetSuggestion(err))
		return
	}
	if flagFormat == string(output.FormatJSON) {
		f := output.NewFormatter()
		f.Writer = rootCmd.OutOrStdout()
		_ = output.NewJSONFormatter(f).PrintError("error", err.Error(), errors.GetSuggestion(err))
		return
	}
	if flagDebug {
		rootCmd.PrintErr(errors.FormatDebugError(err))
		return
	}
	rootCmd.PrintErrln("Error: " + errors.FormatUserError(err))
}
