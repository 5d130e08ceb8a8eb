package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/muse/internal/config"
	"github.com/manav03panchal/muse/internal/errors"
)

// Config command flags.
var (
	configFlagForce bool
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Inspect application configuration",
	Long: `Inspect the resolved configuration and create a config file.

Values come from built-in defaults, the config file, a .env file in the
working directory and MUSE_* environment variables, in that order.

Examples:
  muse config show
  muse config get pool_variant
  muse config init
  muse config path`,
	Annotations: map[string]string{annotationNoRuntime: ""},
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show the resolved configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: ""},
	RunE:        runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Show one configuration value",
	Long: `Show one resolved configuration value.

Keys:
  data_dir, favorites_file, session_dir, pools_file, pool_variant,
  seed, min_free_space, log.level, log.json`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNoRuntime: ""},
	RunE:        runConfigGet,
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a default config file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: ""},
	RunE:        runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRuntime: ""},
	RunE:        runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVar(&configFlagForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(ctx.Config)
	}

	data, err := config.Marshal(ctx.Config)
	if err != nil {
		return errors.NewSystemErrorWithOp("config show", "failed to render configuration", err)
	}
	ctx.Formatter.Print(string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, ok := cfgManager.Value(args[0])
	if !ok {
		return errors.NewUserErrorWithField("key", args[0], "unknown config key", "Run 'muse config show' to list every key.")
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{args[0]: value})
	}
	ctx.Formatter.Println(fmt.Sprint(value))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := config.WriteDefault(path, configFlagForce); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return errors.NewUserErrorWithField("path", path, "config file already exists", "Use --force to overwrite it.")
		}
		return errors.NewSystemErrorWithOp("config init", "failed to write "+path, err)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintText("config_init", path, "")
	}
	ctx.CLIFormatter().Success("Wrote " + path)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := configPath()
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintText("config_path", path, "")
	}
	ctx.Formatter.Println(path)
	return nil
}

// configPath returns the file in use, else --config, else the default.
func configPath() string {
	if cfgManager != nil {
		if used := cfgManager.ConfigFileUsed(); used != "" {
			return used
		}
	}
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultConfigPath()
}
