package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/comptree/internal/app"
	"github.com/bft-labs/comptree/internal/cliconfig"
	"github.com/bft-labs/comptree/pkg/log"
	"github.com/bft-labs/comptree/pkg/registry"
)

const longHelp = `
Build, inspect and watch ownership trees of named components.

A manifest (TOML or YAML) describes a tree by name. comptree creates every
component under its owner, resolves duplicate sibling names with _N
suffixes and registers each component under its dotted qualified name.
Destroying a tree tears it down in reverse creation order.

Configure via file ($HOME/.comptree/config.toml), COMPTREE_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  comptree show ui.toml
  comptree dump ui.toml --output resolved.yaml
  comptree watch --manifest ui.yaml --log-level debug
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the configuration shared by all subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  zerolog.Logger
}

func main() {
	c := newCLI()
	root := c.rootCommand()

	registry.Init()
	err := root.Execute()
	registry.Clear()

	if err != nil {
		c.logger.Error().Err(err).Msg("comptree")
		os.Exit(1)
	}
}

func newCLI() *cli {
	return &cli{
		cfg:    cliconfig.DefaultConfig(),
		logger: cliconfig.Logger(os.Stderr, "info"),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "comptree",
		Short:         "Build, inspect and watch component ownership trees",
		Long:          strings.TrimSpace(longHelp),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.comptree/config.toml)")
	root.PersistentFlags().StringVar(&c.cfg.Manifest, "manifest", "", "tree manifest (.toml, .yaml, .yml)")
	root.PersistentFlags().StringVar(&c.cfg.Format, "format", "", "manifest format (toml, yaml); derived from the extension by default")
	root.PersistentFlags().StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(c.showCommand(), c.dumpCommand(), c.watchCommand())
	return root
}

// resolve applies the config file, environment and positional manifest,
// validates the result and replaces the bootstrap logger.
func (c *cli) resolve(cmd *cobra.Command, args []string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if len(args) > 0 {
		c.cfg.Manifest = args[0]
		changed["manifest"] = true
	}

	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	// COMPTREE_* override the file but not explicit flags.
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = cliconfig.Logger(os.Stderr, c.cfg.LogLevel)
	c.logger.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}

func (c *cli) session() *app.Session {
	return app.NewSession(app.SessionConfig{
		Manifest: c.cfg.Manifest,
		Format:   c.cfg.ManifestFormat(),
		Debounce: c.cfg.Debounce,
	}, log.NewZerologAdapterWithLogger(c.logger))
}
