package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/comptree/internal/app"
	"github.com/bft-labs/comptree/internal/manifest"
	"github.com/bft-labs/comptree/pkg/tree"
)

func (c *cli) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [manifest]",
		Short: "Build the tree and print every qualified name",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session()
			if err := s.Load(); err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			root := s.Root()
			root.Walk(func(n *tree.Component) bool {
				depth := strings.Count(n.QualifiedName(), ".")
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), n.QualifiedName())
				return true
			})
			fmt.Fprintf(out, "%d components\n", len(s.Names()))
			return nil
		},
	}
}

func (c *cli) dumpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [manifest]",
		Short: "Build the tree and write it back with resolved names",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.session()
			if err := s.Load(); err != nil {
				return err
			}
			defer s.Close()

			m, err := s.Snapshot()
			if err != nil {
				return err
			}

			if c.cfg.Output != "" {
				if err := manifest.SaveFormat(c.cfg.Output, m, c.cfg.DumpFormat()); err != nil {
					return fmt.Errorf("write %s: %w", c.cfg.Output, err)
				}
				c.logger.Info().Str("output", c.cfg.Output).Int("components", m.Count()).Msg("tree written")
				return nil
			}

			data, err := manifest.Encode(m, c.cfg.DumpFormat())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&c.cfg.Output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&c.cfg.OutputFormat, "output-format", "", "output format (toml, yaml); defaults to the output extension or manifest format")
	return cmd
}

func (c *cli) watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [manifest]",
		Short: "Keep the tree loaded and rebuild it whenever the manifest changes",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			s := c.session()
			if err := s.Start(ctx); err != nil {
				return fmt.Errorf("start session: %w", err)
			}

			// A watcher failure moves the session to Crashed.
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if s.Status() == app.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				c.logger.Info().Msg("received signal, stopping...")
			case <-doneCh:
				s.Close()
				return fmt.Errorf("session crashed")
			case <-ctx.Done():
			}

			if err := s.Stop(); err != nil {
				return fmt.Errorf("stop session: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "wait this long after the last change before reloading")
	return cmd
}
