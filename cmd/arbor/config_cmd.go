package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/config"
	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/output"
	"github.com/raphi011/arbor/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage arbor configuration.

Config file: ~/.config/arbor/config.toml ($ARBOR_CONFIG_DIR overrides)`,
		Example: `  arbor config init   # Create config file interactively
  arbor config show   # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		root  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create config file",
		Args:  cobra.NoArgs,
		Long: `Create the arbor config file.

Prompts for the primary root directory unless --root is given. An existing
config is only overwritten after confirmation (or with --force).`,
		Example: `  arbor config init               # Interactive setup
  arbor config init --root ~/src  # Non-interactive
  arbor config init -f            # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			path, err := config.Path()
			if err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					result, err := prompt.Confirm(fmt.Sprintf("Config already exists at %s. Overwrite?", path))
					if err != nil {
						return err
					}
					if result.Cancelled || !result.Confirmed {
						l.Println("Cancelled")
						return nil
					}
					force = true
				}
			}

			if root == "" {
				result, err := prompt.TextInput("Where should arbor keep your repositories?", "~/src")
				if err != nil {
					return err
				}
				if result.Cancelled {
					l.Println("Cancelled")
					return nil
				}
				root = result.Value
			}

			if err := config.ValidatePath(root, "root"); err != nil {
				return err
			}

			written, err := config.Init(root, force)
			if err != nil {
				return err
			}

			l.Printf("Created %s\n", written)
			l.Printf("Run 'arbor scan' to pick up repositories already under %s\n", root)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().StringVar(&root, "root", "", "Primary root directory (skips the prompt)")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path, err := config.Path()
			if err != nil {
				return err
			}
			out.Printf("config: %s\n", path)

			out.Println("roots:")
			for _, r := range cfg.Roots {
				out.Printf("  %s\n", r)
			}
			out.Printf("worktree_format: %s\n", cfg.WorktreeFormat)

			if len(cfg.Hosts) > 0 {
				out.Println("hosts:")
				for _, host := range slices.Sorted(maps.Keys(cfg.Hosts)) {
					tpl := cfg.Hosts[host]
					out.Printf("  %s:\n", host)
					if tpl.Home != "" {
						out.Printf("    home:  %s\n", tpl.Home)
					}
					if tpl.PR != "" {
						out.Printf("    pr:    %s\n", tpl.PR)
					}
					if tpl.Issue != "" {
						out.Printf("    issue: %s\n", tpl.Issue)
					}
				}
			}
			return nil
		},
	}
}
