package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/identity"
	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/output"
	"github.com/raphi011/arbor/internal/registry"
)

func newAddCmd() *cobra.Command {
	var noClipboard bool

	cmd := &cobra.Command{
		Use:     "add <url>",
		Short:   "Clone and register a repository",
		GroupID: GroupRegistry,
		Args:    cobra.ExactArgs(1),
		Long: `Clone a repository into its canonical place under the primary root
and register it.

The destination is derived from the remote URL: <root>/<host>/<owner>/<name>.
If the repository is already registered, nothing happens.`,
		Example: `  arbor add git@github.com:alice/proj.git
  arbor add https://gitlab.com/group/sub/tool`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			remote := args[0]
			id, err := identity.ParseRemote(remote)
			if err != nil {
				return fmt.Errorf("parse %q: %w", remote, err)
			}

			reg, regPath, err := loadRegistry()
			if err != nil {
				return err
			}

			if rec := reg.Get(id.Key()); rec != nil {
				l.Warnf("%s is already registered at %s", id.Key(), rec.LocalPath)
				return nil
			}

			root, err := cfg.PrimaryRoot()
			if err != nil {
				return err
			}
			dest := id.Path(root)

			if _, err := os.Stat(dest); err == nil {
				return fmt.Errorf("%s already exists; run 'arbor scan' to register it", dest)
			}

			l.Printf("Cloning %s into %s\n", remote, dest)
			if err := gitExec.Clone(ctx, remote, dest); err != nil {
				return fmt.Errorf("clone %s: %w", id.Key(), err)
			}

			reg.Upsert(registry.FromIdentity(id, remote, dest, time.Now()))
			if err := reg.Save(regPath); err != nil {
				return fmt.Errorf("save registry: %w", err)
			}

			out.Println(dest)
			if !noClipboard {
				copyCD(ctx, dest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Do not copy the cd command to the clipboard")

	return cmd
}
