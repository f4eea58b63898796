package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/resolve"
	"github.com/raphi011/arbor/internal/ui/prompt"
)

func newRemoveCmd() *cobra.Command {
	var (
		force   bool
		keepDir bool
	)

	cmd := &cobra.Command{
		Use:               "remove <repo>",
		Short:             "Unregister and delete a repository",
		Aliases:           []string{"rm"},
		GroupID:           GroupRegistry,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRepoKeys,
		Long: `Remove a repository from the registry and delete its directory.

The target must match exactly: a registry key, a remote URL, a path, or an
unambiguous repository name. Use --keep-dir to keep the files on disk.`,
		Example: `  arbor remove github.com/alice/proj
  arbor remove proj --keep-dir   # Unregister, keep files
  arbor remove proj -f           # No confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			reg, regPath, err := loadRegistry()
			if err != nil {
				return err
			}

			rec, err := resolve.Strict(reg, args[0])
			if err != nil {
				return err
			}
			key := rec.Key()
			path := rec.LocalPath

			if !force {
				verb := "Unregister"
				if !keepDir {
					verb = "Delete"
				}
				result, err := prompt.Confirm(fmt.Sprintf("%s %s (%s)?", verb, key, path))
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					l.Println("Cancelled")
					return nil
				}
			}

			reg.Remove(key)
			if err := reg.Save(regPath); err != nil {
				return fmt.Errorf("save registry: %w", err)
			}

			if !keepDir {
				if err := os.RemoveAll(path); err != nil {
					return fmt.Errorf("remove %s: %w", path, err)
				}
				l.Printf("Removed %s and deleted %s\n", key, path)
			} else {
				l.Printf("Removed %s (kept %s)\n", key, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	cmd.Flags().BoolVar(&keepDir, "keep-dir", false, "Keep the repository directory on disk")

	return cmd
}
