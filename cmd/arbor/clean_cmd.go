package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/log"
)

func newCleanCmd() *cobra.Command {
	var orphans bool

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Drop duplicate registry rows",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Collapse registry rows that refer to the same repository.

Duplicates are merged keeping the row whose directory exists on disk.
With --orphans, rows whose directory is gone are removed as well; this is
the only operation that deletes orphaned rows.`,
		Example: `  arbor clean            # Merge duplicates
  arbor clean --orphans  # Also drop rows with no directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			reg, regPath, err := loadRegistry()
			if err != nil {
				return err
			}

			removed, droppedPaths := reg.Dedupe()
			for _, path := range droppedPaths {
				l.Printf("  dropped duplicate %s\n", path)
			}

			droppedOrphans := 0
			if orphans {
				for _, key := range reg.Keys() {
					rec := reg.Get(key)
					if rec != nil && !rec.Exists() {
						reg.Remove(key)
						l.Printf("  dropped orphan %s\n", key)
						droppedOrphans++
					}
				}
			}

			if err := reg.Save(regPath); err != nil {
				return fmt.Errorf("save registry: %w", err)
			}

			if removed == 0 && droppedOrphans == 0 {
				l.Println("Nothing to clean")
				return nil
			}
			l.Printf("%d duplicates merged, %d orphans dropped\n", removed, droppedOrphans)
			return nil
		},
	}

	cmd.Flags().BoolVar(&orphans, "orphans", false, "Also remove rows whose directory is gone")

	return cmd
}
