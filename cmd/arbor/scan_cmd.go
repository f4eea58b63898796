package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/scan"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "scan",
		Short:   "Reconcile the registry with the roots on disk",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Walk every configured root at host/owner/name depth and reconcile
what is found with the registry.

New repositories are added, moved ones updated, and rows whose directory
has disappeared are reported as orphaned but never removed (use
'arbor clean --orphans' for that). Scanning twice without filesystem
changes is a no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			reg, regPath, err := loadRegistry()
			if err != nil {
				return err
			}

			report, err := scan.Scan(ctx, cfg, reg, gitExec)
			if err != nil {
				return err
			}

			if err := reg.Save(regPath); err != nil {
				return fmt.Errorf("save registry: %w", err)
			}

			for _, key := range report.Added {
				l.Printf("  added    %s\n", key)
			}
			for _, key := range report.Updated {
				l.Printf("  updated  %s\n", key)
			}
			for _, path := range report.Dropped {
				l.Printf("  dropped duplicate %s\n", path)
			}
			for _, key := range report.Orphaned {
				l.Warnf("%s: directory missing (run 'arbor pull' to reclone or 'arbor clean --orphans' to drop)", key)
			}
			l.Printf("%d added, %d updated, %d unchanged\n",
				len(report.Added), len(report.Updated), report.Unchanged)
			return nil
		},
	}
}
