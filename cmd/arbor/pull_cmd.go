package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/pull"
)

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "pull",
		Short:   "Clone registered repositories that are missing on disk",
		GroupID: GroupSync,
		Args:    cobra.NoArgs,
		Long: `Clone every registered repository whose directory is missing back to
its recorded path.

Repositories already present are skipped, as are local-only rows that have
no remote. One failed clone does not stop the rest; the command exits
non-zero only when every attempted clone failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			reg, _, err := loadRegistry()
			if err != nil {
				return err
			}

			report := pull.Pull(ctx, reg, gitExec)

			for _, key := range report.Cloned {
				l.Printf("  cloned   %s\n", key)
			}
			for _, key := range report.Skipped {
				l.Printf("  skipped  %s (no remote)\n", key)
			}
			for _, f := range report.Failed {
				l.Warnf("%s: %s", f.Key, f.Reason)
			}

			attempted := report.Attempted()
			if attempted == 0 {
				l.Println("Nothing to clone")
				return nil
			}
			l.Printf("%d cloned, %d failed\n", len(report.Cloned), len(report.Failed))

			if len(report.Cloned) == 0 && len(report.Failed) > 0 {
				return fmt.Errorf("all %d clones failed", len(report.Failed))
			}
			return nil
		},
	}
}
