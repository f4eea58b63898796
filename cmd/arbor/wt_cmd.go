package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/output"
	"github.com/raphi011/arbor/internal/ui/static"
	"github.com/raphi011/arbor/internal/worktree"
)

func newWtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wt",
		Short:   "Manage git worktrees",
		GroupID: GroupWorktrees,
		Long: `Manage git worktrees of a registered repository.

Worktree locations follow the configured worktree_format; the default
nests them under <repo>/worktrees/<branch>. The repository comes from -r
or from the current directory.`,
	}

	cmd.AddCommand(newWtListCmd())
	cmd.AddCommand(newWtAddCmd())
	cmd.AddCommand(newWtRemoveCmd())
	cmd.AddCommand(newWtPruneCmd())

	return cmd
}

func wtRepoFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "repository", "r", "", "Repository to act on (fuzzy match)")
	_ = cmd.RegisterFlagCompletionFunc("repository", completeRepoKeys)
}

func newWtListCmd() *cobra.Command {
	var repoFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			reg, _, err := loadRegistry()
			if err != nil {
				return err
			}
			rec, err := targetRepo(ctx, reg, repoFlag)
			if err != nil {
				return err
			}

			records, err := worktree.List(ctx, gitExec, rec.LocalPath, rec.Name, cfg.WorktreeFormat)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(records))
			for _, wt := range records {
				branch := wt.Branch
				if wt.Detached {
					branch = "(detached)"
				}
				commit := wt.Commit
				if len(commit) > 7 {
					commit = commit[:7]
				}
				var notes []string
				if wt.Main {
					notes = append(notes, "main")
				}
				if wt.Locked {
					notes = append(notes, "locked")
				}
				if wt.Prunable {
					notes = append(notes, "prunable")
				}
				if !wt.Registered {
					notes = append(notes, "stale")
				}
				rows = append(rows, []string{branch, wt.Path, commit, strings.Join(notes, ",")})
			}
			out.Print(static.RenderTable([]string{"BRANCH", "PATH", "COMMIT", "NOTES"}, rows))
			return nil
		},
	}

	wtRepoFlag(cmd, &repoFlag)
	return cmd
}

func newWtAddCmd() *cobra.Command {
	var (
		repoFlag  string
		newBranch bool
	)

	cmd := &cobra.Command{
		Use:   "add <branch>",
		Short: "Create a worktree for a branch",
		Args:  cobra.ExactArgs(1),
		Long: `Create a worktree for a branch at the configured location.

The branch must exist unless -b is given, and must not be checked out in
another worktree.`,
		Example: `  arbor wt add feature/login       # Existing branch
  arbor wt add -b feature/login    # Create the branch too
  arbor wt add fix -r proj         # In another repo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			reg, _, err := loadRegistry()
			if err != nil {
				return err
			}
			rec, err := targetRepo(ctx, reg, repoFlag)
			if err != nil {
				return err
			}

			wt, err := worktree.Add(ctx, gitExec, rec.LocalPath, rec.Name, args[0], cfg.WorktreeFormat, newBranch)
			if err != nil {
				return err
			}

			out.Println(wt.Path)
			copyCD(ctx, wt.Path)
			return nil
		},
	}

	wtRepoFlag(cmd, &repoFlag)
	cmd.Flags().BoolVarP(&newBranch, "new-branch", "b", false, "Create the branch")
	return cmd
}

func newWtRemoveCmd() *cobra.Command {
	var (
		repoFlag string
		force    bool
	)

	cmd := &cobra.Command{
		Use:               "remove <branch>",
		Short:             "Remove a branch's worktree",
		Aliases:           []string{"rm"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRepoBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			reg, _, err := loadRegistry()
			if err != nil {
				return err
			}
			rec, err := targetRepo(ctx, reg, repoFlag)
			if err != nil {
				return err
			}

			if err := worktree.Remove(ctx, gitExec, rec.LocalPath, args[0], force); err != nil {
				return err
			}
			l.Printf("Removed worktree for %s\n", args[0])
			return nil
		},
	}

	wtRepoFlag(cmd, &repoFlag)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove even with uncommitted changes")
	return cmd
}

func newWtPruneCmd() *cobra.Command {
	var repoFlag string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Prune stale worktree metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			reg, _, err := loadRegistry()
			if err != nil {
				return err
			}
			rec, err := targetRepo(ctx, reg, repoFlag)
			if err != nil {
				return err
			}

			n, err := worktree.Prune(ctx, gitExec, rec.LocalPath)
			if err != nil {
				return err
			}
			if n == 0 {
				l.Println("Nothing to prune")
				return nil
			}
			l.Printf("Pruned %d worktree(s)\n", n)
			return nil
		},
	}

	wtRepoFlag(cmd, &repoFlag)
	return cmd
}
