package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/finder"
	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/output"
	"github.com/raphi011/arbor/internal/ui"
)

func newFindCmd() *cobra.Command {
	var (
		plain       bool
		noClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "find [query]",
		Short:   "Fuzzy-find a repository",
		Aliases: []string{"f"},
		GroupID: GroupRegistry,
		Args:    cobra.MaximumNArgs(1),
		Long: `Find a repository by fuzzy matching against registry keys and paths.

On a terminal this opens an interactive picker seeded with the query;
selecting a repository prints its path on stdout, records the access time,
and copies a cd command to the clipboard. With --plain (or when stdout is
not a terminal) the ranked matches are printed and nothing is recorded, so
the output is safe to pipe.`,
		Example: `  arbor find proj            # Interactive picker
  arbor find proj --plain    # Ranked list, no side effects
  cd $(arbor find -p proj | head -1 | awk '{print $2}')`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			reg, regPath, err := loadRegistry()
			if err != nil {
				return err
			}
			if len(reg.Repos) == 0 {
				return fmt.Errorf("registry is empty; run 'arbor scan' or 'arbor add' first")
			}

			interactive := !plain && isatty.IsTerminal(os.Stdout.Fd())

			matches := finder.Rank(reg.Repos, query)

			if !interactive {
				for _, m := range matches {
					out.Printf("%s\t%s\n", m.Record.Key(), m.Record.LocalPath)
				}
				return nil
			}

			if len(matches) == 0 {
				matches = finder.Rank(reg.Repos, "")
			}

			items := make([]ui.PickerItem, len(matches))
			for i, m := range matches {
				items[i] = ui.PickerItem{Label: m.Record.Key(), Detail: m.Record.LocalPath}
			}

			result, err := ui.Pick(items)
			if err != nil {
				return err
			}
			if result.Cancelled {
				l.Println("Cancelled")
				return nil
			}

			rec := matches[result.Index].Record
			reg.Touch(rec.Key(), time.Now())
			if err := reg.Save(regPath); err != nil {
				l.Warnf("could not record access: %v", err)
			}

			out.Println(rec.LocalPath)
			if !noClipboard {
				copyCD(ctx, rec.LocalPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&plain, "plain", "p", false, "Print ranked matches instead of the picker")
	cmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "Do not copy the cd command to the clipboard")

	return cmd
}
