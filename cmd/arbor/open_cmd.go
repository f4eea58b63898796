package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/browser"
	"github.com/raphi011/arbor/internal/forge"
	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/output"
	"github.com/raphi011/arbor/internal/registry"
)

// parseOpenArgs maps the open verb's positional arguments to a page kind,
// an optional repo query (first arg when it is not a kind keyword) and an
// optional item number.
func parseOpenArgs(args []string) (forge.PageKind, string, int, error) {
	kind := forge.PageHome
	query := ""
	number := 0

	if len(args) > 0 {
		switch args[0] {
		case "home":
		case "pr":
			kind = forge.PagePullRequest
		case "issue":
			kind = forge.PageIssue
		default:
			query = args[0]
		}
	}
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return kind, "", 0, fmt.Errorf("invalid %s number %q", kind, args[1])
		}
		if kind == forge.PageHome {
			return kind, "", 0, fmt.Errorf("a number only makes sense with 'pr' or 'issue'")
		}
		number = n
	}

	return kind, query, number, nil
}

func newOpenCmd() *cobra.Command {
	var (
		repoFlag  string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:     "open [home|pr|issue|<query>] [number]",
		Short:   "Open a repository page in the browser",
		Aliases: []string{"o"},
		GroupID: GroupNavigate,
		Args:    cobra.MaximumNArgs(2),
		Long: `Open a repository's forge page in the browser.

The first argument selects the page: 'home', 'pr' or 'issue' (with an
optional number for a specific item), or a query that names the repository
to open at its home page. The repository itself comes from -r or from the
current directory.

github.com and gitlab.com URLs are built in; self-hosted instances whose
hostname contains 'github' or 'gitlab' use the matching layout. Other
hosts can be configured under [hosts] in the config file; without
templates only the home page works, derived from the remote URL.`,
		Example: `  arbor open                   # Home page of the current repo
  arbor open pr 42             # Pull request 42
  arbor open issue -r proj     # Issue listing of proj
  arbor open proj              # Home page of proj
  arbor open pr --print        # Print the URL instead of launching`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []string{"home", "pr", "issue"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			kind, query, number, err := parseOpenArgs(args)
			if err != nil {
				return err
			}

			reg, regPath, err := loadRegistry()
			if err != nil {
				return err
			}

			var rec *registry.Record
			if query != "" {
				rec, err = targetRepo(ctx, reg, query)
			} else {
				rec, err = targetRepo(ctx, reg, repoFlag)
			}
			if err != nil {
				return err
			}

			if rec.RemoteURL == "" {
				return fmt.Errorf("%s has no remote; nothing to open", rec.Key())
			}

			url, err := forge.Resolve(rec.Identity(), cfg.Hosts, kind, number)
			if errors.Is(err, forge.ErrUnknownHost) && kind == forge.PageHome {
				url, err = forge.HomeFromRemote(rec.RemoteURL)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", rec.Key(), err)
			}

			reg.Touch(rec.Key(), time.Now())
			if err := reg.Save(regPath); err != nil {
				l.Warnf("could not record access: %v", err)
			}

			if printOnly {
				out.Println(url)
				return nil
			}
			l.Printf("Opening %s\n", url)
			return browser.Open(ctx, url)
		},
	}

	cmd.Flags().StringVarP(&repoFlag, "repository", "r", "", "Repository to open (fuzzy match)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the URL instead of launching the browser")
	_ = cmd.RegisterFlagCompletionFunc("repository", completeRepoKeys)

	return cmd
}
