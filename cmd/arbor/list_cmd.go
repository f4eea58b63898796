package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/output"
	"github.com/raphi011/arbor/internal/ui/static"
)

// repoDisplay is the JSON shape of one registry row.
type repoDisplay struct {
	Key          string     `json:"key"`
	RemoteURL    string     `json:"remote_url,omitempty"`
	Path         string     `json:"path"`
	CreatedAt    time.Time  `json:"created_at"`
	LastOpenedAt *time.Time `json:"last_opened_at,omitempty"`
	Missing      bool       `json:"missing,omitempty"`
}

func newListCmd() *cobra.Command {
	var (
		long       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered repositories",
		Aliases: []string{"ls"},
		GroupID: GroupRegistry,
		Args:    cobra.NoArgs,
		Example: `  arbor list          # Keys only, one per line
  arbor list -l       # Table with paths and last-opened times
  arbor list --json   # JSON output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			reg, _ := loadRegistryReadOnly(cmd.Context())

			if jsonOutput {
				display := make([]repoDisplay, 0, len(reg.Repos))
				for i := range reg.Repos {
					rec := &reg.Repos[i]
					display = append(display, repoDisplay{
						Key:          rec.Key(),
						RemoteURL:    rec.RemoteURL,
						Path:         rec.LocalPath,
						CreatedAt:    rec.CreatedAt,
						LastOpenedAt: rec.LastOpenedAt,
						Missing:      !rec.Exists(),
					})
				}
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(display)
			}

			if !long {
				for i := range reg.Repos {
					out.Println(reg.Repos[i].Key())
				}
				return nil
			}

			rows := make([][]string, 0, len(reg.Repos))
			for i := range reg.Repos {
				rec := &reg.Repos[i]
				opened := "-"
				if rec.LastOpenedAt != nil {
					opened = rec.LastOpenedAt.Local().Format("2006-01-02 15:04")
				}
				path := rec.LocalPath
				if !rec.Exists() {
					path = fmt.Sprintf("%s (missing)", path)
				}
				rows = append(rows, []string{rec.Key(), path, opened})
			}
			out.Print(static.RenderTable([]string{"KEY", "PATH", "LAST OPENED"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show paths and last-opened times")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
