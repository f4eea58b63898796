package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/arbor/internal/doctor"
	"github.com/raphi011/arbor/internal/output"
	"github.com/raphi011/arbor/internal/registry"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Short:   "Check the arbor setup",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Run diagnostic checks: git availability, root directories, URL
templates, and registry health (duplicates, orphans).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			regPath, err := registry.Path()
			if err != nil {
				return err
			}

			checks := doctor.Run(ctx, cfg, regPath)
			for _, c := range checks {
				mark := "✓"
				if !c.OK {
					mark = "✗"
				}
				out.Printf("%s %s", mark, c.Name)
				if c.Detail != "" {
					out.Printf(": %s", c.Detail)
				}
				out.Println()
			}

			if !doctor.Healthy(checks) {
				return fmt.Errorf("some checks failed")
			}
			return nil
		},
	}
}
