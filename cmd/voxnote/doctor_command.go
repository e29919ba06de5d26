package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxnote/internal/deps"
	"voxnote/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies and writable directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			checks := preflight.RunAll(cfg)

			rows := make([][]string, 0, len(statuses)+len(checks))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Detail})
			}
			for _, check := range checks {
				state := "ok"
				if !check.Passed {
					state = "failed"
				}
				rows = append(rows, []string{check.Name, "", state, check.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Check", "Command", "Status", "Detail"}, rows, nil))

			missing := deps.Missing(statuses)
			failed := preflight.Failed(checks)
			if len(missing) > 0 || len(failed) > 0 {
				return fmt.Errorf("doctor: %d dependencies missing, %d directory checks failed", len(missing), len(failed))
			}
			return nil
		},
	}
}
