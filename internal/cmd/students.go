package cmd

import (
	"github.com/spf13/cobra"

	"github.com/canvaslms/canvas-cli/internal/api"
)

func newStudentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "students",
		Aliases: []string{"student"},
		Short:   "List enrolled students",
	}
	cmd.AddCommand(newStudentsListCmd())
	return cmd
}

func newStudentsListCmd() *cobra.Command {
	var search string
	var state, include []string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List students in the course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			students, err := client.Students().List(cmd.Context(), api.ListStudentsOptions{
				Search:          search,
				EnrollmentState: state,
				Include:         include,
			})
			if err != nil {
				return err
			}
			return printRecords(cmd.Context(), students, "No students found")
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by name or login")
	cmd.Flags().StringSliceVar(&state, "state", nil, "Enrollment states to include (active, invited, ...)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Extra fields to include (email, avatar_url, ...)")
	return cmd
}
