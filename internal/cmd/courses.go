package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/canvaslms/canvas-cli/internal/api"
	"github.com/canvaslms/canvas-cli/internal/cli"
)

func newCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "course",
		Aliases: []string{"courses"},
		Short:   "Inspect and update the scoped course",
	}
	cmd.AddCommand(newCourseShowCmd())
	cmd.AddCommand(newCourseUpdateCmd())
	return cmd
}

func newCourseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the course the client is scoped to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			course, err := client.Courses().Get(cmd.Context())
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), course)
		},
	}
}

func newCourseUpdateCmd() *cobra.Command {
	var name, code, startAt, endAt string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update course settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := api.UpdateCourseOptions{Name: name, Code: code}
			if startAt != "" {
				t, err := cli.ParseDueTime(startAt, time.Now())
				if err != nil {
					return err
				}
				opts.StartAt = t
			}
			if endAt != "" {
				t, err := cli.ParseDueTime(endAt, time.Now())
				if err != nil {
					return err
				}
				opts.EndAt = t
			}

			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			course, err := client.Courses().Update(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), course)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Course display name")
	cmd.Flags().StringVar(&code, "code", "", "Course short code")
	cmd.Flags().StringVar(&startAt, "start", "", "Course start date")
	cmd.Flags().StringVar(&endAt, "end", "", "Course end date")
	return cmd
}
