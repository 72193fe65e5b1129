package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/canvaslms/canvas-cli/internal/api"
	"github.com/canvaslms/canvas-cli/internal/cli"
)

func newAssignmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignments",
		Aliases: []string{"assignment", "asg"},
		Short:   "Manage course assignments",
	}
	cmd.AddCommand(newAssignmentsListCmd())
	cmd.AddCommand(newAssignmentsGetCmd())
	cmd.AddCommand(newAssignmentsCreateCmd())
	cmd.AddCommand(newAssignmentsUpdateCmd())
	cmd.AddCommand(newAssignmentsDeleteCmd())
	return cmd
}

func newAssignmentsListCmd() *cobra.Command {
	var search, bucket string
	var include []string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List assignments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			assignments, err := client.Assignments().List(cmd.Context(), api.ListAssignmentsOptions{
				Search:  search,
				Bucket:  bucket,
				Include: include,
			})
			if err != nil {
				return err
			}
			return printRecords(cmd.Context(), assignments, "No assignments found")
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by assignment name")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Server-side bucket (past, upcoming, undated, ...)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Extra associations to include")
	return cmd
}

func newAssignmentsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id-or-name>",
		Short: "Get an assignment by id or fuzzy name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveAssignmentID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			assignment, err := client.Assignments().Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), assignment)
		},
	}
}

func newAssignmentsCreateCmd() *cobra.Command {
	var name, description, due string
	var points int
	var published bool
	var submissionTypes []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an assignment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := api.CreateAssignmentOptions{
				Name:            name,
				Description:     description,
				SubmissionTypes: submissionTypes,
			}
			if cmd.Flags().Changed("points") {
				opts.PointsPossible = &points
			}
			if due != "" {
				t, err := cli.ParseDueTime(due, time.Now())
				if err != nil {
					return err
				}
				opts.DueAt = t
			}
			if cmd.Flags().Changed("published") {
				opts.Published = &published
			}

			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			assignment, err := client.Assignments().Create(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), assignment)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Assignment name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Assignment description")
	cmd.Flags().IntVar(&points, "points", 0, "Points possible")
	cmd.Flags().StringVar(&due, "due", "", "Due date (tomorrow, 3d, 2025-10-31, RFC 3339)")
	cmd.Flags().BoolVar(&published, "published", false, "Publish immediately")
	cmd.Flags().StringSliceVar(&submissionTypes, "submission-types", nil, "Accepted submission types")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAssignmentsUpdateCmd() *cobra.Command {
	var name, description, due string
	var points int
	var published bool

	cmd := &cobra.Command{
		Use:   "update <id-or-name>",
		Short: "Update an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := api.CreateAssignmentOptions{
				Name:        name,
				Description: description,
			}
			if cmd.Flags().Changed("points") {
				opts.PointsPossible = &points
			}
			if due != "" {
				t, err := cli.ParseDueTime(due, time.Now())
				if err != nil {
					return err
				}
				opts.DueAt = t
			}
			if cmd.Flags().Changed("published") {
				opts.Published = &published
			}

			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveAssignmentID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			assignment, err := client.Assignments().Update(cmd.Context(), id, opts)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), assignment)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New assignment name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().IntVar(&points, "points", 0, "New points possible")
	cmd.Flags().StringVar(&due, "due", "", "New due date (tomorrow, 3d, 2025-10-31, RFC 3339)")
	cmd.Flags().BoolVar(&published, "published", false, "Publish or unpublish")
	return cmd
}

func newAssignmentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id-or-name>",
		Aliases: []string{"rm"},
		Short:   "Delete an assignment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveAssignmentID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			return client.Assignments().Delete(cmd.Context(), id)
		},
	}
}
