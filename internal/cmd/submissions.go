package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canvaslms/canvas-cli/internal/api"
	"github.com/canvaslms/canvas-cli/internal/download"
	"github.com/canvaslms/canvas-cli/internal/iocontext"
)

func newSubmissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "submissions",
		Aliases: []string{"submission", "sub"},
		Short:   "Manage assignment submissions",
	}
	cmd.AddCommand(newSubmissionsListCmd())
	cmd.AddCommand(newSubmissionsGradeCmd())
	cmd.AddCommand(newSubmissionsDownloadCmd())
	return cmd
}

func newSubmissionsListCmd() *cobra.Command {
	var workflow string
	var history bool

	cmd := &cobra.Command{
		Use:     "list <assignment-id-or-name>",
		Aliases: []string{"ls"},
		Short:   "List submissions for an assignment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			assignmentID, err := resolveAssignmentID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			submissions, err := client.Submissions().List(cmd.Context(), assignmentID, api.ListSubmissionsOptions{
				IncludeHistory: history,
				Workflow:       workflow,
			})
			if err != nil {
				return err
			}
			return printRecords(cmd.Context(), submissions, "No submissions found")
		},
	}

	cmd.Flags().StringVar(&workflow, "workflow", "", "Filter by workflow state (submitted, graded, ...)")
	cmd.Flags().BoolVar(&history, "history", false, "Include every prior attempt")
	return cmd
}

func newSubmissionsGradeCmd() *cobra.Command {
	var userID int64
	var grade string

	cmd := &cobra.Command{
		Use:   "grade <assignment-id-or-name>",
		Short: "Grade a student's submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			assignmentID, err := resolveAssignmentID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			submission, err := client.Submissions().Grade(cmd.Context(), assignmentID, userID, grade)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), submission)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Student user id (required)")
	cmd.Flags().StringVar(&grade, "grade", "", "Grade to post: points, percentage, or letter (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("grade")
	return cmd
}

func newSubmissionsDownloadCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download <assignment-id-or-name>",
		Short: "Download every attachment of every submission attempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			assignmentID, err := resolveAssignmentID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			n, err := download.Submissions(cmd.Context(), client, assignmentID, dir)
			if err != nil {
				return err
			}
			io := iocontext.GetIO(cmd.Context())
			fmt.Fprintf(io.Out, "Downloaded %d attachment(s) to %s\n", n, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "submissions", "Destination directory")
	return cmd
}
