package cmd

import (
	"github.com/spf13/cobra"
)

func newFoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folders",
		Aliases: []string{"folder"},
		Short:   "Manage course folders",
	}
	cmd.AddCommand(newFoldersListCmd())
	cmd.AddCommand(newFoldersCreateCmd())
	cmd.AddCommand(newFoldersDeleteCmd())
	return cmd
}

func newFoldersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List course folders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			folders, err := client.Folders().List(cmd.Context())
			if err != nil {
				return err
			}
			return printRecords(cmd.Context(), folders, "No folders found")
		},
	}
}

func newFoldersCreateCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := client.Folders().Create(cmd.Context(), args[0], parent)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), folder)
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent folder path")
	return cmd
}

func newFoldersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <folder-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a folder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "folder id")
			if err != nil {
				return err
			}
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			return client.Folders().Delete(cmd.Context(), id)
		},
	}
}
