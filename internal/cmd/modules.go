package cmd

import (
	"github.com/spf13/cobra"
)

func newModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"module"},
		Short:   "Manage course modules",
	}
	cmd.AddCommand(newModulesListCmd())
	cmd.AddCommand(newModulesCreateCmd())
	cmd.AddCommand(newModulesUpdateCmd())
	cmd.AddCommand(newModulesDeleteCmd())
	return cmd
}

func newModulesListCmd() *cobra.Command {
	var include []string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List course modules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			modules, err := client.Modules().List(cmd.Context(), include...)
			if err != nil {
				return err
			}
			return printRecords(cmd.Context(), modules, "No modules found")
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "Extra associations to include (items, content_details)")
	return cmd
}

func newModulesCreateCmd() *cobra.Command {
	var position int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			module, err := client.Modules().Create(cmd.Context(), args[0], position)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), module)
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "1-based position in the module list")
	return cmd
}

func newModulesUpdateCmd() *cobra.Command {
	var name string
	var position int

	cmd := &cobra.Command{
		Use:   "update <module-id>",
		Short: "Update a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "module id")
			if err != nil {
				return err
			}
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			module, err := client.Modules().Update(cmd.Context(), id, name, position)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), module)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New module name")
	cmd.Flags().IntVar(&position, "position", 0, "New 1-based position")
	return cmd
}

func newModulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <module-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a module",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "module id")
			if err != nil {
				return err
			}
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			return client.Modules().Delete(cmd.Context(), id)
		},
	}
}
