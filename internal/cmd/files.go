package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canvaslms/canvas-cli/internal/api"
)

func newFilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"file"},
		Short:   "Manage course files",
	}
	cmd.AddCommand(newFilesListCmd())
	cmd.AddCommand(newFilesUploadCmd())
	cmd.AddCommand(newFilesDeleteCmd())
	return cmd
}

func newFilesListCmd() *cobra.Command {
	var search string
	var contentTypes, only []string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List course files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			files, err := client.Files().List(cmd.Context(), api.ListFilesOptions{
				Search:      search,
				ContentType: contentTypes,
				Only:        only,
			})
			if err != nil {
				return err
			}
			return printRecords(cmd.Context(), files, "No files found")
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by file name")
	cmd.Flags().StringSliceVar(&contentTypes, "content-type", nil, "Filter by MIME type")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Restrict returned fields")
	return cmd
}

func newFilesUploadCmd() *cobra.Command {
	var name, folder, contentType, onDuplicate string

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a local file to the course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}
			if name == "" {
				name = filepath.Base(args[0])
			}

			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			file, err := client.Files().Upload(cmd.Context(), api.UploadFileOptions{
				Name:        name,
				Size:        info.Size(),
				ContentType: contentType,
				ParentPath:  folder,
				OnDuplicate: onDuplicate,
			}, f)
			if err != nil {
				return err
			}
			return printRecord(cmd.Context(), file)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name in Canvas (defaults to the local file name)")
	cmd.Flags().StringVar(&folder, "folder", "", "Destination folder path")
	cmd.Flags().StringVar(&contentType, "content-type", "", "MIME type (server sniffs when omitted)")
	cmd.Flags().StringVar(&onDuplicate, "on-duplicate", "", "Collision policy: overwrite or rename")
	return cmd
}

func newFilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <file-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "file id")
			if err != nil {
				return err
			}
			client, err := getClient(cmd.Context())
			if err != nil {
				return err
			}
			return client.Files().Delete(cmd.Context(), id)
		},
	}
}
