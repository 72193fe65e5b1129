package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/canvaslms/canvas-cli/internal/api"
	"github.com/canvaslms/canvas-cli/internal/config"
	"github.com/canvaslms/canvas-cli/internal/iocontext"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored Canvas credentials",
	}
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthStatusCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var baseURL, token, envFile string
	var courseID int

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials in the OS keychain",
		Long: "Store the Canvas base URL, API token, and course id in the OS keychain.\n" +
			"Credentials can also be read from a KEY=VALUE env file with --env-file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				vars, err := godotenv.Read(envFile)
				if err != nil {
					return fmt.Errorf("failed to read env file %q: %w", envFile, err)
				}
				if baseURL == "" {
					baseURL = vars["CANVAS_BASE_URL"]
				}
				if token == "" {
					token = vars["CANVAS_API_TOKEN"]
				}
				if courseID == 0 {
					if raw := vars["CANVAS_COURSE_ID"]; raw != "" {
						id, err := strconv.Atoi(raw)
						if err != nil {
							return fmt.Errorf("CANVAS_COURSE_ID in %q must be an integer", envFile)
						}
						courseID = id
					}
				}
			}

			baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
			if baseURL == "" || token == "" || courseID <= 0 {
				return fmt.Errorf("--base-url, --token, and --course-id are required (directly or via --env-file)")
			}

			// Probe before saving so bad credentials never land in the
			// keychain.
			client, err := api.NewClient(cmd.Context(), baseURL, token, courseID)
			if err != nil {
				return err
			}

			if err := config.SaveAccount(config.Account{
				BaseURL:  baseURL,
				Token:    token,
				CourseID: courseID,
			}); err != nil {
				return err
			}

			io := iocontext.GetIO(cmd.Context())
			fmt.Fprintf(io.Out, "Logged in to %s (%s)\n", client.CourseName, client.CourseCode)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Canvas instance URL, e.g. https://school.instructure.com")
	cmd.Flags().StringVar(&token, "token", "", "API bearer token")
	cmd.Flags().IntVar(&courseID, "course-id", 0, "Course id the client is scoped to")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Read credentials from a KEY=VALUE file")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.DeleteAccount(); err != nil {
				return err
			}
			io := iocontext.GetIO(cmd.Context())
			fmt.Fprintln(io.Out, "Logged out")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether credentials are configured and valid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			io := iocontext.GetIO(cmd.Context())
			account, err := config.LoadAccount()
			if err != nil {
				return err
			}
			client, err := api.NewClient(cmd.Context(), account.BaseURL, account.Token, account.CourseID)
			if err != nil {
				return err
			}
			fmt.Fprintf(io.Out, "Connected to %s\nCourse: %s (%s)\n",
				client.BaseURL, client.CourseName, client.CourseCode)
			return nil
		},
	}
}
