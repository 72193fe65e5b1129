// Package download writes submission attachments to disk, one student,
// one attempt, one attachment at a time.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/canvaslms/canvas-cli/internal/api"
)

// Submissions fetches every submission of an assignment (with history) and
// writes each attempt's attachments under dir/user_<id>/attempt_<n>/.
// An individual attachment failure is logged and skipped; only the initial
// submissions fetch is fatal. Returns the number of files written.
//
// Everything is sequential: each attachment is fetched and written before
// the next is touched.
func Submissions(ctx context.Context, client *api.Client, assignmentID int64, dir string) (int, error) {
	subs, err := client.Submissions().List(ctx, assignmentID, api.ListSubmissionsOptions{
		IncludeHistory: true,
	})
	if err != nil {
		return 0, fmt.Errorf("cannot download submissions: %w", err)
	}

	written := 0
	for _, sub := range subs {
		userID, ok := sub.Int("user_id")
		if !ok {
			continue
		}
		attempts := api.History(sub)
		if len(attempts) == 0 {
			// No history requested or the submission itself is the only
			// attempt.
			attempts = api.RecordSet{sub}
		}
		for i, attempt := range attempts {
			attemptDir := filepath.Join(dir,
				fmt.Sprintf("user_%d", userID),
				fmt.Sprintf("attempt_%d", i+1))
			for _, att := range api.Attachments(attempt) {
				name := attachmentName(att)
				url := att.Str("url")
				if url == "" || name == "" {
					continue
				}
				if err := fetchTo(ctx, client.HTTP, url, filepath.Join(attemptDir, name)); err != nil {
					slog.Warn("attachment download failed",
						"user_id", userID, "attempt", i+1, "file", name, "error", err)
					continue
				}
				written++
			}
		}
	}
	return written, nil
}

func attachmentName(att api.Record) string {
	if name := att.Str("filename"); name != "" {
		return sanitize(name)
	}
	return sanitize(att.Str("display_name"))
}

// sanitize strips path separators so a hostile filename cannot escape the
// target directory.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return strings.TrimSpace(name)
}

// fetchTo downloads url into path, creating parent directories as needed.
// Attachment URLs are pre-signed, so no Authorization header is sent.
func fetchTo(ctx context.Context, httpClient *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
